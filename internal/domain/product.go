package domain

import (
	"errors"
	"strconv"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUpstream        = errors.New("product source unavailable")
)

// Rating is the aggregated review score of a product
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product represents a catalog record as served by the product source
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

// Key returns the identifier in the form used by URLs and lookups
func (p Product) Key() string {
	return strconv.Itoa(p.ID)
}
