package dto

import (
	"github.com/mrops-br/catalog-viewer/internal/domain"
)

// ProductResponse represents a product as rendered by the views and the JSON API
type ProductResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Rate        float64 `json:"rate"`
	ReviewCount int     `json:"review_count"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Rate:        p.Rating.Rate,
		ReviewCount: p.Rating.Count,
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
