package domain

import (
	"errors"
	"math"
	"strings"
)

// DefaultMaxPrice is the upper bound of the price slider and its initial position
const DefaultMaxPrice = 1000

var ErrInvalidCriteria = errors.New("invalid filter criteria")

// RatingTier names one of the rating toggles shown in the list view
type RatingTier string

const (
	FourStarsAndAbove RatingTier = "fourStars"
	FiveStarsOnly     RatingTier = "fiveStars"
)

// Criteria is the set of constraints the list view applies to the collection.
// An empty Category selects every category.
type Criteria struct {
	Category  string  `json:"category"`
	MaxPrice  float64 `json:"max_price"`
	FourStars bool    `json:"four_stars"`
	FiveStars bool    `json:"five_stars"`
	Search    string  `json:"search"`
}

// DefaultCriteria returns the criteria a freshly mounted list view starts with
func DefaultCriteria() Criteria {
	return Criteria{MaxPrice: DefaultMaxPrice}
}

// Validate rejects criteria that no product could ever satisfy for structural reasons
func (c Criteria) Validate() error {
	if c.MaxPrice < 0 || math.IsNaN(c.MaxPrice) || math.IsInf(c.MaxPrice, 0) {
		return ErrInvalidCriteria
	}
	return nil
}

// Matches reports whether p passes every criterion.
func (c Criteria) Matches(p Product) bool {
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	if p.Price > c.MaxPrice {
		return false
	}
	if !c.matchesRating(p.Rating.Rate) {
		return false
	}
	return c.Search == "" || strings.Contains(strings.ToLower(p.Title), strings.ToLower(c.Search))
}

// matchesRating treats active toggles as additive: with both on, either rule admits the product.
func (c Criteria) matchesRating(rate float64) bool {
	if !c.FourStars && !c.FiveStars {
		return true
	}
	return (c.FourStars && rate >= 4) || (c.FiveStars && rate == 5)
}

// Tier reports whether the named rating toggle is active
func (c Criteria) Tier(tier RatingTier) bool {
	switch tier {
	case FourStarsAndAbove:
		return c.FourStars
	case FiveStarsOnly:
		return c.FiveStars
	}
	return false
}

// WithTier returns a copy of c with the named toggle set
func (c Criteria) WithTier(tier RatingTier, on bool) (Criteria, error) {
	switch tier {
	case FourStarsAndAbove:
		c.FourStars = on
	case FiveStarsOnly:
		c.FiveStars = on
	default:
		return c, ErrInvalidCriteria
	}
	return c, nil
}

// VisibleProducts returns the products matching c in their original order.
func VisibleProducts(all []Product, c Criteria) []Product {
	visible := make([]Product, 0, len(all))
	for _, p := range all {
		if c.Matches(p) {
			visible = append(visible, p)
		}
	}
	return visible
}

// Categories lists the distinct categories of the collection in first-appearance order
func Categories(all []Product) []string {
	seen := make(map[string]struct{}, len(all))
	categories := make([]string, 0)
	for _, p := range all {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
