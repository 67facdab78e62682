package dto

import (
	"github.com/mrops-br/catalog-viewer/internal/domain"
)

// ListingResponse is one rendered page of the list view
type ListingResponse struct {
	Products   []ProductResponse `json:"products"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	Matching   int               `json:"matching"`
	Pages      []int             `json:"pages"`
	Categories []string          `json:"categories"`
	Criteria   domain.Criteria   `json:"criteria"`
}

// ToListingResponse snapshots the current page of a list view
func ToListingResponse(v *domain.ListView) *ListingResponse {
	return &ListingResponse{
		Products:   ToProductResponseList(v.CurrentItems()),
		Page:       v.CurrentPage(),
		PageSize:   domain.PageSize,
		Total:      v.Total(),
		Matching:   len(v.Visible()),
		Pages:      v.PageNumbers(),
		Categories: v.Categories(),
		Criteria:   v.Criteria(),
	}
}

// CartResponse is the session cart
type CartResponse struct {
	Items []ProductResponse `json:"items"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

// ToCartResponse snapshots a cart
func ToCartResponse(c *domain.Cart) *CartResponse {
	return &CartResponse{
		Items: ToProductResponseList(c.Items()),
		Count: c.Len(),
		Total: c.Total(),
	}
}

// DashboardResponse is everything the list view renders for a session
type DashboardResponse struct {
	Listing *ListingResponse `json:"listing"`
	Cart    *CartResponse    `json:"cart"`
	Notice  string           `json:"notice,omitempty"`
}

// DetailResponse is the detail view in one of its three states
type DetailResponse struct {
	ID      string              `json:"id"`
	Status  domain.DetailStatus `json:"status"`
	Product *ProductResponse    `json:"product,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// ToDetailResponse converts a detail state
func ToDetailResponse(s domain.DetailState) *DetailResponse {
	resp := &DetailResponse{ID: s.ID, Status: s.Status, Error: s.Message}
	if s.Product != nil {
		p := ToProductResponse(*s.Product)
		resp.Product = &p
	}
	return resp
}
