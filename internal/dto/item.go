package dto

import (
	"time"

	"github.com/SscSPs/library_circulation/internal/core/domain"
)

// CreateItemRequest defines the data needed to add a catalog item.
type CreateItemRequest struct {
	ItemID string `json:"itemID" binding:"required,max=128"`
	Title  string `json:"title" binding:"max=512"`
	Author string `json:"author" binding:"max=255"`
}

// ItemResponse defines the data returned for a catalog item.
type ItemResponse struct {
	ItemID    string    `json:"itemID"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	OnLoan    *bool     `json:"onLoan,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToDomainItem converts the request into a domain.Item.
func (r CreateItemRequest) ToDomainItem() domain.Item {
	return domain.Item{ItemID: r.ItemID, Title: r.Title, Author: r.Author}
}

// ToItemResponse converts a domain.Item to ItemResponse DTO
func ToItemResponse(item domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:    item.ItemID,
		Title:     item.Title,
		Author:    item.Author,
		CreatedAt: item.CreatedAt,
	}
}

// ToListItemResponse converts a slice of domain.Item to ItemResponse DTOs
func ToListItemResponse(items []domain.Item) []ItemResponse {
	res := make([]ItemResponse, len(items))
	for i, item := range items {
		res[i] = ToItemResponse(item)
	}
	return res
}
