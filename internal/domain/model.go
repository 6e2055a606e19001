package domain

import "time"

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageRequest holds pagination, sorting, searching, and filtering parameters.
//
// Search is a substring match applied to SearchField. Each repository decides
// which fields are searchable and what its default field is; unknown fields
// are rejected rather than silently ignored so a client typo does not return
// the full unfiltered set.
type PageRequest struct {
	Page        int
	PageSize    int
	Sort        string
	SearchField string
	Search      string
	Filter      map[string]string
}

// PageResult is a page of items plus the pagination metadata the client
// needs to render page controls ("Page X of Y (Z total)").
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}
