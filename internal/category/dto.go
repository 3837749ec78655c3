package category

import "github.com/google/uuid"

type CreateCategoryDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	BadgeColor  *string `json:"badge_color,omitempty"`
}

// UpdateCategoryDTO replaces name, description and icon. A blank badge color keeps the current one.
type UpdateCategoryDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	BadgeColor  *string `json:"badge_color,omitempty"`
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	BadgeColor  string    `json:"badge_color"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type PagedCategoriesResponse struct {
	Items      []CategoryResponse `json:"items"`
	PageNumber int                `json:"page_number"`
	PageSize   int                `json:"page_size"`
	TotalItems int64              `json:"total_items"`
}

type AssignDefaultsResponse struct {
	Created int `json:"created"`
}
