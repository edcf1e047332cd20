// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// IDResponse contains the created entity's ID.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a simple operation acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListResponse wraps list results.
type ListResponse struct {
	Items any `json:"items"`
	Count int `json:"count"`
}
