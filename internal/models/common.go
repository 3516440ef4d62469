package models

// Actor identifies who performs an operation and which tenant it is
// scoped to. Supplied by the auth/tenant middleware and trusted as-is.
type Actor struct {
	UserID   string
	TenantID string
}

// PaginationInfo mirrors the list contract. In unpaged mode it
// collapses to a single page spanning the whole result set.
type PaginationInfo struct {
	TotalItems   int64 `json:"totalItems"`
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// ErrorDetail provides detailed error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// SuccessResponse represents a successful response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
