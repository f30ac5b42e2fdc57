// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"simrs/internal/core/apperror"
	"simrs/internal/domain/listing"
)

// --- Pagination ---

// PaginationRequest contains pagination parameters.
type PaginationRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// Defaults sets default pagination values. The dashboard tables page by
// five records.
func (p *PaginationRequest) Defaults() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = listing.DefaultPageSize
	}
}

// PaginationResponse contains pagination metadata.
type PaginationResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// NewListResponse creates a list response.
func NewListResponse[T any](items []T, page, pageSize, totalPages int) ListResponse[T] {
	return ListResponse[T]{
		Data: items,
		Pagination: PaginationResponse{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}
}

// --- Filter query ---

// FilterRequest contains the shared list filter parameters.
type FilterRequest struct {
	Query    string `form:"q"`
	Status   string `form:"status"`
	Category string `form:"category"`
	Expr     string `form:"expr"`
}

// ToQuery converts the request to an engine query.
func (f FilterRequest) ToQuery() listing.Query {
	return listing.Query{
		Text:     f.Query,
		Status:   f.Status,
		Category: f.Category,
		Expr:     f.Expr,
	}
}

// --- Mutation Response ---

// MutationResponse wraps a mutation result. Warning is set when the
// change was applied but could not be written to durable storage.
type MutationResponse[T any] struct {
	Data    T      `json:"data"`
	Warning string `json:"warning,omitempty"`
}

// NewMutationResponse creates a mutation response from a value and an
// optional persistence warning.
func NewMutationResponse[T any](data T, warn error) MutationResponse[T] {
	resp := MutationResponse[T]{Data: data}
	if warn != nil {
		if appErr, ok := apperror.AsAppError(warn); ok {
			resp.Warning = appErr.Message
		} else {
			resp.Warning = warn.Error()
		}
	}
	return resp
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
