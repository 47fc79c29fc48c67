package handler

import (
	"math"
	"reflect"

	"github.com/labstack/echo/v4"
)

// Pagination describes the position of a page inside a larger result set.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Envelope is the uniform JSON wrapper on every response. Count is filled
// automatically when Data is a slice.
type Envelope struct {
	Success    bool        `json:"success"`
	Code       int         `json:"code"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      interface{} `json:"error,omitempty"`
}

// NewPagination computes page bookkeeping from a total item count.
func NewPagination(page, limit, totalItems int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(limit)))
	}
	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// OK writes a success envelope.
func OK(c echo.Context, code int, message string, data interface{}) error {
	env := Envelope{Success: true, Code: code, Message: message, Data: data}
	if data != nil {
		if v := reflect.ValueOf(data); v.Kind() == reflect.Slice {
			n := v.Len()
			env.Count = &n
		}
	}
	return c.JSON(code, env)
}

// OKPaged writes a success envelope with pagination details.
func OKPaged(c echo.Context, code int, message string, data interface{}, p Pagination) error {
	env := Envelope{Success: true, Code: code, Message: message, Data: data, Pagination: &p}
	if v := reflect.ValueOf(data); data != nil && v.Kind() == reflect.Slice {
		n := v.Len()
		env.Count = &n
	}
	return c.JSON(code, env)
}

// Fail writes an error envelope. detail, when given, lands in the error
// field (validation failures use it to list offending fields).
func Fail(c echo.Context, code int, message string, detail ...interface{}) error {
	env := Envelope{Success: false, Code: code, Message: message}
	if len(detail) > 0 {
		env.Error = detail[0]
	}
	return c.JSON(code, env)
}
