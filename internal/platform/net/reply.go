package net

import (
	"net/http"

	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
)

// Wire is the envelope shape shared by HTTP responses and webhook replies
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(status int, reqID string, data any) (int, Wire) {
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// OK wraps data in a 200 wire envelope
func OK(data any, reqID string) (int, Wire) { return envelope(http.StatusOK, reqID, data) }

// Created wraps data in a 201 wire envelope
func Created(data any, reqID string) (int, Wire) { return envelope(http.StatusCreated, reqID, data) }

// NoContent produces a bodyless 204 wire envelope
func NoContent(reqID string) (int, Wire) { return envelope(http.StatusNoContent, reqID, nil) }

// Error folds err into status and wire payload; a nil err reads as OK
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	status, w := perr.HTTP(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}

// HTTPStatus resolves the status an error should produce, 200 for nil
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return perr.HTTPStatus(err)
}
