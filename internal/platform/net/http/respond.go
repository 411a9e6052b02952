// Package http carries the router seam, the response envelope, and the HTTP
// server the binaries run
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"
	pnet "github.com/gentlementlegen/assistive-pricing/internal/platform/net"
)

// Envelope is the body shape every endpoint responds with
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
	Page       *Page          `json:"page,omitempty"`
}

// Page carries pagination alongside list data
type Page struct {
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Cursor   string `json:"cursor,omitempty"`
}

// JSON encodes v as application/json under the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is the value a handler hands back; zero Status means 200
type Response struct {
	Status int
	Body   any
	// pagination block, set by List
	Page *Page
	// optional extra headers
	Header stdhttp.Header
}

// OK builds a 200 response around data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created builds a 201 response around data
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent builds an empty 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Data reads the same as OK at query call sites
func Data(v any) Response { return OK(v) }

// Error returns a response whose status and envelope come from the error
func Error(err error) Response { return Response{Body: err} }

// List returns a 200 response with items as data and the page block filled in
func List(items any, total, page, size int, cursor string) Response {
	return Response{
		Status: stdhttp.StatusOK,
		Body:   items,
		Page:   &Page{Total: total, Page: page, PageSize: size, Cursor: cursor},
	}
}

// Handle adapts a Response-returning handler onto net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	hdr := w.Header()
	for k, vv := range resp.Header {
		for _, v := range vv {
			hdr.Add(k, v)
		}
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	// an error Body decides the status, whatever Status was set to
	if err, ok := resp.Body.(error); ok && err != nil {
		fail(w, r, err)
		return
	}

	JSON(w, status, envelope(r, status, resp.Body, resp.Page))
}

func envelope(r *stdhttp.Request, status int, data any, page *Page) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       data,
		Page:       page,
	}
}

// fail maps err onto its wire form. Server-side failures also carry their
// cause to the log; client mistakes only travel in the body
func fail(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, wire := perr.HTTP(err)
	if status >= stdhttp.StatusInternalServerError {
		ev := logger.C(r.Context()).Error().Err(err).Stringer("code", wire.Code)
		if pe, ok := perr.As(err); ok && pe.Op() != "" {
			ev = ev.Str("op", pe.Op())
		}
		ev.Msg("request failed")
	}

	env := envelope(r, status, nil, nil)
	env.Code = wire.Code
	env.Error = wire.Message
	JSON(w, status, env)
}
