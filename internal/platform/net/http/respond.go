// Package http carries the JSON envelope and the response helpers every
// handler in this repo writes through.
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "numwash/internal/platform/errors"
	pnet "numwash/internal/platform/net"
)

// Envelope is the one response body shape every endpoint writes
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
	Page       *Page          `json:"page,omitempty"`
}

// Page carries pagination alongside list payloads
type Page struct {
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Cursor   string `json:"cursor,omitempty"`
}

// JSON encodes v with the given status and a JSON content type
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONStatus writes a bare status with an empty object body
func JSONStatus(w stdhttp.ResponseWriter, status int) {
	JSON(w, status, map[string]any{})
}

// okEnvelope builds the success envelope for a status and payload
func okEnvelope(status int, reqID string, data any) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// errEnvelope derives status and envelope from a project error
func errEnvelope(err error, reqID string) (int, Envelope) {
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	return status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wr.Code,
		Error:      wr.Message,
		RequestID:  reqID,
	}
}

//
// Respond* helpers: write straight to the ResponseWriter
//

// respond writes a success envelope for a classic handler
func respond(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, data any) {
	JSON(w, status, okEnvelope(status, pnet.RequestID(r.Context()), data))
}

// RespondOK writes data wrapped in a 200 envelope
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	respond(w, r, stdhttp.StatusOK, data)
}

// RespondCreated writes data wrapped in a 201 envelope
func RespondCreated(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	respond(w, r, stdhttp.StatusCreated, data)
}

// RespondNoContent writes a bodyless 204
func RespondNoContent(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
	w.WriteHeader(stdhttp.StatusNoContent)
}

// RespondData reads better than RespondOK at some call sites
func RespondData(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	RespondOK(w, r, data)
}

// RespondList writes items plus a pagination block
func RespondList(w stdhttp.ResponseWriter, r *stdhttp.Request, items any, total, page, pageSize int, cursor string) {
	env := okEnvelope(stdhttp.StatusOK, pnet.RequestID(r.Context()), items)
	env.Page = &Page{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Cursor:   cursor,
	}
	JSON(w, stdhttp.StatusOK, env)
}

// RespondError resolves the status from the error code and writes the
// error envelope
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, env := errEnvelope(err, pnet.RequestID(r.Context()))
	JSON(w, status, env)
}

//
// Response values: handlers that prefer early returns build one and let
// Handle write it
//

// Response is the value a return-style handler hands back
type Response struct {
	Status int
	Body   any
	// headers a handler wants stamped before the body goes out
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler onto net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for name, vals := range resp.Header {
		for _, v := range vals {
			w.Header().Add(name, v)
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

	reqID := pnet.RequestID(r.Context())

	// an error body overrides the declared status
	if err, ok := resp.Body.(error); ok && err != nil {
		st, env := errEnvelope(err, reqID)
		JSON(w, st, env)
		return
	}

	JSON(w, status, okEnvelope(status, reqID, resp.Body))
}

// OK wraps data in a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created wraps data in a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent builds a bodyless 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Data reads better than OK at some call sites
func Data(v any) Response { return OK(v) }

// Error builds a response whose status and envelope derive from err
func Error(err error) Response { return Response{Body: err} }

// List wraps items and pagination in a 200 response
func List(items any, total, page, size int, cursor string) Response {
	body := struct {
		Items any  `json:"items"`
		Page  Page `json:"page"`
	}{Items: items}
	body.Page = Page{Total: total, Page: page, PageSize: size, Cursor: cursor}
	return OK(body)
}
