package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skinrally/backend/pkg/errorx"
	"github.com/skinrally/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) (int, response) {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	return statusOf(errx.Code), response{
		Code:  int64(errx.Code),
		Error: errx.Message,
	}
}

// statusOf maps rejection codes to HTTP status classes. Validation
// rejections are 4xx; invariant violations and unknown failures are 5xx.
func statusOf(code errorx.Code) int {
	switch code {
	case errorx.BadRequest, errorx.Unavailable, errorx.AlreadyExists:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func handleResponse(ctx context.Context) {
	w := xcontext.HTTPWriter(ctx)
	if w == nil {
		return
	}

	if err := xcontext.Error(ctx); err != nil {
		status, resp := newErrorResponse(err)
		writeJson(ctx, w, status, resp)
		return
	}

	writeJson(ctx, w, http.StatusOK, newResponse(xcontext.Response(ctx)))
}

func writeJson(ctx context.Context, w http.ResponseWriter, status int, resp any) {
	b, err := json.Marshal(resp)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal the response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
