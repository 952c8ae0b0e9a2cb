package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skinrally/backend/config"
	"github.com/skinrally/backend/pkg/errorx"
	"github.com/skinrally/backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type envelope struct {
	Code  int64        `json:"code"`
	Error string       `json:"error"`
	Data  echoResponse `json:"data"`
}

func echoHandler(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	return &echoResponse{Name: req.Name, Count: req.Count}, nil
}

func newTestRouter() *Router {
	return New(nil, config.Configs{Env: "test"}, logger.NewLogger())
}

func serve(t *testing.T, r *Router, req *http.Request) (int, envelope) {
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func Test_Router_GET_bindsTheQuery(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echoHandler)

	status, resp := serve(t, r, httptest.NewRequest(http.MethodGet, "/echo?name=ak&count=3", nil))
	require.Equal(t, http.StatusOK, status)
	require.Zero(t, resp.Code)
	require.Equal(t, "ak", resp.Data.Name)
	require.Equal(t, 3, resp.Data.Count)
}

func Test_Router_POST_bindsTheBody(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", echoHandler)

	status, resp := serve(t, r, httptest.NewRequest(
		http.MethodPost, "/echo", strings.NewReader(`{"name":"awp","count":5}`)))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "awp", resp.Data.Name)
	require.Equal(t, 5, resp.Data.Count)

	// An empty body is a valid request.
	status, _ = serve(t, r, httptest.NewRequest(http.MethodPost, "/echo", nil))
	require.Equal(t, http.StatusOK, status)
}

func Test_Router_rejectsTheWrongMethod(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echoHandler)

	status, resp := serve(t, r, httptest.NewRequest(http.MethodPost, "/echo", nil))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
	require.Equal(t, "Not supported method POST", resp.Error)
}

func Test_Router_errorEnvelope(t *testing.T) {
	r := newTestRouter()
	GET(r, "/missing", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found raffle")
	})

	status, resp := serve(t, r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, int64(errorx.NotFound), resp.Code)
	require.Equal(t, "Not found raffle", resp.Error)
}

type stampKey struct{}

func Test_Router_Branch_isolatesTheMiddleware(t *testing.T) {
	r := newTestRouter()

	handler := func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		stamp, ok := ctx.Value(stampKey{}).(string)
		if !ok {
			return nil, errorx.New(errorx.PermissionDenied, "Require a stamp")
		}

		return &echoResponse{Name: stamp}, nil
	}

	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return context.WithValue(ctx, stampKey{}, "stamped"), nil
	})
	GET(branch, "/stamped", handler)
	GET(r, "/bare", handler)

	status, resp := serve(t, r, httptest.NewRequest(http.MethodGet, "/stamped", nil))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "stamped", resp.Data.Name)

	// The branch middleware must not leak into the parent's routes.
	status, resp = serve(t, r, httptest.NewRequest(http.MethodGet, "/bare", nil))
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Require a stamp", resp.Error)
}

func Test_Router_Before_abortsOnError(t *testing.T) {
	r := newTestRouter()
	r.Before(func(ctx context.Context) (context.Context, error) {
		return ctx, errorx.New(errorx.Unauthenticated, "Require a session")
	})

	handled := false
	GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		handled = true
		return &echoResponse{}, nil
	})

	status, resp := serve(t, r, httptest.NewRequest(http.MethodGet, "/echo", nil))
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Require a session", resp.Error)
	require.False(t, handled)
}

func Test_Router_aftersAndClosersRun(t *testing.T) {
	r := newTestRouter()

	var calls []string
	r.After(func(ctx context.Context) {
		calls = append(calls, "after")
	})
	r.AddCloser(func(ctx context.Context) {
		calls = append(calls, "closer")
	})
	GET(r, "/echo", echoHandler)

	status, _ := serve(t, r, httptest.NewRequest(http.MethodGet, "/echo", nil))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []string{"after", "closer"}, calls)
}
