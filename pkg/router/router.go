package router

import (
	"context"
	"net/http"

	"github.com/skinrally/backend/config"
	"github.com/skinrally/backend/pkg/logger"
	"gorm.io/gorm"
)

// HandlerFunc is an endpoint handler. The request is bound from the query
// string (GET) or the JSON body (POST) before the handler is called.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can enrich the context; a
// returned error aborts the request with that error as the response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been decided, for session saving,
// logging, and the response writer itself.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	db     *gorm.DB
	cfg    config.Configs
	logger logger.Logger

	befores []MiddlewareFunc
	afters  []CloserFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// Branch creates a router sharing the same mux but with its own middleware
// chain, starting from a copy of the parent's.
func (r *Router) Branch() *Router {
	branch := &Router{
		mux:    r.mux,
		db:     r.db,
		cfg:    r.cfg,
		logger: r.logger,
	}

	branch.befores = append(branch.befores, r.befores...)
	branch.afters = append(branch.afters, r.afters...)
	branch.closers = append(branch.closers, r.closers...)
	return branch
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(c CloserFunc) {
	r.afters = append(r.afters, c)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	return r.mux
}
