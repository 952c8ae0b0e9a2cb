package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/skinrally/backend/pkg/errorx"
	"github.com/skinrally/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithHTTPRequest(ctx, r)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		err := func() error {
			if r.Method != method {
				return errorx.New(errorx.BadRequest, "Not supported method %s", r.Method)
			}

			var req Request
			if err := bindRequest(r, method, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return errorx.New(errorx.BadRequest, "Cannot parse request")
			}

			for _, m := range router.befores {
				var err error
				if ctx, err = m(ctx); err != nil {
					return err
				}
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return err
			}

			ctx = xcontext.WithResponse(ctx, resp)
			return nil
		}()

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
		}

		for _, c := range router.afters {
			c(ctx)
		}

		handleResponse(ctx)

		for _, c := range router.closers {
			c(ctx)
		}
	}
}

func bindRequest(r *http.Request, method string, req any) error {
	if method == http.MethodGet {
		values := map[string]string{}
		for key, value := range r.URL.Query() {
			if len(value) > 0 {
				values[key] = value[0]
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           req,
			TagName:          "json",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return err
		}

		return decoder.Decode(values)
	}

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		// An empty body is a valid request for endpoints without parameters.
		if errors.Is(err, io.EOF) {
			return nil
		}

		return err
	}

	return nil
}
