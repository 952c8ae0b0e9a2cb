package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/skinrally/backend/pkg/errorx"
	"github.com/skinrally/backend/pkg/router"
	"github.com/skinrally/backend/pkg/xcontext"
)

// Trace logs every incoming request before it is handled.
func Trace() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if r := xcontext.HTTPRequest(ctx); r != nil {
			xcontext.Logger(ctx).Debugf("%s | %s", r.Method, r.URL.Path)
		}

		return ctx, nil
	}
}

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		r := xcontext.HTTPRequest(ctx)
		if r == nil {
			return
		}

		info := fmt.Sprintf("%s | %s", r.Method, r.URL.Path)
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
