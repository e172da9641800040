package xhttp

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maggiehq/ledger/pkg/logger"
	"github.com/valyala/fasthttp"
)

const slowThreshold = 500 * time.Millisecond

var skipPaths = []string{"/health", "/metrics"}

type MiddlewareFunc func(next RequestHandler) RequestHandler
type RequestCtx = fasthttp.RequestCtx
type RequestHandler = fasthttp.RequestHandler

func TimeoutMiddleware(timeout time.Duration) MiddlewareFunc {
	return func(next RequestHandler) RequestHandler {
		return fasthttp.TimeoutWithCodeHandler(next, timeout, StatusText(StatusRequestTimeout), StatusRequestTimeout)
	}
}

func CompressMiddleware(level int) MiddlewareFunc {
	return func(next RequestHandler) RequestHandler {
		return fasthttp.CompressHandlerBrotliLevel(next, level, level)
	}
}

func RecoverMiddleware(next RequestHandler) RequestHandler {
	return func(ctx *RequestCtx) {
		defer func() {
			if err := recover(); err != nil {
				ctx.Error(StatusText(StatusInternalServerError), StatusInternalServerError)
				logger.Error("[xhttp] panic recovered", "error", err)
			}
		}()
		next(ctx)
	}
}

func RequestLoggerMiddleware(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		if shouldSkip(path) {
			next(ctx)
			return
		}

		start := time.Now()
		next(ctx)

		latency := time.Since(start)
		status := ctx.Response.StatusCode()
		method := string(ctx.Method())
		ip := ctx.RemoteIP().String()
		rid := requestID(ctx)

		fields := []any{
			"rid", rid,
			"method", method,
			"path", path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"ip", ip,
		}

		switch {
		case status >= 500:
			logger.Error("[xhttp] request failed", fields...)
		case status >= 400:
			logger.Warn("[xhttp] request rejected", fields...)
		case latency > slowThreshold:
			logger.Warn("[xhttp] slow request", fields...)
		default:
			logger.Info("[xhttp] request", fields...)
		}
	}
}

func requestID(ctx *fasthttp.RequestCtx) string {
	rid := string(ctx.Request.Header.Peek("X-Request-ID"))
	if rid == "" {
		rid = uuid.NewString()
		ctx.Request.Header.Set("X-Request-ID", rid)
	}
	ctx.Response.Header.Set("X-Request-ID", rid)
	return rid
}

func shouldSkip(path string) bool {
	for _, p := range skipPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
