package prom

import (
	"strconv"
	"time"

	xhttp "github.com/maggiehq/ledger/pkg/http"
)

// DurationMiddleware times every request into the HTTP duration histogram,
// labeled by method and response status. A no-op until Create runs.
func DurationMiddleware(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		ObserveHistogramVec(SystemLedger, MetricHTTPDuration, time.Since(start).Seconds(),
			string(ctx.Method()), strconv.Itoa(ctx.Response.StatusCode()))
	}
}
