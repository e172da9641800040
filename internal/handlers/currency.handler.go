package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/maggiehq/ledger/internal/model"
	xhttp "github.com/maggiehq/ledger/pkg/http"
)

type CurrencyReader interface {
	Get(ctx context.Context, id int64) (*model.Currency, error)
}

// CurrencyHandler serves currency reference data, normally through the
// redis read-through cache.
type CurrencyHandler struct {
	currencies CurrencyReader
}

func RegisterCurrencyRoutes(e *router.Group, h *CurrencyHandler) {
	e.GET("/currencies/{id}", h.GetCurrency)
}

func NewCurrencyHandler(currencies CurrencyReader) *CurrencyHandler {
	return &CurrencyHandler{currencies: currencies}
}

func (h *CurrencyHandler) GetCurrency(ctx *xhttp.RequestCtx) {
	id, err := paramInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid currency id")
		return
	}
	c, err := h.currencies.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, c)
}
