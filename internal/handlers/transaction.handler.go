package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/fasthttp/router"
	"github.com/maggiehq/ledger/internal/model"
	xhttp "github.com/maggiehq/ledger/pkg/http"
)

type LedgerService interface {
	Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error)
	List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error)
	Get(ctx context.Context, id int64) (*model.Transaction, error)
	AddPayment(ctx context.Context, p model.PaymentCreateRequest) (*model.Payment, error)
}

type TransactionHandler struct {
	svc LedgerService
}

func RegisterTransactionRoutes(e *router.Group, h *TransactionHandler) {
	e.GET("/transactions", h.ListTransactions)
	e.POST("/transactions", h.CreateTransaction)
	e.GET("/transactions/{id}", h.GetTransaction)
	e.POST("/transactions/{id}/payments", h.AddPayment)
}

func NewTransactionHandler(svc LedgerService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type createTransactionRequest struct {
	Name        string  `json:"name"`
	SenderID    int64   `json:"sender_id"`
	RecipientID int64   `json:"recipient_id"`
	ProductIDs  []int64 `json:"product_ids"`
	Type        string  `json:"type"`
	Timestamp   string  `json:"timestamp"`
	// Receipt is the media key returned by the upload endpoint.
	Receipt string `json:"receipt"`
}

type addPaymentRequest struct {
	Amount       int64 `json:"amount"`
	PaymentWayID int64 `json:"payment_way_id"`
	VaultID      int64 `json:"vault_id"`
}

type listResponse struct {
	Items []*model.Transaction `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *TransactionHandler) ListTransactions(ctx *xhttp.RequestCtx) {
	var f model.TransactionFilter

	if v := query(ctx, "sender_id"); v != "" {
		if id, e := strconv.ParseInt(v, 10, 64); e == nil {
			f.SenderID = &id
		}
	}
	if v := query(ctx, "recipient_id"); v != "" {
		if id, e := strconv.ParseInt(v, 10, 64); e == nil {
			f.RecipientID = &id
		}
	}
	if v := query(ctx, "type"); v != "" {
		t := model.TransactionType(v)
		if !t.Valid() {
			writeError(ctx, xhttp.StatusBadRequest, "unknown transaction type: "+v)
			return
		}
		f.Type = &t
	}
	if v := query(ctx, "from"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.From = &t
		}
	}
	if v := query(ctx, "to"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.To = &t
		}
	}
	if v := query(ctx, "page"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Page = n
		}
	}
	if v := query(ctx, "page_size"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.PageSize = n
		}
	}

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	writeJSON(ctx, xhttp.StatusOK, listResponse{Items: items, Total: total, Page: page})
}

func (h *TransactionHandler) CreateTransaction(ctx *xhttp.RequestCtx) {
	var req createTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	p := model.TransactionCreateRequest{
		Name:        req.Name,
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		ProductIDs:  req.ProductIDs,
		Type:        model.TransactionType(req.Type),
		Receipt:     req.Receipt,
	}
	if p.Type == "" {
		p.Type = model.TransactionPurchase
	}
	if req.Timestamp != "" {
		t, err := parseTime(req.Timestamp)
		if err != nil {
			writeError(ctx, xhttp.StatusBadRequest, "invalid timestamp: "+req.Timestamp)
			return
		}
		p.Timestamp = t
	}

	created, err := h.svc.Create(ctx, p)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *TransactionHandler) GetTransaction(ctx *xhttp.RequestCtx) {
	id, err := paramInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}
	t, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, t)
}

func (h *TransactionHandler) AddPayment(ctx *xhttp.RequestCtx) {
	id, err := paramInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}
	var req addPaymentRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.AddPayment(ctx, model.PaymentCreateRequest{
		Amount:        req.Amount,
		TransactionID: id,
		PaymentWayID:  req.PaymentWayID,
		VaultID:       req.VaultID,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

/* --------------------------------- Helpers ----------------------------------- */

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	return json.Unmarshal(ctx.PostBody(), dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(ctx, xhttp.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrValidation):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrRestricted):
		writeError(ctx, xhttp.StatusConflict, err.Error())
	default:
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
	}
}

func paramInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	v, _ := ctx.UserValue(name).(string)
	return strconv.ParseInt(v, 10, 64)
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func parseTime(s string) (time.Time, error) {
	// Accept RFC3339 or YYYY-MM-DD
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
