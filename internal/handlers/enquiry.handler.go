package handlers

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fasthttp/router"
	"github.com/funstay/leadsync/internal/model"
	xhttp "github.com/funstay/leadsync/pkg/http"
)

type LeadQueryService interface {
	List(ctx context.Context, f model.LeadFilter) ([]*model.Lead, int64, error)
}

type EnquiryHandler struct {
	svc LeadQueryService
}

func RegisterEnquiryRoutes(e *router.Group, h *EnquiryHandler) {
	e.GET("/enquiries", h.ListEnquiries)
}

func NewEnquiryHandler(leadQueries LeadQueryService) *EnquiryHandler {
	return &EnquiryHandler{
		svc: leadQueries,
	}
}

type listResponse struct {
	Items []*model.Lead `json:"items"`
	Total int64         `json:"total"`
}

/* --------------------------------- Routes ----------------------------------- */

// ListEnquiries returns stored leads, newest first by default.
func (h *EnquiryHandler) ListEnquiries(ctx *xhttp.RequestCtx) {
	f := model.LeadFilter{Desc: true}

	if v := query(ctx, "phone_number"); v != "" {
		f.PhoneNumber = &v
	}
	if v := query(ctx, "country_code"); v != "" {
		f.CountryCode = &v
	}
	if v := query(ctx, "lead_date"); v != "" {
		f.LeadDate = &v
	}
	if v := query(ctx, "limit"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Limit = n
		}
	}
	if v := query(ctx, "offset"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Offset = n
		}
	}
	if strings.EqualFold(query(ctx, "order"), "asc") {
		f.Desc = false
	}

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listResponse{Items: items, Total: total})
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

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}
