package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/funstay/leadsync/internal/model"
	xhttp "github.com/funstay/leadsync/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type MockLeadQueryService struct {
	mock.Mock
}

func (m *MockLeadQueryService) List(ctx context.Context, f model.LeadFilter) ([]*model.Lead, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Lead), args.Get(1).(int64), args.Error(2)
}

func setupTestContext(method, path string) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	return ctx
}

func TestEnquiryHandler_ListEnquiries(t *testing.T) {
	t.Run("default listing is newest first", func(t *testing.T) {
		svc := new(MockLeadQueryService)
		handler := NewEnquiryHandler(svc)

		leads := []*model.Lead{
			{ID: 2, LeadDate: "2025-03-06", PhoneNumber: "9876543210", CountryCode: "+91"},
			{ID: 1, LeadDate: "2025-03-05", PhoneNumber: "9876543210", CountryCode: "+91"},
		}

		svc.On("List", mock.Anything, mock.MatchedBy(func(f model.LeadFilter) bool {
			return f.Desc && f.PhoneNumber == nil && f.Limit == 0
		})).Return(leads, int64(2), nil)

		ctx := setupTestContext("GET", "/api/v1/enquiries")
		handler.ListEnquiries(ctx)

		assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())

		var resp listResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, int64(2), resp.Total)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, int64(2), resp.Items[0].ID)

		svc.AssertExpectations(t)
	})

	t.Run("filters and pagination pass through", func(t *testing.T) {
		svc := new(MockLeadQueryService)
		handler := NewEnquiryHandler(svc)

		svc.On("List", mock.Anything, mock.MatchedBy(func(f model.LeadFilter) bool {
			return f.PhoneNumber != nil && *f.PhoneNumber == "9876543210" &&
				f.CountryCode != nil && *f.CountryCode == "+91" &&
				f.LeadDate != nil && *f.LeadDate == "2025-03-05" &&
				f.Limit == 10 && f.Offset == 20 && !f.Desc
		})).Return([]*model.Lead{}, int64(0), nil)

		ctx := setupTestContext("GET", "/api/v1/enquiries?phone_number=9876543210&country_code=%2B91&lead_date=2025-03-05&limit=10&offset=20&order=asc")
		handler.ListEnquiries(ctx)

		assert.Equal(t, xhttp.StatusOK, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("service error maps to 500", func(t *testing.T) {
		svc := new(MockLeadQueryService)
		handler := NewEnquiryHandler(svc)

		svc.On("List", mock.Anything, mock.Anything).
			Return(nil, int64(0), errors.New("db unavailable"))

		ctx := setupTestContext("GET", "/api/v1/enquiries")
		handler.ListEnquiries(ctx)

		assert.Equal(t, xhttp.StatusInternalServerError, ctx.Response.StatusCode())

		var resp map[string]string
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Contains(t, resp["error"], "db unavailable")
	})
}

func TestHealthHandler_GetHealth(t *testing.T) {
	handler := NewHealthHandler(nil)
	ctx := setupTestContext("GET", "/health")
	handler.GetHealth(ctx)

	assert.Equal(t, "success", string(ctx.Response.Body()))
}
