//go:build unit

package handler_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/handler"
	"wellness-booking/internal/handler/api"
	"wellness-booking/internal/handler/middleware"
	"wellness-booking/internal/infra/metrics"
	"wellness-booking/internal/pkg/config"
	"wellness-booking/internal/pkg/jwt"
	"wellness-booking/tests/common/builder"
	"wellness-booking/tests/common/httptest"
	commandsmock "wellness-booking/tests/mock/commands"
	queriesmock "wellness-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubValidator map[string]jwt.Role

func (v stubValidator) ValidateToken(token string) (uuid.UUID, jwt.Role, error) {
	role, ok := v[token]
	if !ok {
		return uuid.Nil, "", jwt.ErrInvalidToken
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(token)), role, nil
}

type routerFixture struct {
	engine   *gin.Engine
	cart     *commandsmock.MockCartCommands
	bookings *commandsmock.MockBookingCommands
}

func newRouterFixture(t *testing.T, burst int) routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	cart := commandsmock.NewMockCartCommands(ctrl)
	bookings := commandsmock.NewMockBookingCommands(ctrl)
	h := handler.Handlers{
		Cart:     api.NewCartHandler(cart),
		Checkout: api.NewCheckoutHandler(commandsmock.NewMockCheckoutCommands(ctrl), queriesmock.NewMockCheckoutQueries(ctrl), time.UTC),
		Booking:  api.NewBookingHandler(bookings, queriesmock.NewMockBookingQueries(ctrl), time.UTC),
	}

	reg := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(reg)
	cfg := config.NewTestConfig()
	cfg.Metrics.Enabled = true

	engine := gin.New()
	handler.NewRouter(engine, cfg, h,
		middleware.NewAuthMiddleware(stubValidator{"customer": jwt.RoleCustomer, "staff": jwt.RoleStaff}),
		middleware.NewRateLimiter(0.001, burst, recorder.RateLimited),
		handler.Observability{Observer: recorder, Gatherer: reg},
	)
	return routerFixture{engine: engine, cart: cart, bookings: bookings}
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t, 10)
	rec := httptest.PerformRequest(t, f.engine, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthAndSessionGates(t *testing.T) {
	f := newRouterFixture(t, 10)

	tests := []struct {
		name    string
		token   string
		session string
		code    int
		msg     string
	}{
		{name: "no token", token: "", session: uuid.NewString(), code: http.StatusUnauthorized, msg: "Access token required"},
		{name: "unknown token", token: "forged", session: uuid.NewString(), code: http.StatusUnauthorized, msg: "Invalid or expired token"},
		{name: "no session header", token: "customer", session: "", code: http.StatusBadRequest, msg: middleware.CheckoutSessionHeader},
		{name: "malformed session header", token: "customer", session: "abc", code: http.StatusBadRequest, msg: middleware.CheckoutSessionHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.session != "" {
				headers[middleware.CheckoutSessionHeader] = tt.session
			}
			rec := httptest.PerformRequestWithHeaders(t, f.engine, http.MethodGet, "/api/cart", nil, tt.token, headers)
			httptest.AssertErrorResponse(t, rec, tt.code, tt.msg)
		})
	}
}

func TestRouter_AdminRequiresStaff(t *testing.T) {
	f := newRouterFixture(t, 10)
	b := builder.NewBookingBuilder().WithStatus(reservation.StatusConfirmed).Build()
	url := "/api/admin/bookings/" + b.ID().String() + "/status"

	rec := httptest.PerformRequest(t, f.engine, http.MethodPatch, url, map[string]any{"status": "confirmed"}, "customer")
	httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")

	f.bookings.EXPECT().TransitionStatus(gomock.Any(), b.ID(), "confirmed").Return(b, nil).Times(1)
	rec = httptest.PerformRequest(t, f.engine, http.MethodPatch, url, map[string]any{"status": "confirmed"}, "staff")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimitAndMetrics(t *testing.T) {
	f := newRouterFixture(t, 1)
	session := uuid.NewString()
	body := builder.NewDraftBuilder().BuildAddItemRequestDTO()

	f.cart.EXPECT().AddItem(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom")).Times(1)

	first := httptest.PerformSessionRequest(t, f.engine, http.MethodPost, "/api/cart/items", body, "customer", session)
	assert.Equal(t, http.StatusInternalServerError, first.Code)

	second := httptest.PerformSessionRequest(t, f.engine, http.MethodPost, "/api/cart/items", body, "customer", session)
	httptest.AssertErrorResponse(t, second, http.StatusTooManyRequests, "Too many requests")
	httptest.AssertHeaders(t, second, map[string]string{"Retry-After": "1"})

	rec := httptest.PerformRequest(t, f.engine, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `wellness_http_requests_total{code="429",method="POST",route="/api/cart/items"} 1`)
	assert.Contains(t, rec.Body.String(), "wellness_rate_limit_exceeded_total 1")
}
