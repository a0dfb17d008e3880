//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"wellness-booking/internal/domain/booking"
	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/domain/voucher"
	"wellness-booking/internal/handler/api"
	resdto "wellness-booking/internal/handler/dto/response"
	"wellness-booking/internal/handler/middleware"
	"wellness-booking/internal/pkg/errs"
	"wellness-booking/internal/pkg/jwt"
	"wellness-booking/internal/usecase/commands"
	"wellness-booking/internal/usecase/queries"
	"wellness-booking/tests/common/builder"
	"wellness-booking/tests/common/httptest"
	"wellness-booking/tests/common/testutil"
	commandsmock "wellness-booking/tests/mock/commands"
	queriesmock "wellness-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	mockQueries  *queriesmock.MockCheckoutQueries
	handler      *api.CheckoutHandler
	userID       uuid.UUID
	sessionID    uuid.UUID
	draft        *checkout.Draft
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCheckoutQueries(s.mockCtrl)
	loc, _ := time.LoadLocation("Asia/Ho_Chi_Minh")
	s.handler = api.NewCheckoutHandler(s.mockCommands, s.mockQueries, loc)
	s.userID = uuid.New()
	s.sessionID = uuid.New()
	s.draft = builder.NewCheckoutBuilder().With(func(b *builder.CheckoutBuilder) {
		b.SessionID, b.UserID = s.sessionID, s.userID
	}).Build()

	auth := fakeAuth(s.userID, jwt.RoleCustomer)
	g := s.router.Group("/checkout", auth, middleware.RequireCheckoutSession())
	g.GET("", s.handler.Get)
	g.GET("/quote", s.handler.Quote)
	g.POST("/restore", s.handler.Restore)
	g.PUT("/services", s.handler.ToggleService)
	g.PUT("/voucher", s.handler.ApplyVoucher)
	g.DELETE("/voucher", s.handler.RemoveVoucher)
	g.PUT("/contact", s.handler.SetContact)
	g.POST("/redemption", s.handler.ProposeRedeem)
	g.POST("/redemption/:ticket/confirm", s.handler.ConfirmRedeem)
	g.DELETE("/redemption/:ticket", s.handler.CancelRedeem)
	g.DELETE("/redemption", s.handler.UndoRedeem)
	g.POST("/proceed", s.handler.ProceedToPayment)
	g.POST("/leave", s.handler.Leave)
	g.POST("/abandon", s.handler.Abandon)
	g.POST("/commit", s.handler.Commit)
	s.router.GET("/loyalty", auth, s.handler.Loyalty)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) session() commands.Session {
	return commands.Session{ID: s.sessionID, UserID: s.userID}
}

func (s *CheckoutHandlerTestSuite) do(method, path string, body any) *httptest.Recorder {
	return httptest.PerformSessionRequest(s.T(), s.router, method, path, body, "bearer-token", s.sessionID.String())
}

func (s *CheckoutHandlerTestSuite) TestGet() {
	s.Run("success: returns draft and quote", func() {
		quote := pricing.Quote{Subtotal: 200_000, VoucherDiscount: 20_000, Total: 180_000, RewardPoints: 180, VoucherApplied: true}
		s.mockQueries.EXPECT().Get(gomock.Any(), s.sessionID, s.userID).
			Return(&queries.CheckoutView{Draft: s.draft, Quote: quote}, nil).Times(1)

		rec := s.do(http.MethodGet, "/checkout", nil)

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(180_000), body.Quote.Total)
		s.Equal(180, body.Quote.RewardPoints)
		s.Equal("an@example.com", body.Contact.Email)
	})

	s.Run("error: 403 Forbidden for another customer's checkout", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), s.sessionID, s.userID).
			Return(nil, errs.Mark(queries.ErrCheckoutAccess, errs.ErrForbidden)).Times(1)

		rec := s.do(http.MethodGet, "/checkout", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

func (s *CheckoutHandlerTestSuite) TestQuote() {
	rejected := pricing.Quote{Subtotal: 50_000, Total: 50_000, VoucherRejection: voucher.ErrVoucherMinOrderNotMet}
	s.mockQueries.EXPECT().Quote(gomock.Any(), s.sessionID, s.userID).Return(rejected, nil).Times(1)

	rec := s.do(http.MethodGet, "/checkout/quote", nil)

	var body resdto.QuoteResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.False(body.VoucherApplied)
	s.Equal(voucher.ErrVoucherMinOrderNotMet.Error(), body.VoucherMessage)
}

func (s *CheckoutHandlerTestSuite) TestToggleService() {
	url := "/checkout/services"
	reqBody := map[string]any{"serviceId": "svc-towel", "selected": true, "quantity": 3}

	s.Run("success: forwards selection and quantity", func() {
		s.mockCommands.EXPECT().ToggleService(gomock.Any(), s.session(), "svc-towel", true, 3).
			Return(&commands.CheckoutResult{Draft: s.draft}, nil).Times(1)
		rec := s.do(http.MethodPut, url, reqBody)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: deselect without quantity", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("selected", false), testutil.Field("quantity", nil))
		s.mockCommands.EXPECT().ToggleService(gomock.Any(), s.session(), "svc-towel", false, 1).
			Return(&commands.CheckoutResult{Draft: s.draft}, nil).Times(1)
		rec := s.do(http.MethodPut, url, body)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseCart{
			{name: "missing field: serviceId", mutate: testutil.Field("serviceId", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: selected", mutate: testutil.Field("selected", nil), expectCode: http.StatusBadRequest},
			{name: "quantity boundary invalid (11)", mutate: testutil.Field("quantity", 11), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := s.do(http.MethodPut, url, testutil.DtoMap(s.T(), reqBody, tc.mutate))
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 404 Not Found for a service outside the catalog", func() {
		s.mockCommands.EXPECT().ToggleService(gomock.Any(), s.session(), "svc-towel", true, 3).
			Return(nil, errs.Mark(checkout.ErrUnknownService, errs.ErrNotFound)).Times(1)
		rec := s.do(http.MethodPut, url, reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "service is not offered")
	})
}

func (s *CheckoutHandlerTestSuite) TestApplyVoucher() {
	url := "/checkout/voucher"

	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"expired", errs.Mark(voucher.ErrVoucherExpired, errs.ErrValidation), http.StatusBadRequest, ""},
		{"unknown code", errs.Mark(errs.New("voucher not found"), errs.ErrNotFound), http.StatusNotFound, "voucher not found"},
		{"minimum order not met", errs.Mark(voucher.ErrVoucherMinOrderNotMet, errs.ErrInsufficientResource), http.StatusUnprocessableEntity, ""},
		{"checkout closed", errs.Mark(checkout.ErrDraftClosed, errs.ErrConflict), http.StatusConflict, "no longer open"},
	}
	for _, tc := range cases {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().ApplyVoucher(gomock.Any(), s.session(), "SPRING10").Return(nil, tc.err).Times(1)
			rec := s.do(http.MethodPut, url, map[string]any{"code": "SPRING10"})
			httptest.AssertErrorResponse(s.T(), rec, tc.code, tc.msg)
		})
	}

	s.Run("error: 400 Bad Request without code", func() {
		rec := s.do(http.MethodPut, url, map[string]any{})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("success: remove voucher", func() {
		s.mockCommands.EXPECT().RemoveVoucher(gomock.Any(), s.session()).
			Return(&commands.CheckoutResult{Draft: s.draft}, nil).Times(1)
		rec := s.do(http.MethodDelete, url, nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *CheckoutHandlerTestSuite) TestSetContact() {
	reqBody := map[string]any{"name": "Tran Thi Binh", "phone": "0912345678", "email": "binh@example.com"}

	s.mockCommands.EXPECT().SetContact(gomock.Any(), s.session(), commands.ContactParams{
		Name: "Tran Thi Binh", Phone: "0912345678", Email: "binh@example.com",
	}).Return(&commands.CheckoutResult{Draft: s.draft}, nil).Times(1)

	rec := s.do(http.MethodPut, "/checkout/contact", reqBody)
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

	rec = s.do(http.MethodPut, "/checkout/contact", testutil.DtoMap(s.T(), reqBody, testutil.Field("email", nil)))
	httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
}

func (s *CheckoutHandlerTestSuite) TestRedemptionFlow() {
	now := time.Date(2030, time.March, 1, 9, 0, 0, 0, time.UTC)
	ticket := &loyalty.RedemptionTicket{
		ID:        uuid.New(),
		Points:    loyalty.RedemptionCost,
		Discount:  loyalty.RedemptionValue,
		IssuedAt:  now,
		ExpiresAt: now.Add(loyalty.DefaultTicketTTL),
	}

	s.Run("propose: 201 Created with ticket", func() {
		s.mockCommands.EXPECT().ProposeRedeem(gomock.Any(), s.session()).Return(ticket, nil).Times(1)
		rec := s.do(http.MethodPost, "/checkout/redemption", nil)

		var body resdto.TicketResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(ticket.ID, body.ID)
		s.Equal(int64(20_000), body.Discount)
	})

	s.Run("propose: 422 for insufficient points", func() {
		s.mockCommands.EXPECT().ProposeRedeem(gomock.Any(), s.session()).
			Return(nil, errs.Mark(loyalty.ErrInsufficientPoints, errs.ErrInsufficientResource)).Times(1)
		rec := s.do(http.MethodPost, "/checkout/redemption", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "not enough loyalty points")
	})

	s.Run("confirm: returns balance and repriced checkout", func() {
		s.draft.PointsRedeemed = true
		s.mockCommands.EXPECT().ConfirmRedeem(gomock.Any(), s.session(), ticket.ID).
			Return(&commands.RedeemResult{
				Balance:  10,
				Checkout: &commands.CheckoutResult{Draft: s.draft, Quote: pricing.Quote{PointsDiscount: money.Money(20_000)}},
			}, nil).Times(1)

		rec := s.do(http.MethodPost, "/checkout/redemption/"+ticket.ID.String()+"/confirm", nil)

		var body resdto.RedeemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(10, body.Balance)
		s.True(body.Checkout.PointsRedeemed)
		s.Equal(int64(20_000), body.Checkout.Quote.PointsDiscount)
	})

	s.Run("confirm: 400 for an expired ticket", func() {
		s.mockCommands.EXPECT().ConfirmRedeem(gomock.Any(), s.session(), ticket.ID).
			Return(nil, errs.Mark(loyalty.ErrTicketExpired, errs.ErrValidation)).Times(1)
		rec := s.do(http.MethodPost, "/checkout/redemption/"+ticket.ID.String()+"/confirm", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "expired")
	})

	s.Run("confirm: 409 for a refunded ticket", func() {
		s.mockCommands.EXPECT().ConfirmRedeem(gomock.Any(), s.session(), ticket.ID).
			Return(nil, errs.Mark(loyalty.ErrTicketSettled, errs.ErrConflict)).Times(1)
		rec := s.do(http.MethodPost, "/checkout/redemption/"+ticket.ID.String()+"/confirm", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already refunded")
	})

	s.Run("confirm: 400 for malformed ticket id", func() {
		rec := s.do(http.MethodPost, "/checkout/redemption/nope/confirm", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ticket")
	})

	s.Run("cancel pending ticket", func() {
		s.mockCommands.EXPECT().CancelRedeem(gomock.Any(), s.session(), ticket.ID).
			Return(&commands.CheckoutResult{Draft: s.draft}, nil).Times(1)
		rec := s.do(http.MethodDelete, "/checkout/redemption/"+ticket.ID.String(), nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("undo: 400 when nothing is redeemed", func() {
		s.mockCommands.EXPECT().UndoRedeem(gomock.Any(), s.session()).
			Return(nil, errs.Mark(checkout.ErrNotRedeemed, errs.ErrValidation)).Times(1)
		rec := s.do(http.MethodDelete, "/checkout/redemption", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "no points are redeemed")
	})
}

func (s *CheckoutHandlerTestSuite) TestLeaveAndAbandon() {
	balance := 60

	s.Run("proceed then leave keeps points", func() {
		s.mockCommands.EXPECT().ProceedToPayment(gomock.Any(), s.session()).
			Return(&commands.CheckoutResult{Draft: s.draft}, nil).Times(1)
		s.mockCommands.EXPECT().Leave(gomock.Any(), s.session()).
			Return(&commands.AbandonResult{}, nil).Times(1)

		httptest.AssertSuccessResponse(s.T(), s.do(http.MethodPost, "/checkout/proceed", nil), http.StatusOK, nil)

		var body resdto.AbandonResponse
		httptest.AssertSuccessResponse(s.T(), s.do(http.MethodPost, "/checkout/leave", nil), http.StatusOK, &body)
		s.False(body.Refunded)
		s.Nil(body.Balance)
	})

	s.Run("abandon reports the refund", func() {
		s.mockCommands.EXPECT().Abandon(gomock.Any(), s.session()).
			Return(&commands.AbandonResult{Refunded: true, Balance: &balance}, nil).Times(1)

		var body resdto.AbandonResponse
		httptest.AssertSuccessResponse(s.T(), s.do(http.MethodPost, "/checkout/abandon", nil), http.StatusOK, &body)
		s.True(body.Refunded)
		s.Require().NotNil(body.Balance)
		s.Equal(60, *body.Balance)
	})
}

func (s *CheckoutHandlerTestSuite) TestCommit() {
	b := builder.NewBookingBuilder().Build()

	s.Run("success: 201 Created with venue-local times", func() {
		s.mockCommands.EXPECT().Commit(gomock.Any(), s.session()).
			Return(&commands.CommitResult{Bookings: []*booking.Booking{b}, Quote: pricing.Quote{Total: b.TotalPrice()}}, nil).Times(1)

		rec := s.do(http.MethodPost, "/checkout/commit", nil)

		var body resdto.CommitResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Require().Len(body.Bookings, 1)
		s.Equal(b.ID(), body.Bookings[0].ID)
		s.Regexp(`^\d{2}:\d{2} \d{2}/\d{2}/\d{4}$`, body.Bookings[0].Start)
		s.Equal(b.TotalPrice().Int64(), body.Quote.Total)
	})

	s.Run("error: 400 Bad Request without contact", func() {
		s.mockCommands.EXPECT().Commit(gomock.Any(), s.session()).
			Return(nil, errs.Mark(booking.ErrMissingContact, errs.ErrValidation)).Times(1)
		httptest.AssertErrorResponse(s.T(), s.do(http.MethodPost, "/checkout/commit", nil), http.StatusBadRequest, "contact")
	})
}

func (s *CheckoutHandlerTestSuite) TestLoyalty() {
	s.mockQueries.EXPECT().Loyalty(gomock.Any(), s.userID).
		Return(&queries.LoyaltyView{AvailablePoints: 120, StarTier: "silver", CanRedeem: true}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/loyalty", nil, "bearer-token")

	var body resdto.LoyaltyResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(resdto.LoyaltyResponse{AvailablePoints: 120, StarTier: "silver", CanRedeem: true}, body)
}
