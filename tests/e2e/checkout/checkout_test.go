//go:build e2e

package checkout_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"wellness-booking/internal/handler/dto/request"
	"wellness-booking/internal/handler/dto/response"
	"wellness-booking/internal/pkg/jwt"
	"wellness-booking/tests/common/authtest"
	"wellness-booking/tests/common/dbtest"
	"wellness-booking/tests/common/httptest"
	"wellness-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CheckoutSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *CheckoutSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *CheckoutSuite) SetupTest() {
	s.SharedSuite.SetupTest()
	e2e.SeedCatalog(s.T(), s.Mongo)
}

func (s *CheckoutSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	e2e.SeedCatalog(s.T(), s.Mongo)
}

func TestCheckoutSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CheckoutSuite))
}

// customer is one browser session of one signed-in user.
type customer struct {
	s       *CheckoutSuite
	userID  uuid.UUID
	token   string
	session string
}

func (s *CheckoutSuite) newCustomer() *customer {
	id, token := s.jwt.NewCustomer(s.T())
	return &customer{s: s, userID: id, token: token, session: uuid.NewString()}
}

func (c *customer) do(method, path string, body any) *httptest.Recorder {
	return httptest.PerformSessionRequest(c.s.T(), c.s.Router, method, path, body, c.token, c.session)
}

func (s *CheckoutSuite) venueDate(daysAhead int) string {
	return time.Now().In(s.Config.Booking.Location()).AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func (s *CheckoutSuite) item(date, start, end string) request.AddItemRequest {
	return request.AddItemRequest{RoomID: e2e.SpaRoomID, Date: date, Start: start, End: end}
}

func (s *CheckoutSuite) decode(w *httptest.Recorder, target any) {
	require.NoError(s.T(), httptest.DecodeJSON(w, target), w.Body.String())
}

func (c *customer) fillContact() {
	w := c.do(http.MethodPut, "/api/checkout/contact", request.ContactRequest{
		Name:  "Tran Thi Mai",
		Phone: "0912345678",
		Email: "mai@example.com",
	})
	require.Equal(c.s.T(), http.StatusOK, w.Code, w.Body.String())
}

func (s *CheckoutSuite) TestCartCheckoutAndCommit() {
	s.Run("adjacent cart items merge and commit into one pending booking", func() {
		t := s.T()
		c := s.newCustomer()
		date := s.venueDate(30)

		w := c.do(http.MethodPost, "/api/cart/items", s.item(date, "09:00", "10:00"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = c.do(http.MethodPost, "/api/cart/items", s.item(date, "10:00", "11:00"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = c.do(http.MethodPost, "/api/cart/checkout", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var draft response.CheckoutResponse
		s.decode(w, &draft)
		require.Len(t, draft.Reservations, 1)
		require.Equal(t, "09:00", draft.Reservations[0].Start)
		require.Equal(t, "11:00", draft.Reservations[0].End)
		require.Equal(t, int64(2*e2e.SpaRoomPrice), draft.Quote.Total)

		w = c.do(http.MethodGet, "/api/cart", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var cart response.CartResponse
		s.decode(w, &cart)
		require.Empty(t, cart.Items, "checkout consumes the cart")

		c.fillContact()
		w = c.do(http.MethodPost, "/api/checkout/commit", nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var committed response.CommitResponse
		s.decode(w, &committed)
		require.Len(t, committed.Bookings, 1)
		require.Equal(t, "pending", committed.Bookings[0].Status)
		require.Equal(t, int64(2*e2e.SpaRoomPrice), committed.Bookings[0].TotalPrice)
		require.Equal(t, "pending", dbtest.BookingStatus(t, s.DB, committed.Bookings[0].ID))

		w = c.do(http.MethodGet, "/api/bookings", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list response.BookingListResponse
		s.decode(w, &list)
		require.Len(t, list.Items, 1)
		require.Equal(t, committed.Bookings[0].ID, list.Items[0].ID)
	})

	s.Run("commit without contact is rejected and keeps the draft", func() {
		t := s.T()
		c := s.newCustomer()

		w := c.do(http.MethodPost, "/api/book-now", s.item(s.venueDate(31), "14:00", "15:00"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = c.do(http.MethodPost, "/api/checkout/commit", nil)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		w = c.do(http.MethodGet, "/api/checkout", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func (s *CheckoutSuite) TestVoucher() {
	s.Run("percent voucher lowers the quote and is stored on the booking", func() {
		t := s.T()
		c := s.newCustomer()

		w := c.do(http.MethodPost, "/api/book-now", s.item(s.venueDate(30), "09:00", "10:00"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = c.do(http.MethodPut, "/api/checkout/voucher", request.VoucherRequest{Code: e2e.VoucherCode})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = c.do(http.MethodGet, "/api/checkout/quote", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var quote response.QuoteResponse
		s.decode(w, &quote)
		require.True(t, quote.VoucherApplied)
		require.Equal(t, int64(20_000), quote.VoucherDiscount)
		require.Equal(t, int64(180_000), quote.Total)

		c.fillContact()
		w = c.do(http.MethodPost, "/api/checkout/commit", nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var committed response.CommitResponse
		s.decode(w, &committed)
		require.NotNil(t, committed.Bookings[0].VoucherCode)
		require.Equal(t, e2e.VoucherCode, *committed.Bookings[0].VoucherCode)
	})

	s.Run("unknown voucher is not found", func() {
		c := s.newCustomer()
		w := c.do(http.MethodPost, "/api/book-now", s.item(s.venueDate(30), "09:00", "10:00"))
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		w = c.do(http.MethodPut, "/api/checkout/voucher", request.VoucherRequest{Code: "NOPE"})
		require.Equal(s.T(), http.StatusNotFound, w.Code, w.Body.String())
	})
}

func (s *CheckoutSuite) TestDoubleBooking() {
	s.Run("second commit for the same slot loses with a conflict", func() {
		t := s.T()
		first, second := s.newCustomer(), s.newCustomer()
		date := s.venueDate(40)

		for _, c := range []*customer{first, second} {
			w := c.do(http.MethodPost, "/api/book-now", s.item(date, "10:00", "12:00"))
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			c.fillContact()
		}

		w := first.do(http.MethodPost, "/api/checkout/commit", nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = second.do(http.MethodPost, "/api/checkout/commit", nil)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		var body struct {
			Detail struct {
				RoomName string `json:"roomName"`
				Date     string `json:"date"`
			} `json:"detail"`
		}
		s.decode(w, &body)
		require.Equal(t, e2e.SpaRoomName, body.Detail.RoomName)

		w = second.do(http.MethodPost, "/api/book-now", s.item(date, "11:00", "13:00"))
		require.Equal(t, http.StatusConflict, w.Code, "overlapping selection is refused up front")

		w = second.do(http.MethodPost, "/api/book-now", s.item(date, "12:00", "13:00"))
		require.Equal(t, http.StatusCreated, w.Code, "touching intervals do not overlap")
	})
}

func (s *CheckoutSuite) TestLoyaltyRedemption() {
	s.Run("redeemed points are spent once and credited back on completion", func() {
		t := s.T()
		c := s.newCustomer()
		dbtest.SeedLoyaltyAccount(t, s.DB, c.userID, 120, "member")

		w := c.do(http.MethodPost, "/api/book-now", s.item(s.venueDate(30), "09:00", "10:00"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = c.do(http.MethodPost, "/api/checkout/redemption", nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var ticket response.TicketResponse
		s.decode(w, &ticket)
		require.Equal(t, 50, ticket.Points)

		confirm := fmt.Sprintf("/api/checkout/redemption/%s/confirm", ticket.ID)
		w = c.do(http.MethodPost, confirm, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var redeemed response.RedeemResponse
		s.decode(w, &redeemed)
		require.Equal(t, 70, redeemed.Balance)
		require.Equal(t, 70, dbtest.LoyaltyPoints(t, s.DB, c.userID))

		// confirming twice must not spend twice
		w = c.do(http.MethodPost, confirm, nil)
		require.NotEqual(t, http.StatusInternalServerError, w.Code, w.Body.String())
		require.Equal(t, 70, dbtest.LoyaltyPoints(t, s.DB, c.userID))
		require.Equal(t, 1, dbtest.CountLedgerRecords(t, s.DB, c.userID))

		c.fillContact()
		w = c.do(http.MethodPost, "/api/checkout/commit", nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var committed response.CommitResponse
		s.decode(w, &committed)
		bk := committed.Bookings[0]
		require.True(t, bk.UsePoints)
		require.Equal(t, int64(20_000), bk.PointsDiscount)
		require.Equal(t, int64(180_000), bk.TotalPrice)

		staff := s.jwt.GenerateToken(t, uuid.New(), jwt.RoleStaff)
		statusURL := fmt.Sprintf("/api/admin/bookings/%s/status", bk.ID)
		for _, status := range []string{"confirmed", "completed"} {
			w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL, request.StatusRequest{Status: status}, staff)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}
		require.Equal(t, 70+180, dbtest.LoyaltyPoints(t, s.DB, c.userID))
		require.Equal(t, 2, dbtest.CountLedgerRecords(t, s.DB, c.userID))
	})

	s.Run("abandoning after a confirmed redemption refunds the points", func() {
		t := s.T()
		c := s.newCustomer()
		dbtest.SeedLoyaltyAccount(t, s.DB, c.userID, 60, "member")

		w := c.do(http.MethodPost, "/api/book-now", s.item(s.venueDate(30), "15:00", "16:00"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = c.do(http.MethodPost, "/api/checkout/redemption", nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var ticket response.TicketResponse
		s.decode(w, &ticket)
		w = c.do(http.MethodPost, fmt.Sprintf("/api/checkout/redemption/%s/confirm", ticket.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, 10, dbtest.LoyaltyPoints(t, s.DB, c.userID))

		w = c.do(http.MethodPost, "/api/checkout/abandon", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var abandoned response.AbandonResponse
		s.decode(w, &abandoned)
		require.True(t, abandoned.Refunded)
		require.Equal(t, 60, dbtest.LoyaltyPoints(t, s.DB, c.userID))

		w = c.do(http.MethodGet, "/api/checkout", nil)
		require.Equal(t, http.StatusNotFound, w.Code, "abandoned draft is gone")
	})

	s.Run("not enough points is unprocessable", func() {
		c := s.newCustomer()
		dbtest.SeedLoyaltyAccount(s.T(), s.DB, c.userID, 49, "member")

		w := c.do(http.MethodPost, "/api/book-now", s.item(s.venueDate(30), "09:00", "10:00"))
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
		w = c.do(http.MethodPost, "/api/checkout/redemption", nil)
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

func (s *CheckoutSuite) TestSessionIsolation() {
	s.Run("another user cannot read a session they do not own", func() {
		t := s.T()
		owner := s.newCustomer()
		w := owner.do(http.MethodPost, "/api/book-now", s.item(s.venueDate(30), "09:00", "10:00"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		intruder := s.newCustomer()
		intruder.session = owner.session
		w = intruder.do(http.MethodGet, "/api/checkout", nil)
		require.Contains(t, []int{http.StatusForbidden, http.StatusNotFound}, w.Code)
	})

	s.Run("requests without a token are unauthorized", func() {
		w := httptest.PerformSessionRequest(s.T(), s.Router, http.MethodGet, "/api/checkout", nil, "", uuid.NewString())
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("expired tokens are unauthorized", func() {
		token := s.jwt.CreateExpiredToken(s.T(), uuid.New(), jwt.RoleCustomer)
		w := httptest.PerformSessionRequest(s.T(), s.Router, http.MethodGet, "/api/checkout", nil, token, uuid.NewString())
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}
