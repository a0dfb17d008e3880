package api

import (
	"net/http"
	"time"

	reqdto "wellness-booking/internal/handler/dto/request"
	resdto "wellness-booking/internal/handler/dto/response"
	"wellness-booking/internal/handler/httperr"
	"wellness-booking/internal/handler/middleware"
	"wellness-booking/internal/usecase/commands"
	"wellness-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
	loc  *time.Location
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, loc *time.Location) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, loc: loc}
}

// @Summary List my bookings
// @Description Newest first, keyset paginated
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (1-100)"
// @Param after query string false "Cursor from the previous page"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var query reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	var after *queries.Cursor
	if query.After != "" {
		after = &queries.Cursor{After: query.After}
	}
	views, next, err := h.q.ListByUser(c.Request.Context(), userID, after, query.Limit)
	if err != nil {
		respondError(c, err, "Failed to list bookings")
		return
	}
	resp, err := resdto.FromBookingViews(views, next, h.loc)
	if err != nil {
		respondError(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	viewer := queries.Viewer{UserID: userID, Staff: middleware.IsStaff(c)}
	view, err := h.q.GetByID(c.Request.Context(), viewer, id)
	if err != nil {
		respondError(c, err, "Failed to load booking")
		return
	}
	resp, err := resdto.FromBookingView(view, h.loc)
	if err != nil {
		respondError(c, err, "Failed to load booking")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Change booking status
// @Description Staff-only lifecycle transition; completing a booking credits loyalty points
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.StatusRequest true "Target status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/bookings/{id}/status [patch]
func (h *BookingHandler) TransitionStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	b, err := h.cmds.TransitionStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err, "Failed to update booking")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b, h.loc))
}
