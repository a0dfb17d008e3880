package api

import (
	"context"
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

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
	q    queries.CheckoutQueries
	loc  *time.Location
}

func NewCheckoutHandler(cmds commands.CheckoutCommands, q queries.CheckoutQueries, loc *time.Location) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds, q: q, loc: loc}
}

// @Summary Get checkout
// @Description Current checkout draft repriced against the live catalog
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /checkout [get]
func (h *CheckoutHandler) Get(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), s.ID, s.UserID)
	if err != nil {
		respondError(c, err, "Failed to load checkout")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutView(view))
}

// @Summary Get quote
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 200 {object} resdto.QuoteResponse
// @Router /checkout/quote [get]
func (h *CheckoutHandler) Quote(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	q, err := h.q.Quote(c.Request.Context(), s.ID, s.UserID)
	if err != nil {
		respondError(c, err, "Failed to price checkout")
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuote(q))
}

// @Summary Restore checkout
// @Description Re-apply the saved service selection onto the current catalog
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 200 {object} resdto.CheckoutResponse
// @Router /checkout/restore [post]
func (h *CheckoutHandler) Restore(c *gin.Context) {
	h.run(c, h.cmds.Restore)
}

// @Summary Toggle service
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Param request body reqdto.ToggleServiceRequest true "Service selection"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 404 {object} httperr.Response
// @Router /checkout/services [put]
func (h *CheckoutHandler) ToggleService(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req reqdto.ToggleServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.ToggleService(c.Request.Context(), s, req.ServiceID, *req.Selected, req.GetQuantity())
	if err != nil {
		respondError(c, err, "Failed to update services")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}

// @Summary Apply voucher
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Param request body reqdto.VoucherRequest true "Voucher code"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /checkout/voucher [put]
func (h *CheckoutHandler) ApplyVoucher(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req reqdto.VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.ApplyVoucher(c.Request.Context(), s, req.Code)
	if err != nil {
		respondError(c, err, "Failed to apply voucher")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}

// @Summary Remove voucher
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 200 {object} resdto.CheckoutResponse
// @Router /checkout/voucher [delete]
func (h *CheckoutHandler) RemoveVoucher(c *gin.Context) {
	h.run(c, h.cmds.RemoveVoucher)
}

// @Summary Set contact
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Param request body reqdto.ContactRequest true "Contact details"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Router /checkout/contact [put]
func (h *CheckoutHandler) SetContact(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req reqdto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.SetContact(c.Request.Context(), s, params)
	if err != nil {
		respondError(c, err, "Failed to save contact")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}

// @Summary Propose point redemption
// @Description Issue a short-lived ticket the customer must confirm before points are debited
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 201 {object} resdto.TicketResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /checkout/redemption [post]
func (h *CheckoutHandler) ProposeRedeem(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	ticket, err := h.cmds.ProposeRedeem(c.Request.Context(), s)
	if err != nil {
		respondError(c, err, "Failed to propose redemption")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromTicket(ticket))
}

// @Summary Confirm point redemption
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Param ticket path string true "Ticket ID"
// @Success 200 {object} resdto.RedeemResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /checkout/redemption/{ticket}/confirm [post]
func (h *CheckoutHandler) ConfirmRedeem(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	ticketID, ok := pathUUID(c, "ticket")
	if !ok {
		return
	}
	result, err := h.cmds.ConfirmRedeem(c.Request.Context(), s, ticketID)
	if err != nil {
		respondError(c, err, "Failed to redeem points")
		return
	}
	c.JSON(http.StatusOK, resdto.FromRedeemResult(result))
}

// @Summary Cancel pending redemption
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Param ticket path string true "Ticket ID"
// @Success 200 {object} resdto.CheckoutResponse
// @Router /checkout/redemption/{ticket} [delete]
func (h *CheckoutHandler) CancelRedeem(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	ticketID, ok := pathUUID(c, "ticket")
	if !ok {
		return
	}
	result, err := h.cmds.CancelRedeem(c.Request.Context(), s, ticketID)
	if err != nil {
		respondError(c, err, "Failed to cancel redemption")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}

// @Summary Undo redemption
// @Description Refund points already debited for this checkout
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 200 {object} resdto.RedeemResponse
// @Failure 400 {object} httperr.Response
// @Router /checkout/redemption [delete]
func (h *CheckoutHandler) UndoRedeem(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	result, err := h.cmds.UndoRedeem(c.Request.Context(), s)
	if err != nil {
		respondError(c, err, "Failed to refund points")
		return
	}
	c.JSON(http.StatusOK, resdto.FromRedeemResult(result))
}

// @Summary Proceed to payment
// @Description Mark the checkout so the page exit that follows is not an abandonment
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 200 {object} resdto.CheckoutResponse
// @Router /checkout/proceed [post]
func (h *CheckoutHandler) ProceedToPayment(c *gin.Context) {
	h.run(c, h.cmds.ProceedToPayment)
}

// @Summary Leave checkout
// @Description Page exit; abandons and refunds unless the customer is proceeding to payment
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 200 {object} resdto.AbandonResponse
// @Router /checkout/leave [post]
func (h *CheckoutHandler) Leave(c *gin.Context) {
	h.runAbandon(c, h.cmds.Leave)
}

// @Summary Abandon checkout
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 200 {object} resdto.AbandonResponse
// @Router /checkout/abandon [post]
func (h *CheckoutHandler) Abandon(c *gin.Context) {
	h.runAbandon(c, h.cmds.Abandon)
}

// @Summary Commit checkout
// @Description Persist one booking per consolidated reservation
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 201 {object} resdto.CommitResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /checkout/commit [post]
func (h *CheckoutHandler) Commit(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	result, err := h.cmds.Commit(c.Request.Context(), s)
	if err != nil {
		respondError(c, err, "Failed to commit checkout")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCommit(result.Bookings, result.Quote, h.loc))
}

// @Summary Loyalty balance
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.LoyaltyResponse
// @Failure 401 {object} httperr.Response
// @Router /loyalty [get]
func (h *CheckoutHandler) Loyalty(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	view, err := h.q.Loyalty(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load loyalty account")
		return
	}
	c.JSON(http.StatusOK, resdto.FromLoyaltyView(view))
}

func (h *CheckoutHandler) run(c *gin.Context, op func(ctx context.Context, s commands.Session) (*commands.CheckoutResult, error)) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	result, err := op(c.Request.Context(), s)
	if err != nil {
		respondError(c, err, "Checkout update failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}

func (h *CheckoutHandler) runAbandon(c *gin.Context, op func(ctx context.Context, s commands.Session) (*commands.AbandonResult, error)) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	result, err := op(c.Request.Context(), s)
	if err != nil {
		respondError(c, err, "Failed to close checkout")
		return
	}
	c.JSON(http.StatusOK, resdto.FromAbandonResult(result))
}
