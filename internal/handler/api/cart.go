package api

import (
	"net/http"

	reqdto "wellness-booking/internal/handler/dto/request"
	resdto "wellness-booking/internal/handler/dto/response"
	"wellness-booking/internal/handler/httperr"
	"wellness-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cmds commands.CartCommands
}

func NewCartHandler(cmds commands.CartCommands) *CartHandler {
	return &CartHandler{cmds: cmds}
}

// @Summary Add cart item
// @Description Stage a room slot with optional services in the session cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Param request body reqdto.AddItemRequest true "Cart item"
// @Success 201 {object} resdto.CartItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	params, ok := h.bindItem(c)
	if !ok {
		return
	}
	item, err := h.cmds.AddItem(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to add cart item")
		return
	}
	c.Header("Location", "/api/cart/items/"+item.ID.String())
	c.JSON(http.StatusCreated, resdto.FromDraftSelection(item))
}

// @Summary List cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 200 {object} resdto.CartResponse
// @Router /cart [get]
func (h *CartHandler) List(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	items, err := h.cmds.List(c.Request.Context(), s.ID)
	if err != nil {
		respondError(c, err, "Failed to load cart")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCart(items))
}

// @Summary Remove cart item
// @Tags cart
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Param id path string true "Cart item ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.RemoveItem(c.Request.Context(), s.ID, itemID); err != nil {
		respondError(c, err, "Failed to remove cart item")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Check out cart
// @Description Merge the staged cart into consolidated reservations and open the checkout
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	result, err := h.cmds.Checkout(c.Request.Context(), s)
	if err != nil {
		respondError(c, err, "Failed to start checkout")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}

// @Summary Book now
// @Description Skip the cart and open a checkout for a single slot
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Checkout-Session header string true "Checkout session id"
// @Param request body reqdto.AddItemRequest true "Slot"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /book-now [post]
func (h *CartHandler) BookNow(c *gin.Context) {
	params, ok := h.bindItem(c)
	if !ok {
		return
	}
	result, err := h.cmds.BookNow(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to start checkout")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}

func (h *CartHandler) bindItem(c *gin.Context) (commands.AddItemParams, bool) {
	s, ok := currentSession(c)
	if !ok {
		return commands.AddItemParams{}, false
	}
	var req reqdto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return commands.AddItemParams{}, false
	}
	params, err := req.ToParams(s)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return commands.AddItemParams{}, false
	}
	return params, true
}
