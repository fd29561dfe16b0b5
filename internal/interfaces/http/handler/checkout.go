package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/shopfront/backend/internal/application/checkout"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout submission
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Submit godoc
// @Summary      Submit the current cart as an order
// @Description  Validates the checkout form, reserves stock and creates a
// @Description  pending order. The cart is cleared on success.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkoutapp.CheckoutRequest true "Checkout form"
// @Success      201 {object} dto.Response{data=checkoutapp.CheckoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req checkoutapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.checkoutService.Submit(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.Submit)
}
