package handlers

import (
	"log"
	"net/http"

	response "montage_service/internal/adapter/http/dto/response"
	"montage_service/internal/usecase"

	"github.com/gin-gonic/gin"
)

// OrderHandler exposes the measurement service orders created by lead
// conversion.

type OrderHandler struct {
	usecase usecase.IOrderPaymentUseCase
}

func NewOrderHandler(uc usecase.IOrderPaymentUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.OrderResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.usecase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// ConfirmOrderPayment godoc
// @Summary      Confirm an order payment
// @Description  Checks the payment provider for an approved payment of the order, marks the order paid and moves a montage awaiting this payment to before_measurement. Repeated calls are no-ops.
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.OrderPaymentResponse
// @Failure      402  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders/{id}/paid [post]
func (h *OrderHandler) ConfirmOrderPayment(c *gin.Context) {
	orderID := c.Param("id")
	log.Printf("[order][handler] confirm start order_id=%s", orderID)

	order, m, err := h.usecase.ConfirmOrderPayment(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[order][handler] confirm failed order_id=%s err=%v", orderID, err)
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.OrderPaymentResponse{
		Order:   response.FromOrder(order),
		Montage: response.FromMontage(m),
	})
}
