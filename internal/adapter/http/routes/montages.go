package routes

import (
	"montage_service/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathMontages  = "/montages"
	PathCustomers = "/customers"
	PathOrders    = "/orders"
	PathStatuses  = "/statuses"
	PathPing      = "/ping"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, handlers.Ping)
}

func addMontageRoutes(rg *gin.RouterGroup, h handlerSet) {
	rg.GET(PathStatuses, h.montages.ListStatuses)

	montages := rg.Group(PathMontages)
	{
		montages.POST("", h.montages.CreateMontage)
		montages.GET("/:id", h.montages.GetMontage)
		montages.GET("/:id/checklist", h.montages.ListChecklist)
		montages.GET("/:id/audit", h.montages.ListAuditLog)
		montages.POST("/:id/status", h.montages.TransitionStatus)
		montages.POST("/:id/convert", h.montages.ConvertLead)
		montages.PATCH("/:id/checklist/:item_id", h.checklist.ToggleChecklistItem)
	}

	customers := rg.Group(PathCustomers)
	{
		customers.POST("", h.customers.CreateCustomer)
		customers.GET("/:id", h.customers.GetCustomer)
	}

	orders := rg.Group(PathOrders)
	{
		orders.GET("/:id", h.orders.GetOrder)
		// Payment provider callback; the order is only confirmed once the
		// provider reports an approved payment for it.
		orders.POST("/:id/paid", h.orders.ConfirmOrderPayment)
	}
}
