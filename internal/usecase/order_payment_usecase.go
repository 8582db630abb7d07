package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase/interfaces"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderID     = errors.New("invalid order id")
	ErrPaymentNotApproved = errors.New("payment provider reports no approved payment for the order")
)

// IOrderPaymentUseCase handles the measurement service order once the
// payment provider reports it paid.
//
// Requested behavior:
//   - Ask the payment provider for an approved payment of the order; the
//     caller's word is never enough.
//   - Mark the order paid (idempotent).
//   - Move a montage waiting for that payment to before_measurement.

type IOrderPaymentUseCase interface {
	ConfirmOrderPayment(ctx context.Context, orderID string) (entities.Order, entities.Montage, error)
	GetOrder(ctx context.Context, orderID string) (entities.Order, error)
}

type OrderPaymentUseCase struct {
	orders  interfaces.IOrderRepository
	gateway interfaces.IPaymentGateway
	engine  *TransitionUseCase
}

var _ IOrderPaymentUseCase = (*OrderPaymentUseCase)(nil)

func NewOrderPaymentUseCase(orders interfaces.IOrderRepository, gateway interfaces.IPaymentGateway, engine *TransitionUseCase) *OrderPaymentUseCase {
	return &OrderPaymentUseCase{orders: orders, gateway: gateway, engine: engine}
}

func (u *OrderPaymentUseCase) ConfirmOrderPayment(ctx context.Context, orderID string) (entities.Order, entities.Montage, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, entities.Montage{}, ErrInvalidOrderID
	}
	log.Printf("[order][usecase] confirm payment start order_id=%s", orderID)

	order, err := u.GetOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, entities.Montage{}, err
	}
	wasPending := order.Status == entities.OrderStatusPending
	if wasPending {
		if u.gateway == nil {
			log.Printf("[order][usecase] gateway not configured order_id=%s", orderID)
			return entities.Order{}, entities.Montage{}, ErrPaymentUnavailable
		}
		paymentID, approved, err := u.gateway.FindApprovedPayment(ctx, orderID)
		if err != nil {
			log.Printf("[order][usecase] payment lookup failed order_id=%s err=%v", orderID, err)
			return entities.Order{}, entities.Montage{}, err
		}
		if !approved {
			log.Printf("[order][usecase] no approved payment order_id=%s", orderID)
			return entities.Order{}, entities.Montage{}, ErrPaymentNotApproved
		}
		order, err = u.orders.MarkPaid(ctx, orderID, paymentID, u.engine.now())
		if err != nil {
			log.Printf("[order][usecase] mark paid failed order_id=%s err=%v", orderID, err)
			return entities.Order{}, entities.Montage{}, err
		}
		if order.ID == "" {
			return entities.Order{}, entities.Montage{}, ErrOrderNotFound
		}
	}

	m, err := u.engine.load(ctx, order.MontageID)
	if err != nil {
		return entities.Order{}, entities.Montage{}, err
	}
	if m.Status != entities.StatusLeadAwaitingPayment || m.OrderID != order.ID {
		log.Printf("[order][usecase] montage not awaiting this payment order_id=%s montage_id=%s status=%s", orderID, m.ID, m.Status)
		return order, m, nil
	}

	m, outcomes, err := u.engine.run(ctx, m.ID, transitionRequest{target: entities.StatusBeforeMeasurement, kind: kindConversion})
	if err != nil {
		return entities.Order{}, entities.Montage{}, err
	}
	if outcomes[0].Err != nil {
		return entities.Order{}, entities.Montage{}, outcomes[0].Err
	}
	if wasPending {
		u.engine.recordAudit(ctx, m.ID, entities.ActionOrderPaid, fmt.Sprintf("Opłacono zamówienie %s (%d), płatność %s", order.ID, order.Amount, order.ProviderPaymentID))
	}
	log.Printf("[order][usecase] confirm payment success order_id=%s montage_id=%s status=%s", orderID, m.ID, m.Status)
	return order, m, nil
}

func (u *OrderPaymentUseCase) GetOrder(ctx context.Context, orderID string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}
