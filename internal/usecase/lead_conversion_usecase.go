package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"montage_service/internal/domain/entities"
	"montage_service/internal/domain/finance"
	"montage_service/internal/domain/workflow"
	"montage_service/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrNotALead             = errors.New("montage is not a lead")
	ErrNoCustomerForPayment = errors.New("montage has no customer to charge")
	ErrInvalidMeasurerID    = errors.New("invalid measurer id")
	ErrPaymentUnavailable   = errors.New("payment gateway not configured")
)

// ILeadConversionUseCase converts a lead into a job.
//
// Requested behavior:
//   - Without payment: assign the measurer and move the montage straight to
//     before_measurement.
//   - With payment: create the measurement service order, obtain a payment
//     link and park the montage in lead_awaiting_payment until the order is paid.

type ILeadConversionUseCase interface {
	AssignMeasurerAndAdvance(ctx context.Context, montageID, measurerID string, requirePayment bool) (ConversionResult, error)
}

type ConversionResult struct {
	PaymentRequired bool
	PaymentLink     string
	Montage         entities.Montage
	Order           *entities.Order
}

type LeadConversionUseCase struct {
	cfg       *workflow.Config
	montages  interfaces.IMontageRepository
	customers interfaces.ICustomerRepository
	orders    interfaces.IOrderRepository
	gateway   interfaces.IPaymentGateway
	tokens    interfaces.IAccessTokenIssuer
	engine    *TransitionUseCase
}

var _ ILeadConversionUseCase = (*LeadConversionUseCase)(nil)

func NewLeadConversionUseCase(cfg *workflow.Config, montages interfaces.IMontageRepository, customers interfaces.ICustomerRepository, orders interfaces.IOrderRepository, gateway interfaces.IPaymentGateway, tokens interfaces.IAccessTokenIssuer, engine *TransitionUseCase) *LeadConversionUseCase {
	return &LeadConversionUseCase{
		cfg:       cfg,
		montages:  montages,
		customers: customers,
		orders:    orders,
		gateway:   gateway,
		tokens:    tokens,
		engine:    engine,
	}
}

func (u *LeadConversionUseCase) AssignMeasurerAndAdvance(ctx context.Context, montageID, measurerID string, requirePayment bool) (ConversionResult, error) {
	montageID = strings.TrimSpace(montageID)
	measurerID = strings.TrimSpace(measurerID)
	if montageID == "" {
		return ConversionResult{}, ErrInvalidMontageID
	}
	if measurerID == "" {
		return ConversionResult{}, ErrInvalidMeasurerID
	}
	log.Printf("[montage][lead] conversion start montage_id=%s measurer_id=%s require_payment=%t", montageID, measurerID, requirePayment)

	m, err := u.engine.load(ctx, montageID)
	if err != nil {
		return ConversionResult{}, err
	}
	if !u.cfg.IsLead(m.Status) {
		log.Printf("[montage][lead] not a lead montage_id=%s status=%s", montageID, m.Status)
		return ConversionResult{}, ErrNotALead
	}

	if !requirePayment {
		if _, err := u.assignMeasurer(ctx, m, measurerID); err != nil {
			return ConversionResult{}, err
		}
		updated, err := u.advance(ctx, montageID, entities.StatusBeforeMeasurement)
		if err != nil {
			return ConversionResult{}, err
		}
		u.engine.recordAudit(ctx, montageID, entities.ActionLeadConverted, "Lead przekształcony w zlecenie bez płatności za pomiar")
		log.Printf("[montage][lead] converted montage_id=%s status=%s", montageID, updated.Status)
		return ConversionResult{Montage: updated}, nil
	}

	if m.CustomerID == "" {
		return ConversionResult{}, ErrNoCustomerForPayment
	}
	customer, err := u.customers.GetByID(ctx, m.CustomerID)
	if err != nil {
		log.Printf("[montage][lead] customer lookup failed montage_id=%s customer_id=%s err=%v", montageID, m.CustomerID, err)
		return ConversionResult{}, err
	}
	if customer.ID == "" {
		return ConversionResult{}, ErrNoCustomerForPayment
	}

	// A retried conversion reuses the pending order instead of charging twice.
	if m.Status == entities.StatusLeadAwaitingPayment && m.OrderID != "" {
		existing, err := u.orders.GetByID(ctx, m.OrderID)
		if err != nil {
			return ConversionResult{}, err
		}
		if existing.ID != "" && existing.Status == entities.OrderStatusPending {
			log.Printf("[montage][lead] reusing pending order montage_id=%s order_id=%s", montageID, existing.ID)
			return ConversionResult{PaymentRequired: true, PaymentLink: existing.PaymentLink, Montage: m, Order: &existing}, nil
		}
	}
	if u.gateway == nil {
		log.Printf("[montage][lead] gateway not configured montage_id=%s", montageID)
		return ConversionResult{}, ErrPaymentUnavailable
	}

	svc := u.cfg.MeasurementService()
	order := entities.Order{
		ID:          uuid.NewString(),
		MontageID:   montageID,
		CustomerID:  customer.ID,
		ProductID:   svc.ID,
		Description: strings.TrimSpace(svc.Name + " " + m.DisplayCode),
		Amount:      finance.ToMinorUnits(svc.Price),
		Status:      entities.OrderStatusPending,
		CreatedAt:   u.engine.now(),
	}
	link, err := u.gateway.CreatePaymentLink(ctx, order, customer)
	if err != nil {
		log.Printf("[montage][lead] payment link failed montage_id=%s order_id=%s err=%v", montageID, order.ID, err)
		return ConversionResult{}, err
	}
	order.PaymentLink = link

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		log.Printf("[montage][lead] order create failed montage_id=%s order_id=%s err=%v", montageID, order.ID, err)
		return ConversionResult{}, err
	}
	if _, err := u.assignMeasurer(ctx, m, measurerID); err != nil {
		return ConversionResult{}, err
	}

	token := m.CustomerAccessToken
	if token == "" && u.tokens != nil {
		token, err = u.tokens.Issue(montageID, customer.ID)
		if err != nil {
			log.Printf("[montage][lead] access token failed montage_id=%s err=%v", montageID, err)
			return ConversionResult{}, err
		}
	}
	if _, err := u.montages.LinkOrder(ctx, montageID, created.ID, token); err != nil {
		log.Printf("[montage][lead] link order failed montage_id=%s order_id=%s err=%v", montageID, created.ID, err)
		return ConversionResult{}, err
	}

	updated, err := u.advance(ctx, montageID, entities.StatusLeadAwaitingPayment)
	if err != nil {
		return ConversionResult{}, err
	}
	u.engine.recordAudit(ctx, montageID, entities.ActionLeadConverted, fmt.Sprintf("Utworzono zamówienie %s na usługę pomiaru (%d)", created.ID, created.Amount))
	log.Printf("[montage][lead] awaiting payment montage_id=%s order_id=%s amount=%d", montageID, created.ID, created.Amount)
	return ConversionResult{PaymentRequired: true, PaymentLink: link, Montage: updated, Order: &created}, nil
}

func (u *LeadConversionUseCase) assignMeasurer(ctx context.Context, m entities.Montage, measurerID string) (entities.Montage, error) {
	if m.MeasurerID == measurerID {
		return m, nil
	}
	updated, err := u.montages.AssignMeasurer(ctx, m.ID, measurerID)
	if err != nil {
		log.Printf("[montage][lead] assign measurer failed montage_id=%s err=%v", m.ID, err)
		return entities.Montage{}, err
	}
	if updated.ID == "" {
		return entities.Montage{}, ErrMontageNotFound
	}
	return updated, nil
}

// advance moves the montage to target without the personnel and document
// gates; conversion targets sit before any gated stage.
func (u *LeadConversionUseCase) advance(ctx context.Context, montageID string, target entities.Status) (entities.Montage, error) {
	m, outcomes, err := u.engine.run(ctx, montageID, transitionRequest{target: target, kind: kindConversion})
	if err != nil {
		return entities.Montage{}, err
	}
	if outcomes[0].Err != nil {
		return entities.Montage{}, outcomes[0].Err
	}
	return m, nil
}
