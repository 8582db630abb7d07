package handlers

import (
	"errors"
	"net/http"

	"montage_service/internal/usecase"
	"montage_service/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// mapUseCaseError translates use case errors into API errors.
func mapUseCaseError(err error) *pkg.AppError {
	var missingDoc *usecase.MissingDocumentError
	switch {
	case errors.As(err, &missingDoc):
		return pkg.NewDomainErrorSimple("MISSING_DOCUMENT", "A required document is missing", http.StatusUnprocessableEntity).
			WithDetail("document_type", missingDoc.Type)
	case errors.Is(err, usecase.ErrInvalidMontageID),
		errors.Is(err, usecase.ErrInvalidChecklistItemID),
		errors.Is(err, usecase.ErrInvalidMeasurerID),
		errors.Is(err, usecase.ErrInvalidCustomerID),
		errors.Is(err, usecase.ErrInvalidCustomerName),
		errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidFloorArea),
		errors.Is(err, usecase.ErrInvalidSampleStatus):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrUnknownStatus):
		return pkg.NewDomainErrorSimple("UNKNOWN_STATUS", "Unknown status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMontageNotFound):
		return pkg.NewDomainErrorSimple("MONTAGE_NOT_FOUND", "Montage not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrChecklistItemNotFound):
		return pkg.NewDomainErrorSimple("CHECKLIST_ITEM_NOT_FOUND", "Checklist item not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrCustomerNotFound):
		return pkg.NewDomainErrorSimple("CUSTOMER_NOT_FOUND", "Customer not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDuplicateTaxID):
		return pkg.NewDomainErrorSimple("DUPLICATE_TAX_ID", "Customer with this tax id already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrStatusConflict):
		return pkg.NewDomainErrorSimple("STATUS_CONFLICT", "Montage status changed concurrently", http.StatusConflict)
	case errors.Is(err, usecase.ErrMissingAssignment):
		return pkg.NewDomainErrorSimple("MISSING_ASSIGNMENT", "Assign an installer or measurer first", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrNotALead):
		return pkg.NewDomainErrorSimple("NOT_A_LEAD", "Montage is not a lead", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrNoCustomerForPayment):
		return pkg.NewDomainErrorSimple("NO_CUSTOMER_FOR_PAYMENT", "Montage has no customer to charge", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrTransitionLimit), errors.Is(err, usecase.ErrTransitionCycle):
		return pkg.NewDomainError("TRANSITION_LIMIT", "Too many chained status changes", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPaymentNotApproved):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_APPROVED", "The payment provider has no approved payment for this order", http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrPaymentUnavailable):
		return pkg.NewDomainError("PAYMENT_UNAVAILABLE", "Payments are not available", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.Status(), appErr.ToHTTPError())
}
