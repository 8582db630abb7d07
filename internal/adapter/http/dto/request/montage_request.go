package request

import (
	"errors"
	"strings"
	"time"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase"
)

var ErrInvalidStatus = errors.New("invalid status")

// CreateMontageRequest is the payload accepted by POST /montages.
type CreateMontageRequest struct {
	CustomerID       string     `json:"customer_id"`
	InstallerID      string     `json:"installer_id"`
	MeasurerID       string     `json:"measurer_id"`
	ArchitectID      string     `json:"architect_id"`
	PartnerID        string     `json:"partner_id"`
	FloorArea        float64    `json:"floor_area"`
	IsHousingVat     bool       `json:"is_housing_vat"`
	MaterialDetails  string     `json:"material_details"`
	SampleStatus     string     `json:"sample_status"`
	MeasurementDate  *time.Time `json:"measurement_date"`
	InstallationDate *time.Time `json:"installation_date"`
}

func (r CreateMontageRequest) ToNewMontage() usecase.NewMontage {
	return usecase.NewMontage{
		CustomerID:       strings.TrimSpace(r.CustomerID),
		InstallerID:      strings.TrimSpace(r.InstallerID),
		MeasurerID:       strings.TrimSpace(r.MeasurerID),
		ArchitectID:      strings.TrimSpace(r.ArchitectID),
		PartnerID:        strings.TrimSpace(r.PartnerID),
		FloorArea:        r.FloorArea,
		IsHousingVat:     r.IsHousingVat,
		MaterialDetails:  strings.TrimSpace(r.MaterialDetails),
		SampleStatus:     entities.SampleStatus(strings.ToLower(strings.TrimSpace(r.SampleStatus))),
		MeasurementDate:  r.MeasurementDate,
		InstallationDate: r.InstallationDate,
	}
}

// TransitionRequest asks for a status change.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r TransitionRequest) ResolveStatus() (entities.Status, error) {
	s := strings.TrimSpace(r.Status)
	if s == "" {
		return "", ErrInvalidStatus
	}
	return entities.Status(s), nil
}

// ToggleChecklistRequest sets the completion state of a checklist item.
// Completed is a pointer so that an explicit false can be told apart from a
// missing field.
type ToggleChecklistRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// ConvertLeadRequest converts a lead into a job.
type ConvertLeadRequest struct {
	MeasurerID     string `json:"measurer_id" binding:"required"`
	RequirePayment bool   `json:"require_payment"`
}
