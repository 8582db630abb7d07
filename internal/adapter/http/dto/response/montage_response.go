package response

import (
	"time"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase"
)

type MontageResponse struct {
	ID               string     `json:"id"`
	DisplayCode      string     `json:"display_code"`
	CustomerID       string     `json:"customer_id,omitempty"`
	Status           string     `json:"status"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	InstallerID      string     `json:"installer_id,omitempty"`
	MeasurerID       string     `json:"measurer_id,omitempty"`
	ArchitectID      string     `json:"architect_id,omitempty"`
	PartnerID        string     `json:"partner_id,omitempty"`
	FloorArea        float64    `json:"floor_area"`
	IsHousingVat     bool       `json:"is_housing_vat"`
	MaterialDetails  string     `json:"material_details,omitempty"`
	SampleStatus     string     `json:"sample_status"`
	MeasurementDate  *time.Time `json:"measurement_date,omitempty"`
	InstallationDate *time.Time `json:"installation_date,omitempty"`
	OrderID          string     `json:"order_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func FromMontage(m entities.Montage) MontageResponse {
	return MontageResponse{
		ID:               m.ID,
		DisplayCode:      m.DisplayCode,
		CustomerID:       m.CustomerID,
		Status:           string(m.Status),
		CompletedAt:      m.CompletedAt,
		InstallerID:      m.InstallerID,
		MeasurerID:       m.MeasurerID,
		ArchitectID:      m.ArchitectID,
		PartnerID:        m.PartnerID,
		FloorArea:        m.FloorArea,
		IsHousingVat:     m.IsHousingVat,
		MaterialDetails:  m.MaterialDetails,
		SampleStatus:     string(m.SampleStatus),
		MeasurementDate:  m.MeasurementDate,
		InstallationDate: m.InstallationDate,
		OrderID:          m.OrderID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

type ChecklistItemResponse struct {
	ID          string     `json:"id"`
	TemplateID  string     `json:"template_id,omitempty"`
	Label       string     `json:"label"`
	Completed   bool       `json:"completed"`
	OrderIndex  int        `json:"order_index"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy string     `json:"completed_by,omitempty"`
}

func FromChecklistItem(it entities.ChecklistItem) ChecklistItemResponse {
	return ChecklistItemResponse{
		ID:          it.ID,
		TemplateID:  it.TemplateID,
		Label:       it.Label,
		Completed:   it.Completed,
		OrderIndex:  it.OrderIndex,
		CompletedAt: it.CompletedAt,
		CompletedBy: it.CompletedBy,
	}
}

func FromChecklist(items []entities.ChecklistItem) []ChecklistItemResponse {
	out := make([]ChecklistItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromChecklistItem(it))
	}
	return out
}

// CreateMontageResponse is returned by POST /montages.
type CreateMontageResponse struct {
	Montage   MontageResponse         `json:"montage"`
	Checklist []ChecklistItemResponse `json:"checklist"`
}

type AuditEntryResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Message   string    `json:"message"`
	ActorID   string    `json:"actor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromAuditLog(entries []entities.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			ID:        e.ID,
			Action:    string(e.Action),
			Message:   e.Message,
			ActorID:   e.ActorID,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

type StatusResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Phase       string `json:"phase"`
}

func FromStatusCatalog(defs []entities.StatusDefinition) []StatusResponse {
	out := make([]StatusResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, StatusResponse{ID: string(d.ID), Label: d.Label, Description: d.Description, Phase: string(d.Phase)})
	}
	return out
}

// TransitionOutcomeResponse reports one coupled status change of a checklist
// toggle.
type TransitionOutcomeResponse struct {
	Target   string `json:"target"`
	Rollback bool   `json:"rollback"`
	Applied  bool   `json:"applied"`
	Error    string `json:"error,omitempty"`
}

type ToggleChecklistResponse struct {
	Item        ChecklistItemResponse       `json:"item"`
	Montage     MontageResponse             `json:"montage"`
	Transitions []TransitionOutcomeResponse `json:"transitions"`
}

func FromToggleResult(r usecase.ToggleResult) ToggleChecklistResponse {
	out := ToggleChecklistResponse{
		Item:        FromChecklistItem(r.Item),
		Montage:     FromMontage(r.Montage),
		Transitions: make([]TransitionOutcomeResponse, 0, len(r.Transitions)),
	}
	for _, t := range r.Transitions {
		tr := TransitionOutcomeResponse{Target: string(t.Target), Rollback: t.Rollback, Applied: t.Applied}
		if t.Err != nil {
			tr.Error = t.Err.Error()
		}
		out.Transitions = append(out.Transitions, tr)
	}
	return out
}

type ConversionResponse struct {
	PaymentRequired bool            `json:"payment_required"`
	PaymentLink     string          `json:"payment_link,omitempty"`
	Montage         MontageResponse `json:"montage"`
	Order           *OrderResponse  `json:"order,omitempty"`
}

func FromConversionResult(r usecase.ConversionResult) ConversionResponse {
	out := ConversionResponse{
		PaymentRequired: r.PaymentRequired,
		PaymentLink:     r.PaymentLink,
		Montage:         FromMontage(r.Montage),
	}
	if r.Order != nil {
		o := FromOrder(*r.Order)
		out.Order = &o
	}
	return out
}
