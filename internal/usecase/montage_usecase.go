package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"montage_service/internal/domain/entities"
	"montage_service/internal/domain/workflow"
	"montage_service/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrMontageNotFound     = errors.New("montage not found")
	ErrInvalidMontageID    = errors.New("invalid montage id")
	ErrInvalidFloorArea    = errors.New("floor area must not be negative")
	ErrInvalidSampleStatus = errors.New("invalid sample status")
)

// NewMontage carries the caller-provided fields of a montage. Status, display
// code and checklist are assigned on creation.
type NewMontage struct {
	CustomerID       string
	InstallerID      string
	MeasurerID       string
	ArchitectID      string
	PartnerID        string
	FloorArea        float64
	IsHousingVat     bool
	MaterialDetails  string
	SampleStatus     entities.SampleStatus
	MeasurementDate  *time.Time
	InstallationDate *time.Time
}

// IMontageUseCase covers montage creation and the read side used by the API.

type IMontageUseCase interface {
	CreateMontage(ctx context.Context, in NewMontage) (entities.Montage, []entities.ChecklistItem, error)
	GetMontage(ctx context.Context, id string) (entities.Montage, error)
	ListChecklist(ctx context.Context, montageID string) ([]entities.ChecklistItem, error)
	ListAuditLog(ctx context.Context, montageID string) ([]entities.AuditEntry, error)
	StatusCatalog() []entities.StatusDefinition
}

type MontageUseCase struct {
	cfg       *workflow.Config
	montages  interfaces.IMontageRepository
	checklist interfaces.IChecklistRepository
	customers interfaces.ICustomerRepository
	audit     interfaces.IAuditLogRepository
	now       func() time.Time
}

var _ IMontageUseCase = (*MontageUseCase)(nil)

func NewMontageUseCase(cfg *workflow.Config, montages interfaces.IMontageRepository, checklist interfaces.IChecklistRepository, customers interfaces.ICustomerRepository, audit interfaces.IAuditLogRepository) *MontageUseCase {
	return &MontageUseCase{
		cfg:       cfg,
		montages:  montages,
		checklist: checklist,
		customers: customers,
		audit:     audit,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *MontageUseCase) CreateMontage(ctx context.Context, in NewMontage) (entities.Montage, []entities.ChecklistItem, error) {
	if in.FloorArea < 0 {
		return entities.Montage{}, nil, ErrInvalidFloorArea
	}
	switch in.SampleStatus {
	case "":
		in.SampleStatus = entities.SampleStatusNone
	case entities.SampleStatusNone, entities.SampleStatusSent, entities.SampleStatusDelivered:
	default:
		return entities.Montage{}, nil, ErrInvalidSampleStatus
	}
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID != "" {
		c, err := u.customers.GetByID(ctx, customerID)
		if err != nil {
			return entities.Montage{}, nil, err
		}
		if c.ID == "" {
			return entities.Montage{}, nil, ErrCustomerNotFound
		}
	}

	now := u.now()
	seq, err := u.montages.NextDisplaySequence(ctx, now.Year())
	if err != nil {
		log.Printf("[montage][usecase] display sequence failed err=%v", err)
		return entities.Montage{}, nil, err
	}

	m := entities.Montage{
		ID:               uuid.NewString(),
		DisplayCode:      fmt.Sprintf("M/%d/%04d", now.Year(), seq),
		CustomerID:       customerID,
		Status:           u.cfg.ManualEntryStatus(),
		InstallerID:      strings.TrimSpace(in.InstallerID),
		MeasurerID:       strings.TrimSpace(in.MeasurerID),
		ArchitectID:      strings.TrimSpace(in.ArchitectID),
		PartnerID:        strings.TrimSpace(in.PartnerID),
		FloorArea:        in.FloorArea,
		IsHousingVat:     in.IsHousingVat,
		MaterialDetails:  strings.TrimSpace(in.MaterialDetails),
		SampleStatus:     in.SampleStatus,
		MeasurementDate:  in.MeasurementDate,
		InstallationDate: in.InstallationDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	created, err := u.montages.Create(ctx, m)
	if err != nil {
		log.Printf("[montage][usecase] create failed montage_id=%s err=%v", m.ID, err)
		return entities.Montage{}, nil, err
	}

	templates := u.cfg.Templates()
	items := make([]entities.ChecklistItem, 0, len(templates))
	for i, t := range templates {
		items = append(items, entities.ChecklistItem{
			ID:         uuid.NewString(),
			MontageID:  created.ID,
			TemplateID: t.ID,
			Label:      t.Label,
			OrderIndex: i,
		})
	}
	if len(items) > 0 {
		if err := u.checklist.CreateBatch(ctx, items); err != nil {
			log.Printf("[montage][usecase] checklist create failed montage_id=%s err=%v", created.ID, err)
			return entities.Montage{}, nil, err
		}
	}

	if u.audit != nil {
		e := entities.AuditEntry{
			ID:        uuid.NewString(),
			MontageID: created.ID,
			Action:    entities.ActionMontageCreated,
			Message:   fmt.Sprintf("Utworzono montaż %s", created.DisplayCode),
			ActorID:   ActorFromContext(ctx),
			CreatedAt: now,
		}
		if err := u.audit.Append(ctx, e); err != nil {
			log.Printf("[montage][audit] append failed montage_id=%s err=%v", created.ID, err)
		}
	}
	log.Printf("[montage][usecase] created montage_id=%s display_code=%s items=%d", created.ID, created.DisplayCode, len(items))
	return created, items, nil
}

func (u *MontageUseCase) GetMontage(ctx context.Context, id string) (entities.Montage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Montage{}, ErrInvalidMontageID
	}
	m, err := u.montages.GetByID(ctx, id)
	if err != nil {
		return entities.Montage{}, err
	}
	if m.ID == "" {
		return entities.Montage{}, ErrMontageNotFound
	}
	return m, nil
}

// ListChecklist returns the montage checklist ordered by OrderIndex.
func (u *MontageUseCase) ListChecklist(ctx context.Context, montageID string) ([]entities.ChecklistItem, error) {
	if _, err := u.GetMontage(ctx, montageID); err != nil {
		return nil, err
	}
	return u.checklist.ListByMontageID(ctx, strings.TrimSpace(montageID))
}

func (u *MontageUseCase) ListAuditLog(ctx context.Context, montageID string) ([]entities.AuditEntry, error) {
	if _, err := u.GetMontage(ctx, montageID); err != nil {
		return nil, err
	}
	return u.audit.ListByMontageID(ctx, strings.TrimSpace(montageID))
}

func (u *MontageUseCase) StatusCatalog() []entities.StatusDefinition {
	return u.cfg.Statuses()
}
