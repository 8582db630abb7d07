package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"montage_service/internal/domain/entities"
	"montage_service/internal/domain/finance"
	"montage_service/internal/domain/workflow"
	"montage_service/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrUnknownStatus     = errors.New("unknown status")
	ErrMissingAssignment = errors.New("montage has no installer or measurer assigned")
	ErrMissingDocument   = errors.New("required document is missing")
	ErrStatusConflict    = errors.New("montage status changed concurrently")
	ErrTransitionLimit   = errors.New("transition limit reached")
	ErrTransitionCycle   = errors.New("status already visited in this action")
)

// MissingDocumentError names the first required document type that was not
// found among the montage attachments.
type MissingDocumentError struct {
	Type string
}

func (e *MissingDocumentError) Error() string {
	return fmt.Sprintf("required document is missing: %s", e.Type)
}

func (e *MissingDocumentError) Unwrap() error { return ErrMissingDocument }

// ITransitionUseCase moves a montage between catalog statuses.
//
// Requested behavior:
//   - Validate the target against the catalog, the personnel gate and the
//     document gate before anything is written.
//   - Persist the status (and completedAt) atomically, then run the financial
//     side effects, external sync and audit.

type ITransitionUseCase interface {
	Transition(ctx context.Context, montageID string, target entities.Status) (entities.Montage, error)
}

type transitionKind int

const (
	kindRequested transitionKind = iota
	kindAutoAdvance
	kindRule
	kindRollback
	kindConversion
)

func (k transitionKind) String() string {
	switch k {
	case kindAutoAdvance:
		return "auto_advance"
	case kindRule:
		return "rule"
	case kindRollback:
		return "rollback"
	case kindConversion:
		return "conversion"
	default:
		return "requested"
	}
}

type transitionRequest struct {
	target entities.Status
	kind   transitionKind
}

// gated reports whether the personnel and document gates apply.
func (r transitionRequest) gated() bool {
	return r.kind != kindConversion
}

// TransitionOutcome reports what happened to one transition of an action.
type TransitionOutcome struct {
	Target   entities.Status
	Rollback bool
	Applied  bool
	Err      error
}

// TransitionDependencies groups the collaborators of the engine. Montages and
// Config are required; nil collaborators disable the matching side effect.
type TransitionDependencies struct {
	Config      *workflow.Config
	Montages    interfaces.IMontageRepository
	Checklist   interfaces.IChecklistRepository
	Attachments interfaces.IAttachmentFinder
	Rates       interfaces.IRateLookup
	Settlements interfaces.ISettlementRepository
	Commissions interfaces.ICommissionRepository
	Audit       interfaces.IAuditLogRepository
	Calendar    interfaces.ICalendarSync
	Notifier    interfaces.INotifier
	Customers   interfaces.ICustomerRepository
	Now         func() time.Time
}

type TransitionUseCase struct {
	cfg         *workflow.Config
	montages    interfaces.IMontageRepository
	checklist   interfaces.IChecklistRepository
	attachments interfaces.IAttachmentFinder
	rates       interfaces.IRateLookup
	settlements interfaces.ISettlementRepository
	commissions interfaces.ICommissionRepository
	audit       interfaces.IAuditLogRepository
	calendar    interfaces.ICalendarSync
	notifier    interfaces.INotifier
	customers   interfaces.ICustomerRepository
	now         func() time.Time
}

var _ ITransitionUseCase = (*TransitionUseCase)(nil)

func NewTransitionUseCase(deps TransitionDependencies) *TransitionUseCase {
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &TransitionUseCase{
		cfg:         deps.Config,
		montages:    deps.Montages,
		checklist:   deps.Checklist,
		attachments: deps.Attachments,
		rates:       deps.Rates,
		settlements: deps.Settlements,
		commissions: deps.Commissions,
		audit:       deps.Audit,
		calendar:    deps.Calendar,
		notifier:    deps.Notifier,
		customers:   deps.Customers,
		now:         now,
	}
}

func (u *TransitionUseCase) Transition(ctx context.Context, montageID string, target entities.Status) (entities.Montage, error) {
	montageID = strings.TrimSpace(montageID)
	if montageID == "" {
		return entities.Montage{}, ErrInvalidMontageID
	}
	log.Printf("[montage][transition] requested montage_id=%s target=%s", montageID, target)

	m, outcomes, err := u.run(ctx, montageID, transitionRequest{target: target, kind: kindRequested})
	if err != nil {
		return entities.Montage{}, err
	}
	if outcomes[0].Err != nil {
		return entities.Montage{}, outcomes[0].Err
	}
	return m, nil
}

// run executes the requests of one logical action and every auto-advance they
// trigger. The worklist is bounded by the configured hop limit and never
// enters the same target twice. The returned error is set only when the
// montage cannot be loaded; per-request failures are reported in outcomes, one
// per initial request, and failures of follow-up transitions are logged.
func (u *TransitionUseCase) run(ctx context.Context, montageID string, reqs ...transitionRequest) (entities.Montage, []TransitionOutcome, error) {
	m, err := u.load(ctx, montageID)
	if err != nil {
		return entities.Montage{}, nil, err
	}

	outcomes := make([]TransitionOutcome, len(reqs))
	queue := make([]transitionRequest, len(reqs))
	copy(queue, reqs)
	visited := make(map[entities.Status]bool)
	hops := 0
	maxHops := u.cfg.MaxTransitionHops()

	for i := 0; len(queue) > 0; i++ {
		req := queue[0]
		queue = queue[1:]
		initial := i < len(reqs)
		if initial {
			outcomes[i] = TransitionOutcome{Target: req.target, Rollback: req.kind == kindRollback}
		}

		var stepErr error
		switch {
		case hops >= maxHops:
			stepErr = ErrTransitionLimit
		case visited[req.target]:
			stepErr = ErrTransitionCycle
		}
		if stepErr == nil {
			var updated entities.Montage
			from := m.Status
			updated, stepErr = u.apply(ctx, m, req)
			if stepErr == nil {
				hops++
				visited[req.target] = true
				m = updated
				if next, ok := u.autoAdvance(ctx, from, m, req); ok {
					queue = append(queue, transitionRequest{target: next, kind: kindAutoAdvance})
				}
			}
		}

		if initial {
			outcomes[i].Applied = stepErr == nil
			outcomes[i].Err = stepErr
		}
		if stepErr != nil {
			log.Printf("[montage][transition] not applied montage_id=%s target=%s kind=%s err=%v", montageID, req.target, req.kind, stepErr)
		}
	}
	return m, outcomes, nil
}

func (u *TransitionUseCase) load(ctx context.Context, montageID string) (entities.Montage, error) {
	m, err := u.montages.GetByID(ctx, montageID)
	if err != nil {
		log.Printf("[montage][transition] failed loading montage montage_id=%s err=%v", montageID, err)
		return entities.Montage{}, err
	}
	if m.ID == "" {
		return entities.Montage{}, ErrMontageNotFound
	}
	return m, nil
}

// apply validates and persists a single transition, then runs its side
// effects. A failed validation leaves the montage untouched.
func (u *TransitionUseCase) apply(ctx context.Context, m entities.Montage, req transitionRequest) (entities.Montage, error) {
	target := req.target
	if !u.cfg.Contains(target) {
		return m, fmt.Errorf("%w: %q", ErrUnknownStatus, target)
	}
	if req.gated() {
		if err := u.checkPersonnel(m, target); err != nil {
			return m, err
		}
		if err := u.checkDocuments(ctx, m, target); err != nil {
			return m, err
		}
	}

	now := u.now()
	var completedAt *time.Time
	if target == entities.StatusCompleted {
		if m.Status == entities.StatusCompleted && m.CompletedAt != nil {
			completedAt = m.CompletedAt
		} else {
			completedAt = &now
		}
	}

	updated, err := u.montages.UpdateStatus(ctx, m.ID, m.Status, target, completedAt)
	if err != nil {
		if errors.Is(err, interfaces.ErrStatusConflict) {
			return m, ErrStatusConflict
		}
		return m, err
	}
	if updated.ID == "" {
		return m, ErrMontageNotFound
	}
	log.Printf("[montage][transition] status persisted montage_id=%s from=%s to=%s kind=%s", m.ID, m.Status, target, req.kind)
	if completedAt == nil && m.CompletedAt != nil {
		log.Printf("[montage][transition] completed_at=cleared montage_id=%s", m.ID)
	}

	switch target {
	case entities.StatusMeasurementDone:
		u.applyMeasurementFee(ctx, updated)
	case entities.StatusCompleted:
		u.applyCommissions(ctx, updated)
	}
	u.syncCalendar(ctx, updated)
	u.notifyCustomer(ctx, updated)

	action := entities.ActionStatusChange
	msg := fmt.Sprintf("Status zmieniony: %s -> %s", u.cfg.Label(m.Status), u.cfg.Label(target))
	if req.kind == kindRollback {
		action = entities.ActionStatusRollback
		msg = fmt.Sprintf("Status cofnięty: %s -> %s", u.cfg.Label(m.Status), u.cfg.Label(target))
	}
	u.recordAudit(ctx, updated.ID, action, msg)
	return updated, nil
}

func (u *TransitionUseCase) checkPersonnel(m entities.Montage, target entities.Status) error {
	if m.Status == entities.StatusNewLead && target == entities.StatusMeasurementScheduled && !m.HasPersonnel() {
		return ErrMissingAssignment
	}
	return nil
}

func (u *TransitionUseCase) checkDocuments(ctx context.Context, m entities.Montage, target entities.Status) error {
	required := u.cfg.RequiredDocuments(target)
	if len(required) == 0 {
		return nil
	}
	if u.attachments == nil {
		return &MissingDocumentError{Type: required[0]}
	}
	attachments, err := u.attachments.FindByMontage(ctx, m.ID)
	if err != nil {
		log.Printf("[montage][transition] attachment lookup failed montage_id=%s err=%v", m.ID, err)
		return err
	}
	present := make(map[string]bool, len(attachments))
	for _, a := range attachments {
		present[a.Type] = true
	}
	for _, docType := range required {
		if !present[docType] {
			return &MissingDocumentError{Type: docType}
		}
	}
	return nil
}

// autoAdvance returns the next status when a forward move entered a stage
// whose checklist is already fully completed. Backward and same-status moves
// never cascade.
func (u *TransitionUseCase) autoAdvance(ctx context.Context, from entities.Status, m entities.Montage, req transitionRequest) (entities.Status, bool) {
	if req.kind == kindRollback || u.checklist == nil {
		return "", false
	}
	stage := m.Status
	if u.cfg.Index(stage) <= u.cfg.Index(from) {
		return "", false
	}
	if !u.cfg.InProgression(stage) || stage == u.cfg.ManualEntryStatus() || !u.cfg.AutomationEnabled(stage) {
		return "", false
	}
	items, err := u.checklist.ListByMontageID(ctx, m.ID)
	if err != nil {
		log.Printf("[montage][transition] checklist lookup failed montage_id=%s err=%v", m.ID, err)
		return "", false
	}
	if !stageComplete(u.cfg, items, stage) {
		return "", false
	}
	return u.cfg.Next(stage)
}

// stageComplete reports whether stage has at least one checklist item and all
// of them are completed.
func stageComplete(cfg *workflow.Config, items []entities.ChecklistItem, stage entities.Status) bool {
	found := false
	for _, it := range items {
		s, ok := cfg.StageOf(it)
		if !ok || s != stage {
			continue
		}
		if !it.Completed {
			return false
		}
		found = true
	}
	return found
}

func (u *TransitionUseCase) applyMeasurementFee(ctx context.Context, m entities.Montage) {
	if u.settlements == nil || u.rates == nil {
		return
	}
	if m.MeasurerID == "" {
		log.Printf("[montage][settlement] skipped montage_id=%s reason=no measurer assigned", m.ID)
		return
	}
	rates, err := u.rates.LookupRate(ctx, m.MeasurerID)
	if err != nil {
		log.Printf("[montage][settlement] rate lookup failed montage_id=%s measurer_id=%s err=%v", m.ID, m.MeasurerID, err)
		return
	}

	// A concurrent writer can create the settlement between the read and the
	// conditional create; one more pass then appends or finds the rule applied.
	for attempt := 0; attempt < 2; attempt++ {
		existing, err := u.settlements.GetByMontageID(ctx, m.ID)
		if err != nil {
			log.Printf("[montage][settlement] load failed montage_id=%s err=%v", m.ID, err)
			return
		}
		var current *entities.Settlement
		if existing.MontageID != "" {
			current = &existing
		}

		decision := finance.PlanMeasurementFee(m, rates, current, u.now())
		switch decision.Action {
		case finance.SettlementNoop:
			log.Printf("[montage][settlement] noop montage_id=%s reason=%s", m.ID, decision.Reason)
			return
		case finance.SettlementAppend:
			_, applied, err := u.settlements.AppendLineItem(ctx, m.ID, decision.Item)
			if err != nil {
				log.Printf("[montage][settlement] append failed montage_id=%s err=%v", m.ID, err)
				return
			}
			if !applied {
				log.Printf("[montage][settlement] append rejected montage_id=%s kind=%s", m.ID, decision.Item.Kind)
				return
			}
			u.recordAudit(ctx, m.ID, entities.ActionSettlementLine, fmt.Sprintf("Dodano pozycję rozliczenia: %s (%d)", decision.Item.Description, decision.Item.Amount))
			return
		case finance.SettlementCreate:
			s := decision.Settlement
			s.ID = uuid.NewString()
			created, err := u.settlements.Create(ctx, s)
			if errors.Is(err, interfaces.ErrAlreadyExists) {
				log.Printf("[montage][settlement] created concurrently montage_id=%s; retrying", m.ID)
				continue
			}
			if err != nil {
				log.Printf("[montage][settlement] create failed montage_id=%s err=%v", m.ID, err)
				return
			}
			log.Printf("[montage][settlement] draft created montage_id=%s settlement_id=%s total=%d", m.ID, created.ID, created.TotalAmount)
			u.recordAudit(ctx, m.ID, entities.ActionSettlementCreated, fmt.Sprintf("Utworzono szkic rozliczenia z pozycją: %s (%d)", decision.Item.Description, decision.Item.Amount))
			return
		}
	}
}

func (u *TransitionUseCase) applyCommissions(ctx context.Context, m entities.Montage) {
	if u.commissions == nil || u.rates == nil {
		return
	}
	for _, t := range finance.CommissionBeneficiaries {
		beneficiaryID := finance.BeneficiaryID(m, t)
		if beneficiaryID == "" {
			continue
		}
		existing, err := u.commissions.Get(ctx, m.ID, t)
		if err != nil {
			log.Printf("[montage][commission] load failed montage_id=%s type=%s err=%v", m.ID, t, err)
			continue
		}
		var current *entities.Commission
		if existing.ID != "" {
			current = &existing
		}
		rates, err := u.rates.LookupRate(ctx, beneficiaryID)
		if err != nil {
			log.Printf("[montage][commission] rate lookup failed montage_id=%s type=%s user_id=%s err=%v", m.ID, t, beneficiaryID, err)
			continue
		}

		decision := finance.ComputeCommission(m, t, rates, current, u.now())
		if !decision.Create {
			log.Printf("[montage][commission] noop montage_id=%s type=%s reason=%s", m.ID, t, decision.Reason)
			continue
		}
		created, err := u.commissions.Create(ctx, decision.Commission)
		if errors.Is(err, interfaces.ErrAlreadyExists) {
			log.Printf("[montage][commission] already exists montage_id=%s type=%s", m.ID, t)
			continue
		}
		if err != nil {
			log.Printf("[montage][commission] create failed montage_id=%s type=%s err=%v", m.ID, t, err)
			continue
		}
		log.Printf("[montage][commission] created montage_id=%s type=%s amount=%d", m.ID, t, created.Amount)
		u.recordAudit(ctx, m.ID, entities.ActionCommissionCreated, fmt.Sprintf("Naliczono prowizję (%s): %d", t, created.Amount))
	}
}

func (u *TransitionUseCase) syncCalendar(ctx context.Context, m entities.Montage) {
	if u.calendar == nil {
		return
	}
	var (
		kind  entities.CalendarEventKind
		date  *time.Time
		owner string
	)
	switch m.Status {
	case entities.StatusMeasurementScheduled:
		kind, date, owner = entities.CalendarMeasurement, m.MeasurementDate, m.MeasurerID
	case entities.StatusInstallationScheduled:
		kind, date, owner = entities.CalendarInstallation, m.InstallationDate, m.InstallerID
	default:
		return
	}
	if date == nil {
		return
	}
	ev := entities.CalendarEvent{
		ID:        entities.CalendarEventID(m.ID, kind),
		MontageID: m.ID,
		Kind:      kind,
		Title:     fmt.Sprintf("%s %s", u.cfg.Label(m.Status), m.DisplayCode),
		StartsAt:  *date,
		Assignee:  owner,
		UpdatedAt: u.now(),
	}
	if err := u.calendar.UpsertEvent(ctx, ev); err != nil {
		log.Printf("[montage][calendar] upsert failed montage_id=%s kind=%s err=%v", m.ID, kind, err)
	}
}

func (u *TransitionUseCase) notifyCustomer(ctx context.Context, m entities.Montage) {
	if u.notifier == nil || u.customers == nil || m.CustomerID == "" {
		return
	}
	tpl, ok := u.cfg.NotificationFor(m.Status)
	if !ok {
		return
	}
	c, err := u.customers.GetByID(ctx, m.CustomerID)
	if err != nil || c.ID == "" {
		log.Printf("[montage][notify] customer lookup failed montage_id=%s customer_id=%s err=%v", m.ID, m.CustomerID, err)
		return
	}
	vars := map[string]string{
		"DisplayCode":  m.DisplayCode,
		"CustomerName": c.Name,
		"Status":       u.cfg.Label(m.Status),
	}
	switch m.Status {
	case entities.StatusMeasurementScheduled:
		if m.MeasurementDate != nil {
			vars["Date"] = m.MeasurementDate.Format("2006-01-02 15:04")
		}
	case entities.StatusInstallationScheduled:
		if m.InstallationDate != nil {
			vars["Date"] = m.InstallationDate.Format("2006-01-02 15:04")
		}
	}
	recipient := interfaces.Recipient{Name: c.Name, Email: c.Email, Phone: c.Phone}
	if err := u.notifier.Send(ctx, tpl.ID, recipient, vars); err != nil {
		log.Printf("[montage][notify] send failed montage_id=%s template=%s err=%v", m.ID, tpl.ID, err)
	}
}

func (u *TransitionUseCase) recordAudit(ctx context.Context, montageID string, action entities.ActionKind, message string) {
	if u.audit == nil {
		return
	}
	e := entities.AuditEntry{
		ID:        uuid.NewString(),
		MontageID: montageID,
		Action:    action,
		Message:   message,
		ActorID:   ActorFromContext(ctx),
		CreatedAt: u.now(),
	}
	if err := u.audit.Append(ctx, e); err != nil {
		log.Printf("[montage][audit] append failed montage_id=%s action=%s err=%v", montageID, action, err)
	}
}
