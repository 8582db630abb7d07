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
)

var (
	ErrChecklistItemNotFound  = errors.New("checklist item not found")
	ErrInvalidChecklistItemID = errors.New("invalid checklist item id")
)

// IChecklistUseCase couples checklist completion with the montage status.
//
// Requested behavior:
//   - Completing the last item of the current stage advances the montage to
//     the next status (unless the stage is manual-entry or automation is off).
//   - Automation rules bound to the item fire on completion.
//   - Un-completing an item of an earlier stage rolls the montage back to it.

type IChecklistUseCase interface {
	ToggleChecklistItem(ctx context.Context, montageID, itemID string, completed bool) (ToggleResult, error)
}

// ToggleResult is the outcome of a checklist toggle. The toggle itself
// succeeded; Transitions lists the coupled status changes and whether each was
// applied.
type ToggleResult struct {
	Item        entities.ChecklistItem
	Montage     entities.Montage
	Transitions []TransitionOutcome
}

// Blocked returns the coupled transitions that were rejected.
func (r ToggleResult) Blocked() []TransitionOutcome {
	var out []TransitionOutcome
	for _, t := range r.Transitions {
		if !t.Applied {
			out = append(out, t)
		}
	}
	return out
}

type ChecklistUseCase struct {
	cfg       *workflow.Config
	checklist interfaces.IChecklistRepository
	montages  interfaces.IMontageRepository
	engine    *TransitionUseCase
	now       func() time.Time
}

var _ IChecklistUseCase = (*ChecklistUseCase)(nil)

func NewChecklistUseCase(cfg *workflow.Config, checklist interfaces.IChecklistRepository, montages interfaces.IMontageRepository, engine *TransitionUseCase) *ChecklistUseCase {
	return &ChecklistUseCase{cfg: cfg, checklist: checklist, montages: montages, engine: engine, now: engine.now}
}

func (u *ChecklistUseCase) ToggleChecklistItem(ctx context.Context, montageID, itemID string, completed bool) (ToggleResult, error) {
	montageID = strings.TrimSpace(montageID)
	itemID = strings.TrimSpace(itemID)
	if montageID == "" {
		return ToggleResult{}, ErrInvalidMontageID
	}
	if itemID == "" {
		return ToggleResult{}, ErrInvalidChecklistItemID
	}
	log.Printf("[montage][checklist] toggle start montage_id=%s item_id=%s completed=%t", montageID, itemID, completed)

	m, err := u.engine.load(ctx, montageID)
	if err != nil {
		return ToggleResult{}, err
	}
	item, err := u.checklist.GetByID(ctx, itemID)
	if err != nil {
		log.Printf("[montage][checklist] failed loading item item_id=%s err=%v", itemID, err)
		return ToggleResult{}, err
	}
	if item.ID == "" || item.MontageID != montageID {
		return ToggleResult{}, ErrChecklistItemNotFound
	}

	changed := item.Completed != completed
	item, err = u.checklist.SetCompleted(ctx, itemID, completed, ActorFromContext(ctx), u.now())
	if err != nil {
		log.Printf("[montage][checklist] toggle persist failed item_id=%s err=%v", itemID, err)
		return ToggleResult{}, err
	}
	if changed {
		state := "odznaczono"
		if completed {
			state = "zaznaczono"
		}
		u.engine.recordAudit(ctx, montageID, entities.ActionChecklistToggle, fmt.Sprintf("Checklista: %s %q", state, item.Label))
	}

	if item.TemplateID != "" && item.TemplateID == u.cfg.SampleVerificationTemplateID() {
		m = u.mirrorSampleStatus(ctx, m, completed)
	}

	reqs, err := u.coupledTransitions(ctx, m, item, completed)
	if err != nil {
		return ToggleResult{}, err
	}
	result := ToggleResult{Item: item, Montage: m}
	if len(reqs) == 0 {
		log.Printf("[montage][checklist] toggle done montage_id=%s item_id=%s transitions=0", montageID, itemID)
		return result, nil
	}

	updated, outcomes, err := u.engine.run(ctx, montageID, reqs...)
	if err != nil {
		return ToggleResult{}, err
	}
	result.Montage = updated
	result.Transitions = outcomes
	log.Printf("[montage][checklist] toggle done montage_id=%s item_id=%s transitions=%d status=%s", montageID, itemID, len(outcomes), updated.Status)
	return result, nil
}

// coupledTransitions derives the status changes implied by a toggle.
func (u *ChecklistUseCase) coupledTransitions(ctx context.Context, m entities.Montage, item entities.ChecklistItem, completed bool) ([]transitionRequest, error) {
	if !u.cfg.InProgression(m.Status) {
		return nil, nil
	}
	stage, hasStage := u.cfg.StageOf(item)
	if hasStage && !u.cfg.InProgression(stage) {
		hasStage = false
	}

	if !completed {
		if hasStage && u.cfg.Index(m.Status) > u.cfg.Index(stage) {
			return []transitionRequest{{target: stage, kind: kindRollback}}, nil
		}
		return nil, nil
	}

	var reqs []transitionRequest
	seen := map[entities.Status]bool{}
	if hasStage && stage == m.Status && stage != u.cfg.ManualEntryStatus() && u.cfg.AutomationEnabled(stage) {
		items, err := u.checklist.ListByMontageID(ctx, m.ID)
		if err != nil {
			log.Printf("[montage][checklist] failed listing items montage_id=%s err=%v", m.ID, err)
			return nil, err
		}
		if stageComplete(u.cfg, withItem(items, item), stage) {
			if next, ok := u.cfg.Next(stage); ok {
				reqs = append(reqs, transitionRequest{target: next, kind: kindAutoAdvance})
				seen[next] = true
			}
		}
	}
	for _, r := range u.cfg.RulesFor(item) {
		if seen[r.TargetStatus] {
			continue
		}
		seen[r.TargetStatus] = true
		reqs = append(reqs, transitionRequest{target: r.TargetStatus, kind: kindRule})
	}
	return reqs, nil
}

func (u *ChecklistUseCase) mirrorSampleStatus(ctx context.Context, m entities.Montage, completed bool) entities.Montage {
	if m.SampleStatus == entities.SampleStatusNone || m.SampleStatus == "" {
		return m
	}
	want := entities.SampleStatusSent
	if completed {
		want = entities.SampleStatusDelivered
	}
	if m.SampleStatus == want {
		return m
	}
	updated, err := u.montages.UpdateSampleStatus(ctx, m.ID, want)
	if err != nil || updated.ID == "" {
		log.Printf("[montage][checklist] sample status update failed montage_id=%s err=%v", m.ID, err)
		return m
	}
	u.engine.recordAudit(ctx, m.ID, entities.ActionSampleStatus, fmt.Sprintf("Status próbek: %s", want))
	return updated
}

// withItem replaces the stored copy of item in items with its current state.
func withItem(items []entities.ChecklistItem, item entities.ChecklistItem) []entities.ChecklistItem {
	out := make([]entities.ChecklistItem, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.ID == item.ID {
			it = item
			found = true
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, item)
	}
	return out
}
