package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"montage_service/internal/domain/entities"
)

func newMontageUseCase(h *harness) *MontageUseCase {
	uc := NewMontageUseCase(h.cfg, h.montages, h.checklist, h.customers, h.audit)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestMontageUseCase_CreateMontage(t *testing.T) {
	t.Run("creates montage with checklist and display code", func(t *testing.T) {
		h := newHarness(t, entities.Montage{})
		h.customers.m["c-1"] = entities.Customer{ID: "c-1", Name: "Anna Nowak"}
		uc := newMontageUseCase(h)

		m, items, err := uc.CreateMontage(context.Background(), NewMontage{CustomerID: "c-1", FloorArea: 45, ArchitectID: "arch-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.ID == "" || m.DisplayCode != "M/2026/0001" || m.Status != entities.StatusNewLead || m.SampleStatus != entities.SampleStatusNone {
			t.Fatalf("unexpected montage %+v", m)
		}
		if len(items) != len(h.cfg.Templates()) {
			t.Fatalf("expected %d items, got %d", len(h.cfg.Templates()), len(items))
		}
		for i, it := range items {
			if it.MontageID != m.ID || it.OrderIndex != i || it.Completed {
				t.Fatalf("unexpected item %+v", it)
			}
		}

		second, _, err := uc.CreateMontage(context.Background(), NewMontage{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.DisplayCode != "M/2026/0002" {
			t.Fatalf("expected M/2026/0002, got %s", second.DisplayCode)
		}
	})

	t.Run("validations", func(t *testing.T) {
		h := newHarness(t, entities.Montage{})
		uc := newMontageUseCase(h)
		if _, _, err := uc.CreateMontage(context.Background(), NewMontage{FloorArea: -1}); !errors.Is(err, ErrInvalidFloorArea) {
			t.Fatalf("expected ErrInvalidFloorArea, got %v", err)
		}
		if _, _, err := uc.CreateMontage(context.Background(), NewMontage{SampleStatus: "lost"}); !errors.Is(err, ErrInvalidSampleStatus) {
			t.Fatalf("expected ErrInvalidSampleStatus, got %v", err)
		}
		if _, _, err := uc.CreateMontage(context.Background(), NewMontage{CustomerID: "c-404"}); !errors.Is(err, ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
	})
}

func TestMontageUseCase_Reads(t *testing.T) {
	h := newHarness(t, entities.Montage{ID: "m-1", Status: entities.StatusNewLead},
		entities.ChecklistItem{ID: "i-2", MontageID: "m-1", OrderIndex: 1},
		entities.ChecklistItem{ID: "i-1", MontageID: "m-1", OrderIndex: 0},
	)
	uc := newMontageUseCase(h)

	if _, err := uc.GetMontage(context.Background(), "missing"); !errors.Is(err, ErrMontageNotFound) {
		t.Fatalf("expected ErrMontageNotFound, got %v", err)
	}
	items, err := uc.ListChecklist(context.Background(), "m-1")
	if err != nil || len(items) != 2 || items[0].ID != "i-1" {
		t.Fatalf("unexpected checklist %+v err=%v", items, err)
	}
	if _, err := h.engine.Transition(context.Background(), "m-1", entities.StatusLeadContacted); err != nil {
		t.Fatalf("transition: %v", err)
	}
	entries, err := uc.ListAuditLog(context.Background(), "m-1")
	if err != nil || len(entries) != 1 {
		t.Fatalf("unexpected audit log %+v err=%v", entries, err)
	}
	if got := uc.StatusCatalog(); len(got) != 12 || got[0].ID != entities.StatusNewLead {
		t.Fatalf("unexpected catalog %+v", got)
	}
}

func TestCustomerUseCase(t *testing.T) {
	repo := &memCustomers{m: map[string]entities.Customer{}}
	uc := NewCustomerUseCase(repo)

	if _, err := uc.CreateCustomer(context.Background(), NewCustomer{Name: " "}); !errors.Is(err, ErrInvalidCustomerName) {
		t.Fatalf("expected ErrInvalidCustomerName, got %v", err)
	}
	c, err := uc.CreateCustomer(context.Background(), NewCustomer{Name: "Anna Nowak", TaxID: "123-456-32-18", Email: " Anna@Example.com "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.TaxID != "1234563218" || c.Email != "anna@example.com" {
		t.Fatalf("unexpected customer %+v", c)
	}
	if _, err := uc.CreateCustomer(context.Background(), NewCustomer{Name: "Other", TaxID: "1234563218"}); !errors.Is(err, ErrDuplicateTaxID) {
		t.Fatalf("expected ErrDuplicateTaxID, got %v", err)
	}
	got, err := uc.GetCustomer(context.Background(), c.ID)
	if err != nil || got.ID != c.ID {
		t.Fatalf("unexpected lookup %+v err=%v", got, err)
	}
	if _, err := uc.GetCustomer(context.Background(), "missing"); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}
