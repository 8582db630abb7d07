package finance

import (
	"testing"
	"time"

	"montage_service/internal/domain/entities"
)

func ptr(v float64) *float64 { return &v }

var now = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func TestCommissionAmount(t *testing.T) {
	tests := []struct {
		area, rate float64
		want int64
	}{
		{area: 45, rate: 0.02, want: 90},
		{area: 12.5, rate: 0.1, want: 125},
		{area: 0.1, rate: 0.07, want: 1},
		{area: 33.3, rate: 0.015, want: 50},
		{area: 0, rate: 0.5, want: 0},
	}
	for _, tt := range tests {
		if got := CommissionAmount(tt.area, tt.rate); got != tt.want {
			t.Errorf("CommissionAmount(%v, %v) = %d, want %d", tt.area, tt.rate, got, tt.want)
		}
	}
}

func TestToMinorUnits(t *testing.T) {
	if got := ToMinorUnits(199.99); got != 19999 {
		t.Fatalf("expected 19999, got %d", got)
	}
	if got := ToMinorUnits(0.005); got != 1 {
		t.Fatalf("expected half to round up, got %d", got)
	}
}

func TestPlanMeasurementFee(t *testing.T) {
	m := entities.Montage{ID: "m-1", DisplayCode: "M/2026/0010", MeasurerID: "u-1", InstallerID: "inst-1"}
	rates := entities.UserRates{UserID: "u-1", MeasurementRate: ptr(120)}

	t.Run("creates a draft when none exists", func(t *testing.T) {
		d := PlanMeasurementFee(m, rates, nil, now)
		if d.Action != SettlementCreate {
			t.Fatalf("expected create, got %s (%s)", d.Action, d.Reason)
		}
		s := d.Settlement
		if s.MontageID != "m-1" || s.InstallerID != "inst-1" || s.Status != entities.SettlementStatusDraft || s.TotalAmount != 12000 {
			t.Fatalf("unexpected settlement %+v", s)
		}
		if len(s.Calculations) != 1 || s.Calculations[0].Kind != entities.RuleMeasurementFee || s.Calculations[0].UserID != "u-1" {
			t.Fatalf("unexpected line items %+v", s.Calculations)
		}
	})

	t.Run("appends to a draft without the rule", func(t *testing.T) {
		existing := &entities.Settlement{ID: "s-1", MontageID: "m-1", Status: entities.SettlementStatusDraft, TotalAmount: 300,
			Calculations: []entities.LineItem{{Kind: entities.RuleInstallationLabor, Amount: 300}}}
		d := PlanMeasurementFee(m, rates, existing, now)
		if d.Action != SettlementAppend || d.Settlement.TotalAmount != 12300 || len(d.Settlement.Calculations) != 2 {
			t.Fatalf("unexpected decision %+v", d)
		}
		if len(existing.Calculations) != 1 {
			t.Fatalf("existing settlement must not be modified")
		}
	})

	noops := []struct {
		name     string
		m        entities.Montage
		rates    entities.UserRates
		existing *entities.Settlement
	}{
		{name: "no measurer", m: entities.Montage{ID: "m-1"}, rates: rates},
		{name: "no rate", m: m, rates: entities.UserRates{UserID: "u-1"}},
		{name: "zero rate", m: m, rates: entities.UserRates{UserID: "u-1", MeasurementRate: ptr(0)}},
		{name: "negative rate", m: m, rates: entities.UserRates{UserID: "u-1", MeasurementRate: ptr(-5)}},
		{name: "rule already applied", m: m, rates: rates, existing: &entities.Settlement{MontageID: "m-1", Status: entities.SettlementStatusDraft,
			Calculations: []entities.LineItem{{Kind: entities.RuleMeasurementFee, Amount: 100}}}},
		{name: "settlement not draft", m: m, rates: rates, existing: &entities.Settlement{MontageID: "m-1", Status: entities.SettlementStatusPaid}},
	}
	for _, tt := range noops {
		t.Run(tt.name, func(t *testing.T) {
			d := PlanMeasurementFee(tt.m, tt.rates, tt.existing, now)
			if d.Action != SettlementNoop || d.Reason == "" {
				t.Fatalf("expected noop with reason, got %+v", d)
			}
		})
	}
}

func TestComputeCommission(t *testing.T) {
	m := entities.Montage{ID: "m-1", ArchitectID: "arch-1", FloorArea: 45}
	rates := entities.UserRates{UserID: "arch-1", CommissionRate: ptr(0.02)}

	d := ComputeCommission(m, entities.BeneficiaryArchitect, rates, nil, now)
	if !d.Create {
		t.Fatalf("expected create, got %s", d.Reason)
	}
	c := d.Commission
	if c.ID != "m-1#architect" || c.Amount != 90 || c.BeneficiaryID != "arch-1" || c.Status != entities.CommissionStatusPending || c.Area != 45 {
		t.Fatalf("unexpected commission %+v", c)
	}

	if d := ComputeCommission(m, entities.BeneficiaryArchitect, rates, &c, now); d.Create {
		t.Fatalf("existing commission must not be duplicated")
	}
	if d := ComputeCommission(m, entities.BeneficiaryPartner, rates, nil, now); d.Create {
		t.Fatalf("no partner assigned")
	}
	if d := ComputeCommission(m, entities.BeneficiaryArchitect, entities.UserRates{}, nil, now); d.Create {
		t.Fatalf("no rate configured")
	}
	small := entities.Montage{ID: "m-2", ArchitectID: "arch-1", FloorArea: 0.1}
	if d := ComputeCommission(small, entities.BeneficiaryArchitect, entities.UserRates{CommissionRate: ptr(0.01)}, nil, now); d.Create {
		t.Fatalf("zero amount must not create a commission")
	}
}
