package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"montage_service/internal/domain/entities"
	"montage_service/internal/domain/workflow"
	"montage_service/internal/infrastructure/workflowconfig"
	"montage_service/internal/usecase/interfaces"
)

// In-memory collaborators used by the scenario tests. They enforce the same
// conditional-write rules as the DynamoDB repositories.

type memMontages struct {
	mu  sync.Mutex
	m   map[string]entities.Montage
	seq map[int]int64
}

func newMemMontages(ms ...entities.Montage) *memMontages {
	r := &memMontages{m: map[string]entities.Montage{}, seq: map[int]int64{}}
	for _, m := range ms {
		r.m[m.ID] = m
	}
	return r
}

func (r *memMontages) Create(_ context.Context, m entities.Montage) (entities.Montage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[m.ID]; ok {
		return entities.Montage{}, interfaces.ErrAlreadyExists
	}
	r.m[m.ID] = m
	return m, nil
}

func (r *memMontages) GetByID(_ context.Context, id string) (entities.Montage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[id], nil
}

func (r *memMontages) UpdateStatus(_ context.Context, id string, from, to entities.Status, completedAt *time.Time) (entities.Montage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.m[id]
	if !ok {
		return entities.Montage{}, nil
	}
	if m.Status != from {
		return entities.Montage{}, interfaces.ErrStatusConflict
	}
	m.Status = to
	m.CompletedAt = completedAt
	r.m[id] = m
	return m, nil
}

func (r *memMontages) AssignMeasurer(_ context.Context, id, measurerID string) (entities.Montage, error) {
	return r.mutate(id, func(m *entities.Montage) { m.MeasurerID = measurerID })
}

func (r *memMontages) LinkOrder(_ context.Context, id, orderID, token string) (entities.Montage, error) {
	return r.mutate(id, func(m *entities.Montage) {
		m.OrderID = orderID
		if token != "" {
			m.CustomerAccessToken = token
		}
	})
}

func (r *memMontages) UpdateSampleStatus(_ context.Context, id string, s entities.SampleStatus) (entities.Montage, error) {
	return r.mutate(id, func(m *entities.Montage) { m.SampleStatus = s })
}

func (r *memMontages) NextDisplaySequence(_ context.Context, year int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq[year]++
	return r.seq[year], nil
}

func (r *memMontages) mutate(id string, fn func(*entities.Montage)) (entities.Montage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.m[id]
	if !ok {
		return entities.Montage{}, nil
	}
	fn(&m)
	r.m[id] = m
	return m, nil
}

func (r *memMontages) get(id string) entities.Montage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[id]
}

type memChecklist struct {
	mu    sync.Mutex
	items map[string]entities.ChecklistItem
}

func newMemChecklist(items ...entities.ChecklistItem) *memChecklist {
	r := &memChecklist{items: map[string]entities.ChecklistItem{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *memChecklist) CreateBatch(_ context.Context, items []entities.ChecklistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		r.items[it.ID] = it
	}
	return nil
}

func (r *memChecklist) GetByID(_ context.Context, id string) (entities.ChecklistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *memChecklist) ListByMontageID(_ context.Context, montageID string) ([]entities.ChecklistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.ChecklistItem
	for _, it := range r.items {
		if it.MontageID == montageID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *memChecklist) SetCompleted(_ context.Context, id string, completed bool, actorID string, at time.Time) (entities.ChecklistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return entities.ChecklistItem{}, nil
	}
	it.Completed = completed
	if completed {
		it.CompletedAt = &at
		it.CompletedBy = actorID
	} else {
		it.CompletedAt = nil
		it.CompletedBy = ""
	}
	r.items[id] = it
	return it, nil
}

type memSettlements struct {
	mu        sync.Mutex
	m         map[string]entities.Settlement
	createErr error
}

func newMemSettlements() *memSettlements {
	return &memSettlements{m: map[string]entities.Settlement{}}
}

func (r *memSettlements) GetByMontageID(_ context.Context, montageID string) (entities.Settlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[montageID], nil
}

func (r *memSettlements) Create(_ context.Context, s entities.Settlement) (entities.Settlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return entities.Settlement{}, r.createErr
	}
	if _, ok := r.m[s.MontageID]; ok {
		return entities.Settlement{}, interfaces.ErrAlreadyExists
	}
	r.m[s.MontageID] = s
	return s, nil
}

func (r *memSettlements) AppendLineItem(_ context.Context, montageID string, item entities.LineItem) (entities.Settlement, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.m[montageID]
	if !ok || s.Status != entities.SettlementStatusDraft || s.HasRule(item.Kind) {
		return s, false, nil
	}
	s.Calculations = append(s.Calculations, item)
	s.TotalAmount += item.Amount
	r.m[montageID] = s
	return s, true, nil
}

type memCommissions struct {
	mu sync.Mutex
	m  map[string]entities.Commission
}

func newMemCommissions() *memCommissions {
	return &memCommissions{m: map[string]entities.Commission{}}
}

func (r *memCommissions) Get(_ context.Context, montageID string, t entities.BeneficiaryType) (entities.Commission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[entities.CommissionID(montageID, t)], nil
}

func (r *memCommissions) Create(_ context.Context, c entities.Commission) (entities.Commission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[c.ID]; ok {
		return entities.Commission{}, interfaces.ErrAlreadyExists
	}
	r.m[c.ID] = c
	return c, nil
}

func (r *memCommissions) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}

type memAudit struct {
	mu      sync.Mutex
	entries []entities.AuditEntry
}

func (r *memAudit) Append(_ context.Context, e entities.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *memAudit) ListByMontageID(_ context.Context, montageID string) ([]entities.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.AuditEntry
	for _, e := range r.entries {
		if e.MontageID == montageID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memAudit) actions() []entities.ActionKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.ActionKind, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type memOrders struct {
	mu sync.Mutex
	m  map[string]entities.Order
}

func newMemOrders() *memOrders {
	return &memOrders{m: map[string]entities.Order{}}
}

func (r *memOrders) Create(_ context.Context, o entities.Order) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[o.ID] = o
	return o, nil
}

func (r *memOrders) GetByID(_ context.Context, id string) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[id], nil
}

func (r *memOrders) MarkPaid(_ context.Context, id, providerPaymentID string, at time.Time) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.m[id]
	if !ok {
		return entities.Order{}, nil
	}
	if o.Status == entities.OrderStatusPending {
		o.Status = entities.OrderStatusPaid
		o.PaidAt = &at
		o.ProviderPaymentID = providerPaymentID
		r.m[id] = o
	}
	return o, nil
}

func (r *memOrders) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}

type memCustomers struct {
	m map[string]entities.Customer
}

func (r *memCustomers) Create(_ context.Context, c entities.Customer) (entities.Customer, error) {
	for _, existing := range r.m {
		if c.TaxID != "" && existing.TaxID == c.TaxID {
			return entities.Customer{}, interfaces.ErrAlreadyExists
		}
	}
	r.m[c.ID] = c
	return c, nil
}

func (r *memCustomers) GetByID(_ context.Context, id string) (entities.Customer, error) {
	return r.m[id], nil
}

type staticAttachments map[string][]entities.Attachment

func (s staticAttachments) FindByMontage(_ context.Context, montageID string) ([]entities.Attachment, error) {
	return s[montageID], nil
}

type staticRates map[string]entities.UserRates

func (s staticRates) LookupRate(_ context.Context, userID string) (entities.UserRates, error) {
	return s[userID], nil
}

type failingRates struct {
	err error
}

func (f failingRates) LookupRate(context.Context, string) (entities.UserRates, error) {
	return entities.UserRates{}, f.err
}

type recordingCalendar struct {
	events []entities.CalendarEvent
	err    error
}

func (c *recordingCalendar) UpsertEvent(_ context.Context, e entities.CalendarEvent) error {
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, e)
	return nil
}

type sentNotification struct {
	templateID string
	recipient  interfaces.Recipient
	vars       map[string]string
}

type recordingNotifier struct {
	sent []sentNotification
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, templateID string, r interfaces.Recipient, vars map[string]string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotification{templateID: templateID, recipient: r, vars: vars})
	return nil
}

type stubGateway struct {
	link  string
	err   error
	calls int

	// approved maps order ids to the provider payment id reported for them.
	approved  map[string]string
	lookupErr error
	lookups   int
}

func (g *stubGateway) CreatePaymentLink(_ context.Context, _ entities.Order, _ entities.Customer) (string, error) {
	g.calls++
	return g.link, g.err
}

func (g *stubGateway) FindApprovedPayment(_ context.Context, orderID string) (string, bool, error) {
	g.lookups++
	if g.lookupErr != nil {
		return "", false, g.lookupErr
	}
	id, ok := g.approved[orderID]
	return id, ok, nil
}

type stubTokens struct{}

func (stubTokens) Issue(montageID, customerID string) (string, error) {
	return "token-" + montageID + "-" + customerID, nil
}

func ptr[T any](v T) *T { return &v }

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// harness wires the use cases over in-memory collaborators and the embedded
// default workflow configuration.
type harness struct {
	cfg         *workflow.Config
	montages    *memMontages
	checklist   *memChecklist
	settlements *memSettlements
	commissions *memCommissions
	audit       *memAudit
	orders      *memOrders
	customers   *memCustomers
	attachments staticAttachments
	rates       staticRates
	calendar    *recordingCalendar
	notifier    *recordingNotifier
	gateway     *stubGateway

	engine     *TransitionUseCase
	checklists *ChecklistUseCase
	leads      *LeadConversionUseCase
	payments   *OrderPaymentUseCase
}

func newHarness(t *testing.T, m entities.Montage, items ...entities.ChecklistItem) *harness {
	t.Helper()
	return newHarnessWithConfig(t, defaultConfig(t, nil), m, items...)
}

// defaultConfig builds the embedded workflow, optionally adjusted by mutate.
func defaultConfig(t *testing.T, mutate func(*workflow.Definition)) *workflow.Config {
	t.Helper()
	def, err := workflowconfig.DefaultDefinition()
	if err != nil {
		t.Fatalf("default definition: %v", err)
	}
	if mutate != nil {
		mutate(&def)
	}
	cfg, err := workflow.New(def)
	if err != nil {
		t.Fatalf("workflow.New: %v", err)
	}
	return cfg
}

func newHarnessWithConfig(t *testing.T, cfg *workflow.Config, m entities.Montage, items ...entities.ChecklistItem) *harness {
	t.Helper()
	h := &harness{
		cfg:         cfg,
		montages:    newMemMontages(m),
		checklist:   newMemChecklist(items...),
		settlements: newMemSettlements(),
		commissions: newMemCommissions(),
		audit:       &memAudit{},
		orders:      newMemOrders(),
		customers:   &memCustomers{m: map[string]entities.Customer{}},
		attachments: staticAttachments{},
		rates:       staticRates{},
		calendar:    &recordingCalendar{},
		notifier:    &recordingNotifier{},
		gateway:     &stubGateway{link: "https://pay.example/checkout/1"},
	}
	h.rewire(nil)
	return h
}

// dependencies returns the engine collaborators backed by the harness fakes.
func (h *harness) dependencies() TransitionDependencies {
	return TransitionDependencies{
		Config:      h.cfg,
		Montages:    h.montages,
		Checklist:   h.checklist,
		Attachments: h.attachments,
		Rates:       h.rates,
		Settlements: h.settlements,
		Commissions: h.commissions,
		Audit:       h.audit,
		Calendar:    h.calendar,
		Notifier:    h.notifier,
		Customers:   h.customers,
		Now:         func() time.Time { return fixedNow },
	}
}

// rewire rebuilds the use cases, letting mutate swap engine collaborators.
func (h *harness) rewire(mutate func(*TransitionDependencies)) {
	deps := h.dependencies()
	if mutate != nil {
		mutate(&deps)
	}
	h.engine = NewTransitionUseCase(deps)
	h.checklists = NewChecklistUseCase(h.cfg, h.checklist, h.montages, h.engine)
	h.leads = NewLeadConversionUseCase(h.cfg, h.montages, h.customers, h.orders, h.gateway, stubTokens{}, h.engine)
	h.payments = NewOrderPaymentUseCase(h.orders, h.gateway, h.engine)
}

// item builds a checklist item from a default template id.
func item(id, montageID, templateID string, completed bool) entities.ChecklistItem {
	return entities.ChecklistItem{ID: id, MontageID: montageID, TemplateID: templateID, Label: templateID, Completed: completed}
}
