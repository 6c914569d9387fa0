package billing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/inventory"
	"github.com/fatoora/backend/internal/domain/partner"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MockEventPublisher collects published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) EventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*billing.Invoice
	seq      int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*billing.Invoice)}
}

func (r *fakeInvoiceRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*billing.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	return inv, nil
}

func (r *fakeInvoiceRepo) FindByNumber(_ context.Context, companyID uuid.UUID, number string) (*billing.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.Number == number {
			return inv, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInvoiceRepo) FindAll(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]billing.Invoice, error) {
	var out []billing.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) FindByStatus(_ context.Context, companyID uuid.UUID, status billing.InvoiceStatus, _ shared.Filter) ([]billing.Invoice, error) {
	var out []billing.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.Status == status {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) FindByClient(_ context.Context, companyID, clientID uuid.UUID, _ shared.Filter) ([]billing.Invoice, error) {
	var out []billing.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.ClientID == clientID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) FindDueBefore(_ context.Context, companyID uuid.UUID, cutoff time.Time) ([]billing.Invoice, error) {
	var out []billing.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.Status == billing.InvoiceStatusSent && cutoff.After(inv.DueDate) {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) NextNumber(_ context.Context, _ uuid.UUID) (string, error) {
	r.seq++
	return fmt.Sprintf("INV-2026-%04d", r.seq), nil
}

func (r *fakeInvoiceRepo) Save(_ context.Context, invoice *billing.Invoice) error {
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) SaveWithLock(_ context.Context, invoice *billing.Invoice) error {
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) Count(_ context.Context, companyID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

type fakeQuoteRepo struct {
	quotes map[uuid.UUID]*billing.Quote
	seq    int
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: make(map[uuid.UUID]*billing.Quote)}
}

func (r *fakeQuoteRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*billing.Quote, error) {
	q, ok := r.quotes[id]
	if !ok || q.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	return q, nil
}

func (r *fakeQuoteRepo) FindAll(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]billing.Quote, error) {
	var out []billing.Quote
	for _, q := range r.quotes {
		if q.CompanyID == companyID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) FindByStatus(_ context.Context, companyID uuid.UUID, status billing.QuoteStatus, _ shared.Filter) ([]billing.Quote, error) {
	var out []billing.Quote
	for _, q := range r.quotes {
		if q.CompanyID == companyID && q.Status == status {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) FindReminderDue(_ context.Context, cutoff time.Time) ([]billing.Quote, error) {
	var out []billing.Quote
	for _, q := range r.quotes {
		if q.IsReminderDue(cutoff) {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) NextNumber(_ context.Context, _ uuid.UUID) (string, error) {
	r.seq++
	return fmt.Sprintf("QT-2026-%04d", r.seq), nil
}

func (r *fakeQuoteRepo) Save(_ context.Context, quote *billing.Quote) error {
	r.quotes[quote.ID] = quote
	return nil
}

func (r *fakeQuoteRepo) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	delete(r.quotes, id)
	return nil
}

type fakeProformaRepo struct {
	proformas map[uuid.UUID]*billing.ProformaInvoice
	seq       int
}

func newFakeProformaRepo() *fakeProformaRepo {
	return &fakeProformaRepo{proformas: make(map[uuid.UUID]*billing.ProformaInvoice)}
}

func (r *fakeProformaRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*billing.ProformaInvoice, error) {
	p, ok := r.proformas[id]
	if !ok || p.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakeProformaRepo) FindAll(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]billing.ProformaInvoice, error) {
	var out []billing.ProformaInvoice
	for _, p := range r.proformas {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProformaRepo) NextNumber(_ context.Context, _ uuid.UUID) (string, error) {
	r.seq++
	return fmt.Sprintf("PRO-2026-%04d", r.seq), nil
}

func (r *fakeProformaRepo) Save(_ context.Context, proforma *billing.ProformaInvoice) error {
	r.proformas[proforma.ID] = proforma
	return nil
}

func (r *fakeProformaRepo) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	delete(r.proformas, id)
	return nil
}

type fakeCreditNoteRepo struct {
	notes map[uuid.UUID]*billing.CreditNote
	seq   int
}

func newFakeCreditNoteRepo() *fakeCreditNoteRepo {
	return &fakeCreditNoteRepo{notes: make(map[uuid.UUID]*billing.CreditNote)}
}

func (r *fakeCreditNoteRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*billing.CreditNote, error) {
	cn, ok := r.notes[id]
	if !ok || cn.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	return cn, nil
}

func (r *fakeCreditNoteRepo) FindAll(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]billing.CreditNote, error) {
	var out []billing.CreditNote
	for _, cn := range r.notes {
		if cn.CompanyID == companyID {
			out = append(out, *cn)
		}
	}
	return out, nil
}

func (r *fakeCreditNoteRepo) FindByInvoice(_ context.Context, companyID, invoiceID uuid.UUID) ([]billing.CreditNote, error) {
	var out []billing.CreditNote
	for _, cn := range r.notes {
		if cn.CompanyID == companyID && cn.InvoiceID == invoiceID {
			out = append(out, *cn)
		}
	}
	return out, nil
}

func (r *fakeCreditNoteRepo) NextNumber(_ context.Context, _ uuid.UUID) (string, error) {
	r.seq++
	return fmt.Sprintf("CN-2026-%04d", r.seq), nil
}

func (r *fakeCreditNoteRepo) Save(_ context.Context, note *billing.CreditNote) error {
	r.notes[note.ID] = note
	return nil
}

func (r *fakeCreditNoteRepo) SaveWithLock(_ context.Context, note *billing.CreditNote) error {
	r.notes[note.ID] = note
	return nil
}

func (r *fakeCreditNoteRepo) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	delete(r.notes, id)
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*billing.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*billing.Payment)}
}

func (r *fakePaymentRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*billing.Payment, error) {
	p, ok := r.payments[id]
	if !ok || p.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakePaymentRepo) FindByInvoice(_ context.Context, companyID, invoiceID uuid.UUID) ([]billing.Payment, error) {
	var out []billing.Payment
	for _, p := range r.payments {
		if p.CompanyID == companyID && p.InvoiceID == invoiceID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) FindActiveByInvoice(_ context.Context, companyID, invoiceID uuid.UUID) ([]billing.Payment, error) {
	var out []billing.Payment
	for _, p := range r.payments {
		if p.CompanyID == companyID && p.InvoiceID == invoiceID && p.IsActive() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Save(_ context.Context, payment *billing.Payment) error {
	r.payments[payment.ID] = payment
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindByCode(_ context.Context, companyID uuid.UUID, code string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.Code == strings.ToUpper(code) {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindStockManaged(_ context.Context, companyID uuid.UUID) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		if p.CompanyID == companyID && p.IsStockManaged() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindBelowMinimum(_ context.Context, companyID uuid.UUID) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		if p.CompanyID == companyID && p.IsBelowMinimum() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) SaveWithLock(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context, companyID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

type fakeMovementRepo struct {
	movements []inventory.StockMovement
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{}
}

func (r *fakeMovementRepo) Create(_ context.Context, movement *inventory.StockMovement) error {
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *fakeMovementRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*inventory.StockMovement, error) {
	for i := range r.movements {
		if r.movements[i].CompanyID == companyID && r.movements[i].ID == id {
			return &r.movements[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeMovementRepo) FindByProduct(_ context.Context, companyID, productID uuid.UUID, _ shared.Filter) ([]inventory.StockMovement, error) {
	var out []inventory.StockMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID && m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) FindLatestByProduct(_ context.Context, companyID, productID uuid.UUID) (*inventory.StockMovement, error) {
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].CompanyID == companyID && r.movements[i].ProductID == productID {
			return &r.movements[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeMovementRepo) FindByReference(_ context.Context, companyID, referenceID uuid.UUID) ([]inventory.StockMovement, error) {
	var out []inventory.StockMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID && m.ReferenceID != nil && *m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) FindAll(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]inventory.StockMovement, error) {
	var out []inventory.StockMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*partner.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*partner.Client)}
}

func (r *fakeClientRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*partner.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *fakeClientRepo) FindAll(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]partner.Client, error) {
	var out []partner.Client
	for _, c := range r.clients {
		if c.CompanyID == companyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Save(_ context.Context, client *partner.Client) error {
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) Count(_ context.Context, companyID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, c := range r.clients {
		if c.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

type fakeIdempotencyStore struct {
	keys map[string]bool
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{keys: make(map[string]bool)}
}

func (s *fakeIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *fakeIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	return s.keys[key], nil
}

func (s *fakeIdempotencyStore) Release(_ context.Context, key string) error {
	delete(s.keys, key)
	return nil
}

func (s *fakeIdempotencyStore) Close() error { return nil }

// testEnv wires the billing services against in-memory repositories with a
// no-op transaction scope.
type testEnv struct {
	companyID   uuid.UUID
	invoiceRepo *fakeInvoiceRepo
	quoteRepo   *fakeQuoteRepo
	proformas   *fakeProformaRepo
	notes       *fakeCreditNoteRepo
	payments    *fakePaymentRepo
	products    *fakeProductRepo
	movements   *fakeMovementRepo
	clients     *fakeClientRepo

	invoiceService    *InvoiceService
	quoteService      *QuoteService
	proformaService   *ProformaService
	creditNoteService *CreditNoteService
	paymentService    *PaymentService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		companyID:   uuid.New(),
		invoiceRepo: newFakeInvoiceRepo(),
		quoteRepo:   newFakeQuoteRepo(),
		proformas:   newFakeProformaRepo(),
		notes:       newFakeCreditNoteRepo(),
		payments:    newFakePaymentRepo(),
		products:    newFakeProductRepo(),
		movements:   newFakeMovementRepo(),
		clients:     newFakeClientRepo(),
	}

	scope := NewNoOpTransactionScope(env.invoiceRepo, env.quoteRepo, env.proformas,
		env.notes, env.payments, env.products, env.movements)
	builder := NewLineItemBuilder(env.products, env.clients, nil)
	policy := DefaultPolicy()

	env.invoiceService = NewInvoiceService(env.invoiceRepo, builder, scope, policy)
	env.quoteService = NewQuoteService(env.quoteRepo, builder, scope, policy)
	env.proformaService = NewProformaService(env.proformas, builder, scope)
	env.creditNoteService = NewCreditNoteService(env.notes, env.invoiceRepo, builder, scope)
	env.paymentService = NewPaymentService(env.payments, scope, policy)

	return env
}
