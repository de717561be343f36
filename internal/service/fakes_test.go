package service

import (
	"context"
	"sort"
	"time"

	"toolrent-backend/internal/domain"
)

// In-memory repository fakes. They mirror the conditional-update semantics of
// the postgres layer so the services exercise the same guard paths.

type fakeUnitRepo struct {
	units  map[int64]*domain.ToolUnit
	nextID int64

	updateErr error // injected failure for Update
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: make(map[int64]*domain.ToolUnit)}
}

func (r *fakeUnitRepo) Create(ctx context.Context, u *domain.ToolUnit) error {
	r.nextID++
	u.ID = r.nextID
	u.CreatedOn = time.Now()
	stored := *u
	r.units[u.ID] = &stored
	return nil
}

func (r *fakeUnitRepo) GetByID(ctx context.Context, id int64) (*domain.ToolUnit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, domain.NotFoundError("tool unit %d not found", id)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUnitRepo) Update(ctx context.Context, u *domain.ToolUnit) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored := *u
	r.units[u.ID] = &stored
	return nil
}

func (r *fakeUnitRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.UnitStatus) (bool, error) {
	u, ok := r.units[id]
	if !ok || u.Status != from {
		return false, nil
	}
	u.Status = to
	return true, nil
}

func (r *fakeUnitRepo) List(ctx context.Context) ([]domain.ToolUnit, error) {
	var units []domain.ToolUnit
	for _, id := range r.sortedIDs() {
		units = append(units, *r.units[id])
	}
	return units, nil
}

func (r *fakeUnitRepo) ListByStatus(ctx context.Context, status domain.UnitStatus) ([]domain.ToolUnit, error) {
	var units []domain.ToolUnit
	for _, id := range r.sortedIDs() {
		if r.units[id].Status == status {
			units = append(units, *r.units[id])
		}
	}
	return units, nil
}

func (r *fakeUnitRepo) ListByNameAndCategory(ctx context.Context, name, category string) ([]domain.ToolUnit, error) {
	var units []domain.ToolUnit
	for _, id := range r.sortedIDs() {
		u := r.units[id]
		if u.Name == name && u.Category == category {
			units = append(units, *u)
		}
	}
	return units, nil
}

func (r *fakeUnitRepo) UpdatePricingByNameAndCategory(ctx context.Context, name, category string, p domain.UnitPricing) error {
	for _, u := range r.units {
		if u.Name == name && u.Category == category {
			u.ReplacementValueCents = p.ReplacementValueCents
			u.RepairValueCents = p.RepairValueCents
			u.DailyRateCents = p.DailyRateCents
			u.DailyLateRateCents = p.DailyLateRateCents
		}
	}
	return nil
}

func (r *fakeUnitRepo) StockSummary(ctx context.Context) ([]domain.StockSummary, error) {
	byKey := make(map[string]*domain.StockSummary)
	for _, u := range r.units {
		key := u.Name + "/" + u.Category
		s, ok := byKey[key]
		if !ok {
			s = &domain.StockSummary{Name: u.Name, Category: u.Category}
			byKey[key] = s
		}
		switch u.Status {
		case domain.UnitStatusAvailable:
			s.Available++
		case domain.UnitStatusLoaned:
			s.Loaned++
		case domain.UnitStatusInRepair:
			s.InRepair++
		case domain.UnitStatusDecommissioned:
			s.Decommissioned++
		}
	}
	var summaries []domain.StockSummary
	for _, s := range byKey {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}

func (r *fakeUnitRepo) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.units))
	for id := range r.units {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type fakeLoanRepo struct {
	loans  map[int64]*domain.Loan
	units  *fakeUnitRepo
	nextID int64

	afterGet func() // runs after GetByID copies, to simulate interleaved writers
}

func newFakeLoanRepo(units *fakeUnitRepo) *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[int64]*domain.Loan), units: units}
}

func (r *fakeLoanRepo) Create(ctx context.Context, l *domain.Loan) error {
	r.nextID++
	l.ID = r.nextID
	l.CreatedOn = time.Now()
	stored := *l
	r.loans[l.ID] = &stored
	return nil
}

func (r *fakeLoanRepo) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, domain.NotFoundError("loan %d not found", id)
	}
	copied := *l
	if r.afterGet != nil {
		r.afterGet()
	}
	return &copied, nil
}

func (r *fakeLoanRepo) Update(ctx context.Context, l *domain.Loan) error {
	stored := *l
	r.loans[l.ID] = &stored
	return nil
}

func (r *fakeLoanRepo) UpdateOpen(ctx context.Context, l *domain.Loan) (bool, error) {
	stored, ok := r.loans[l.ID]
	if !ok || stored.Delivered {
		return false, nil
	}
	copied := *l
	r.loans[l.ID] = &copied
	return true, nil
}

func (r *fakeLoanRepo) UpdateFinePaid(ctx context.Context, id int64, paid bool) error {
	l, ok := r.loans[id]
	if !ok {
		return domain.NotFoundError("loan %d not found", id)
	}
	l.FinePaid = paid
	return nil
}

func (r *fakeLoanRepo) Delete(ctx context.Context, id int64) error {
	delete(r.loans, id)
	return nil
}

func (r *fakeLoanRepo) List(ctx context.Context) ([]domain.Loan, error) {
	return r.filter(func(l *domain.Loan) bool { return true }), nil
}

func (r *fakeLoanRepo) ListActive(ctx context.Context) ([]domain.Loan, error) {
	return r.filter(func(l *domain.Loan) bool { return !l.Delivered }), nil
}

func (r *fakeLoanRepo) ListActiveByDateRange(ctx context.Context, start, end time.Time) ([]domain.Loan, error) {
	return r.filter(func(l *domain.Loan) bool {
		return !l.Delivered && !l.StartDate.Before(start) && !l.StartDate.After(end)
	}), nil
}

func (r *fakeLoanRepo) ListOverdue(ctx context.Context, today time.Time) ([]domain.Loan, error) {
	return r.filter(func(l *domain.Loan) bool {
		return l.Status == domain.LoanStatusOverdue && l.ScheduledReturnDate.Before(today)
	}), nil
}

func (r *fakeLoanRepo) ListOverdueByDateRange(ctx context.Context, today, start, end time.Time) ([]domain.Loan, error) {
	return r.filter(func(l *domain.Loan) bool {
		return l.Status == domain.LoanStatusOverdue && l.ScheduledReturnDate.Before(today) &&
			!l.StartDate.Before(start) && !l.StartDate.After(end)
	}), nil
}

func (r *fakeLoanRepo) ListUnpaid(ctx context.Context) ([]domain.Loan, error) {
	return r.filter(func(l *domain.Loan) bool { return !l.FinePaid }), nil
}

func (r *fakeLoanRepo) CountActiveByClient(ctx context.Context, clientID int64) (int64, error) {
	return int64(len(r.filter(func(l *domain.Loan) bool {
		return l.ClientID == clientID && !l.Delivered
	}))), nil
}

func (r *fakeLoanRepo) CountActiveByClientAndToolName(ctx context.Context, clientID int64, toolName string) (int64, error) {
	var count int64
	for _, l := range r.loans {
		if l.ClientID != clientID || l.Delivered {
			continue
		}
		if u, ok := r.units.units[l.ToolUnitID]; ok && u.Name == toolName {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) CountUnpaidByClient(ctx context.Context, clientID int64) (int64, error) {
	return int64(len(r.filter(func(l *domain.Loan) bool {
		return l.ClientID == clientID && !l.FinePaid
	}))), nil
}

func (r *fakeLoanRepo) CountOverdueByClient(ctx context.Context, clientID int64, today time.Time) (int64, error) {
	return int64(len(r.filter(func(l *domain.Loan) bool {
		return l.ClientID == clientID && !l.Delivered && l.ScheduledReturnDate.Before(today)
	}))), nil
}

func (r *fakeLoanRepo) TopToolsAllTime(ctx context.Context) ([]domain.ToolRanking, error) {
	return r.rank(func(l *domain.Loan) bool { return true }), nil
}

func (r *fakeLoanRepo) TopToolsByDateRange(ctx context.Context, start, end time.Time) ([]domain.ToolRanking, error) {
	return r.rank(func(l *domain.Loan) bool {
		return !l.StartDate.Before(start) && !l.StartDate.After(end)
	}), nil
}

func (r *fakeLoanRepo) filter(keep func(*domain.Loan) bool) []domain.Loan {
	ids := make([]int64, 0, len(r.loans))
	for id := range r.loans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var loans []domain.Loan
	for _, id := range ids {
		if keep(r.loans[id]) {
			loans = append(loans, *r.loans[id])
		}
	}
	return loans
}

func (r *fakeLoanRepo) rank(keep func(*domain.Loan) bool) []domain.ToolRanking {
	counts := make(map[string]int64)
	for _, l := range r.loans {
		if !keep(l) {
			continue
		}
		if u, ok := r.units.units[l.ToolUnitID]; ok {
			counts[u.Name]++
		}
	}
	var rankings []domain.ToolRanking
	for name, count := range counts {
		rankings = append(rankings, domain.ToolRanking{Name: name, LoanCount: count})
	}
	sort.Slice(rankings, func(i, j int) bool { return rankings[i].LoanCount > rankings[j].LoanCount })
	return rankings
}

type fakeKardexRepo struct {
	entries []domain.KardexEntry
	nextID  int64

	createErr error // injected failure for Create
}

func newFakeKardexRepo() *fakeKardexRepo {
	return &fakeKardexRepo{}
}

func (r *fakeKardexRepo) Create(ctx context.Context, e *domain.KardexEntry) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	e.ID = r.nextID
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeKardexRepo) List(ctx context.Context) ([]domain.KardexEntry, error) {
	return append([]domain.KardexEntry(nil), r.entries...), nil
}

func (r *fakeKardexRepo) ListByTool(ctx context.Context, toolUnitID int64) ([]domain.KardexEntry, error) {
	var entries []domain.KardexEntry
	for _, e := range r.entries {
		if e.ToolUnitID == toolUnitID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *fakeKardexRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.KardexEntry, error) {
	var entries []domain.KardexEntry
	for _, e := range r.entries {
		if !e.RecordedAt.Before(start) && !e.RecordedAt.After(end) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *fakeKardexRepo) ListByToolAndDateRange(ctx context.Context, toolUnitID int64, start, end time.Time) ([]domain.KardexEntry, error) {
	var entries []domain.KardexEntry
	for _, e := range r.entries {
		if e.ToolUnitID == toolUnitID && !e.RecordedAt.Before(start) && !e.RecordedAt.After(end) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// byType returns the recorded entries with the given movement type.
func (r *fakeKardexRepo) byType(t domain.MovementType) []domain.KardexEntry {
	var entries []domain.KardexEntry
	for _, e := range r.entries {
		if e.Type == t {
			entries = append(entries, e)
		}
	}
	return entries
}

type fakeClientRepo struct {
	clients map[int64]*domain.Client
	nextID  int64

	lookupErr error           // injected failure for the lookup helpers
	statusErr map[int64]error // injected per-client failures for UpdateStatus
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		clients:   make(map[int64]*domain.Client),
		statusErr: make(map[int64]error),
	}
}

func (r *fakeClientRepo) Create(ctx context.Context, c *domain.Client) error {
	r.nextID++
	c.ID = r.nextID
	c.CreatedOn = time.Now()
	stored := *c
	r.clients[c.ID] = &stored
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.NotFoundError("client %d not found", id)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeClientRepo) GetByRut(ctx context.Context, rut string) (*domain.Client, error) {
	return r.getBy(func(c *domain.Client) bool { return c.Rut == rut })
}

func (r *fakeClientRepo) GetByUsername(ctx context.Context, username string) (*domain.Client, error) {
	return r.getBy(func(c *domain.Client) bool { return c.Username == username })
}

func (r *fakeClientRepo) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.getBy(func(c *domain.Client) bool { return c.Email == email })
}

func (r *fakeClientRepo) GetByPhoneNumber(ctx context.Context, phone string) (*domain.Client, error) {
	return r.getBy(func(c *domain.Client) bool { return c.PhoneNumber == phone })
}

func (r *fakeClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	for _, c := range r.clients {
		clients = append(clients, *c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
	return clients, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, c *domain.Client) error {
	stored := *c
	r.clients[c.ID] = &stored
	return nil
}

func (r *fakeClientRepo) UpdateStatus(ctx context.Context, id int64, status domain.ClientStatus) error {
	if err := r.statusErr[id]; err != nil {
		return err
	}
	c, ok := r.clients[id]
	if !ok {
		return domain.NotFoundError("client %d not found", id)
	}
	c.Status = status
	return nil
}

func (r *fakeClientRepo) getBy(match func(*domain.Client) bool) (*domain.Client, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, c := range r.clients {
		if match(c) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, domain.NotFoundError("client not found")
}

// engine bundles the fake repositories with fully wired services and a fixed
// clock, matching the composition in the server binary.
type engine struct {
	units   *fakeUnitRepo
	loans   *fakeLoanRepo
	kardex  *fakeKardexRepo
	clients *fakeClientRepo

	kardexSvc   KardexService
	inventory   InventoryService
	eligibility EligibilityService
	loan        *loanService
	client      ClientService

	today time.Time
}

func newEngine() *engine {
	units := newFakeUnitRepo()
	loans := newFakeLoanRepo(units)
	kardex := newFakeKardexRepo()
	clients := newFakeClientRepo()

	kardexSvc := NewKardexService(kardex)
	inventory := NewInventoryService(units, kardexSvc)
	eligibility := NewEligibilityService(clients, loans)
	loan := NewLoanService(loans, inventory, eligibility, kardexSvc).(*loanService)

	e := &engine{
		units:       units,
		loans:       loans,
		kardex:      kardex,
		clients:     clients,
		kardexSvc:   kardexSvc,
		inventory:   inventory,
		eligibility: eligibility,
		loan:        loan,
		client:      NewClientService(clients, loans),
		today:       date(2025, 1, 10),
	}
	loan.now = func() time.Time { return e.today }
	return e
}

func (e *engine) seedClient(rut string) *domain.Client {
	c := &domain.Client{
		Rut:    rut,
		Name:   "Ana",
		Status: domain.ClientStatusActive,
	}
	if err := e.clients.Create(context.Background(), c); err != nil {
		panic(err)
	}
	return c
}

func (e *engine) seedUnit(name string) *domain.ToolUnit {
	u := &domain.ToolUnit{
		Name:                  name,
		Category:              "power",
		ReplacementValueCents: 2000,
		RepairValueCents:      500,
		DailyRateCents:        100,
		DailyLateRateCents:    30,
		Status:                domain.UnitStatusAvailable,
	}
	if err := e.units.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
