package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/application/event"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/internal/domain/repository"
	"github.com/sangkips/developerstore-sales/pkg/apperror"
)

// fakeUnitOfWork keeps sales in memory and stages writes until Commit. It
// counts transaction calls and can inject failures at each step.
type fakeUnitOfWork struct {
	sales    map[uuid.UUID]*entity.Sale
	carts    map[uuid.UUID]*entity.Cart
	products map[uuid.UUID]*entity.Product

	active  bool
	pending []func()

	begins, commits, rollbacks int
	adds, updates              int

	addErr, updateErr, commitErr error
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		sales:    make(map[uuid.UUID]*entity.Sale),
		carts:    make(map[uuid.UUID]*entity.Cart),
		products: make(map[uuid.UUID]*entity.Product),
	}
}

var _ repository.UnitOfWork = (*fakeUnitOfWork)(nil)

func (u *fakeUnitOfWork) BeginTransaction(context.Context) error {
	if u.active {
		return apperror.NewIllegalStateError("a transaction is already in progress")
	}
	u.begins++
	u.active = true
	return nil
}

func (u *fakeUnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return apperror.NewIllegalStateError("no transaction in progress")
	}
	if u.commitErr != nil {
		_ = u.Rollback(ctx)
		return u.commitErr
	}
	u.commits++
	for _, apply := range u.pending {
		apply()
	}
	u.pending = nil
	u.active = false
	return nil
}

func (u *fakeUnitOfWork) Rollback(context.Context) error {
	if !u.active {
		return nil
	}
	u.rollbacks++
	u.pending = nil
	u.active = false
	return nil
}

func (u *fakeUnitOfWork) Sales() repository.SaleRepository       { return fakeSaleRepo{u} }
func (u *fakeUnitOfWork) Carts() repository.CartRepository       { return fakeCartRepo{u} }
func (u *fakeUnitOfWork) Products() repository.ProductRepository { return fakeProductRepo{u} }

// seedSale stores a committed sale directly
func (u *fakeUnitOfWork) seedSale(sale *entity.Sale) {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	for i := range sale.Items {
		if sale.Items[i].ID == uuid.Nil {
			sale.Items[i].ID = uuid.New()
		}
	}
	u.sales[sale.ID] = cloneSale(sale)
}

func cloneSale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Items = append([]entity.SaleItem(nil), s.Items...)
	return &c
}

type fakeSaleRepo struct{ u *fakeUnitOfWork }

func (r fakeSaleRepo) Add(_ context.Context, sale *entity.Sale) error {
	r.u.adds++
	if r.u.addErr != nil {
		return r.u.addErr
	}
	if !r.u.active {
		return errors.New("write outside transaction")
	}
	sale.ID = uuid.New()
	for i := range sale.Items {
		sale.Items[i].ID = uuid.New()
		sale.Items[i].SaleID = sale.ID
	}
	stored := cloneSale(sale)
	r.u.pending = append(r.u.pending, func() { r.u.sales[stored.ID] = stored })
	return nil
}

func (r fakeSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	s, ok := r.u.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(s), nil
}

func (r fakeSaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	r.u.updates++
	if r.u.updateErr != nil {
		return r.u.updateErr
	}
	if !r.u.active {
		return errors.New("write outside transaction")
	}
	stored := cloneSale(sale)
	r.u.pending = append(r.u.pending, func() { r.u.sales[stored.ID] = stored })
	return nil
}

func (r fakeSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.u.sales, id)
	return nil
}

func (r fakeSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	out := make([]entity.Sale, 0, len(r.u.sales))
	for _, s := range r.u.sales {
		out = append(out, *cloneSale(s))
	}
	return out, int64(len(out)), nil
}

type fakeCartRepo struct{ u *fakeUnitOfWork }

func (r fakeCartRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Cart, error) {
	return r.u.carts[id], nil
}

type fakeProductRepo struct{ u *fakeUnitOfWork }

func (r fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.u.products[id], nil
}

func (r fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.u.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeFactory struct {
	uow  repository.UnitOfWork
	news int
}

func (f *fakeFactory) New() repository.UnitOfWork {
	f.news++
	return f.uow
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.events))
	for i, e := range p.events {
		names[i] = e.Name()
	}
	return names
}

type failingSink struct {
	calls int
}

func (s *failingSink) Log(context.Context, string, time.Time, []byte) error {
	s.calls++
	return errors.New("audit store unavailable")
}

type panickingSink struct {
	calls int
}

func (s *panickingSink) Log(context.Context, string, time.Time, []byte) error {
	s.calls++
	panic("nil collection")
}

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
