package commands_test

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

type stockKey struct{ product, location string }

// memoryLedger is an in-process ledger; every call holds one mutex, which
// makes Reserve atomic across its items.
type memoryLedger struct {
	mu      sync.Mutex
	records map[stockKey]*inventory.StockRecord
}

func newMemoryLedger(t *testing.T, levels map[string][]inventory.StockLevel) *memoryLedger {
	t.Helper()
	l := &memoryLedger{records: make(map[stockKey]*inventory.StockRecord)}
	for productID, ls := range levels {
		for _, lvl := range ls {
			rec, err := inventory.NewStockRecord(productID, lvl.LocationID, lvl.QuantityOnHand)
			require.NoError(t, err)
			l.records[stockKey{productID, lvl.LocationID}] = rec
		}
	}
	return l
}

func (l *memoryLedger) Snapshot(_ context.Context, productID string) ([]inventory.StockLevel, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	levels := make([]inventory.StockLevel, 0)
	for k, rec := range l.records {
		if k.product == productID {
			levels = append(levels, rec.Level())
		}
	}
	slices.SortFunc(levels, func(a, b inventory.StockLevel) int { return cmp.Compare(a.LocationID, b.LocationID) })
	return levels, nil
}

func (l *memoryLedger) Reserve(_ context.Context, items []inventory.ReservationItem) error {
	if err := inventory.ValidateItems(items); err != nil {
		return err
	}
	merged := inventory.MergeItems(items)

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, it := range merged {
		rec, ok := l.records[stockKey{it.ProductID, it.LocationID}]
		if !ok {
			return inventory.NewInsufficientStockError(it.ProductID, it.LocationID, it.Quantity, 0)
		}
		if !rec.CanReserve(it.Quantity) {
			return inventory.NewInsufficientStockError(it.ProductID, it.LocationID, it.Quantity, rec.QuantityOnHand())
		}
	}
	for _, it := range merged {
		if err := l.records[stockKey{it.ProductID, it.LocationID}].Reserve(it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (l *memoryLedger) Release(_ context.Context, items []inventory.ReservationItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, it := range inventory.MergeItems(items) {
		rec, ok := l.records[stockKey{it.ProductID, it.LocationID}]
		if !ok {
			return errs.NewObjectNotFoundError("stock", it.ProductID+"@"+it.LocationID)
		}
		if err := rec.Release(it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (l *memoryLedger) Restock(_ context.Context, productID, locationID string, quantity int) (inventory.StockLevel, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := stockKey{productID, locationID}
	rec, ok := l.records[k]
	if !ok {
		var err error
		if rec, err = inventory.NewStockRecord(productID, locationID, 0); err != nil {
			return inventory.StockLevel{}, err
		}
		l.records[k] = rec
	}
	if err := rec.Restock(quantity); err != nil {
		return inventory.StockLevel{}, err
	}
	return rec.Level(), nil
}

func (l *memoryLedger) onHand(productID, locationID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if rec, ok := l.records[stockKey{productID, locationID}]; ok {
		return rec.QuantityOnHand()
	}
	return 0
}

// memoryOrderStore keeps committed orders. Writes are staged on the unit of
// work and only become visible on Commit.
type memoryOrderStore struct {
	mu      sync.Mutex
	orders  map[kernel.UUID]*order.Order
	addHook func(ctx context.Context, o *order.Order) error
}

func newMemoryOrderStore() *memoryOrderStore {
	return &memoryOrderStore{orders: make(map[kernel.UUID]*order.Order)}
}

func (s *memoryOrderStore) Create() commands.OrderUoW {
	return &memoryOrderUoW{store: s}
}

func (s *memoryOrderStore) all() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out
}

type memoryOrderUoW struct {
	store  *memoryOrderStore
	staged []*order.Order
}

func (u *memoryOrderUoW) Begin(context.Context) error { return nil }

func (u *memoryOrderUoW) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, o := range u.staged {
		u.store.orders[o.ID()] = o
	}
	u.staged = nil
	return nil
}

func (u *memoryOrderUoW) Rollback(context.Context) error {
	u.staged = nil
	return nil
}

func (u *memoryOrderUoW) OrderRepository() ports.OrderRepository {
	return memoryOrderRepository{uow: u}
}

type memoryOrderRepository struct {
	uow *memoryOrderUoW
}

func (r memoryOrderRepository) Add(ctx context.Context, o *order.Order) error {
	if hook := r.uow.store.addHook; hook != nil {
		if err := hook(ctx, o); err != nil {
			return err
		}
	}
	r.uow.staged = append(r.uow.staged, o)
	return nil
}

func (r memoryOrderRepository) Update(_ context.Context, o *order.Order) error {
	r.uow.staged = append(r.uow.staged, o)
	return nil
}

func (r memoryOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	if o, ok := r.uow.store.orders[id]; ok {
		return o, nil
	}
	return nil, errs.NewObjectNotFoundError("order", id.String())
}

func (r memoryOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r memoryOrderRepository) ListByCustomerEmail(_ context.Context, email string, limit int) ([]order.Summary, error) {
	var out []order.Summary
	for _, o := range r.uow.store.all() {
		if o.CustomerEmail() == email {
			out = append(out, o.Summary())
		}
	}
	slices.SortFunc(out, func(a, b order.Summary) int { return b.CreatedAt.Compare(a.CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
