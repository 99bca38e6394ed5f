package inventory_test

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-obra/internal/domain"
	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/internal/domain/repository"
)

// memStore simula las tablas; cada Run opera sobre una copia y la confirma solo si fn no falla.
type memStore struct {
	mu          sync.Mutex
	items       map[string]entity.StockItem
	order       []string
	receipts    []entity.StockReceipt
	consumption []entity.StockConsumption
	failNext    error
	runs        int
}

func newMemStore() *memStore {
	return &memStore{items: map[string]entity.StockItem{}}
}

type memTx struct {
	items       map[string]entity.StockItem
	order       []string
	receipts    []entity.StockReceipt
	consumption []entity.StockConsumption
}

func (s *memStore) Run(_ context.Context, fn func(
	itemRepo repository.StockItemRepository,
	receiptRepo repository.StockReceiptRepository,
	consumptionRepo repository.StockConsumptionRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	if err := s.failNext; err != nil {
		s.failNext = nil
		return err
	}
	tx := &memTx{
		items:       make(map[string]entity.StockItem, len(s.items)),
		order:       append([]string(nil), s.order...),
		receipts:    append([]entity.StockReceipt(nil), s.receipts...),
		consumption: append([]entity.StockConsumption(nil), s.consumption...),
	}
	for k, v := range s.items {
		tx.items[k] = v
	}
	if err := fn(memItems{tx}, memReceipts{tx}, memConsumption{tx}); err != nil {
		return err
	}
	s.items, s.order, s.receipts, s.consumption = tx.items, tx.order, tx.receipts, tx.consumption
	return nil
}

func (s *memStore) item(code string) (entity.StockItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[code]
	return it, ok
}

func (s *memStore) counts() (items, receipts, consumption int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), len(s.receipts), len(s.consumption)
}

type memItems struct{ tx *memTx }

func (r memItems) Create(_ context.Context, item *entity.StockItem) error {
	if _, ok := r.tx.items[item.ItemCode]; ok {
		return domain.ErrDuplicate
	}
	r.tx.items[item.ItemCode] = *item
	r.tx.order = append(r.tx.order, item.ItemCode)
	return nil
}

func (r memItems) GetByCode(_ context.Context, code string) (*entity.StockItem, error) {
	it, ok := r.tx.items[code]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r memItems) List(_ context.Context) ([]entity.StockItem, error) {
	out := make([]entity.StockItem, 0, len(r.tx.order))
	for _, code := range r.tx.order {
		out = append(out, r.tx.items[code])
	}
	return out, nil
}

func (r memItems) UpdateBalance(_ context.Context, code string, qty, rate decimal.Decimal) error {
	it, ok := r.tx.items[code]
	if !ok {
		return domain.ErrUnknownItem
	}
	it.CurrentQuantity, it.Rate = qty, rate
	r.tx.items[code] = it
	return nil
}

type memReceipts struct{ tx *memTx }

func (r memReceipts) Create(_ context.Context, rec *entity.StockReceipt) error {
	r.tx.receipts = append(r.tx.receipts, *rec)
	return nil
}

func (r memReceipts) List(_ context.Context) ([]entity.StockReceipt, error) {
	return append([]entity.StockReceipt(nil), r.tx.receipts...), nil
}

type memConsumption struct{ tx *memTx }

func (r memConsumption) Create(_ context.Context, c *entity.StockConsumption) error {
	r.tx.consumption = append(r.tx.consumption, *c)
	return nil
}

func (r memConsumption) List(_ context.Context) ([]entity.StockConsumption, error) {
	return append([]entity.StockConsumption(nil), r.tx.consumption...), nil
}

// repos devuelve adaptadores fuera de transacción, leyendo directo del store (Bootstrap).
func (s *memStore) repos() (repository.StockItemRepository, repository.StockReceiptRepository, repository.StockConsumptionRepository) {
	tx := &memTx{items: s.items, order: s.order, receipts: s.receipts, consumption: s.consumption}
	return memItems{tx}, memReceipts{tx}, memConsumption{tx}
}

var errDBDown = errors.New("db caída")
