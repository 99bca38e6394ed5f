package inventory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-obra/internal/domain"
	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Tipos de evento emitidos por el ledger hacia el Sink.
const (
	EventItemCreated = "ITEM_CREATED"
	EventReceipt     = "RECEIPT"
	EventConsumption = "CONSUMPTION"
)

// Event describe un cambio ya aplicado. Item es el estado del material después del cambio.
type Event struct {
	Kind        string
	Item        entity.StockItem
	Receipt     *entity.StockReceipt
	Consumption *entity.StockConsumption
}

// Sink recibe cada evento aplicado, en orden por material. Append no debe bloquear:
// se invoca con el material bloqueado.
type Sink interface {
	Append(ev Event)
}

// NewItem entrada para dar de alta un material.
type NewItem struct {
	ItemCode          string
	ItemName          string
	UnitOfMeasurement string
	Quantity          decimal.Decimal
	Rate              decimal.Decimal
}

// ReceiptInput entrada de RecordReceipt. TotalValue no se recibe: el ledger lo calcula.
// El registro guarda siempre el nombre y la unidad del material; UnitOfMeasurement, si viene,
// debe coincidir con la unidad del material.
type ReceiptInput struct {
	ItemCode          string
	QuantityReceived  decimal.Decimal
	RatePerUnit       decimal.Decimal
	UnitOfMeasurement string
	SupplierName      string
	DeliveryDate      time.Time
	ReceivedBy        string
	CreatedBy         string
}

// ConsumptionInput entrada de RecordConsumption. Nombre, unidad, tarifa y total salen del material.
type ConsumptionInput struct {
	ItemCode            string
	QuantityUsed        decimal.Decimal
	PurposeActivityCode string
	UsedBy              string
	Date                time.Time
	Remarks             string
	CreatedBy           string
}

// Snapshot vista consistente de las tres colecciones, en orden de inserción.
type Snapshot struct {
	Items       []entity.StockItem
	Receipts    []entity.StockReceipt
	Consumption []entity.StockConsumption
}

type itemEntry struct {
	mu   sync.Mutex
	item entity.StockItem
}

// Ledger motor de inventario: mantiene el stock y la valorización a partir de entradas y consumos.
//
// Las mutaciones toman mu en lectura más el candado del material, así dos operaciones sobre
// el mismo material nunca se intercalan entre la validación y la escritura. Snapshot y el
// alta de materiales toman mu en escritura.
type Ledger struct {
	mu    sync.RWMutex
	items map[string]*itemEntry
	order []string

	histMu      sync.Mutex
	receipts    []entity.StockReceipt
	consumption []entity.StockConsumption

	now   func() time.Time
	newID func() string
	sink  Sink
}

// Option configura el Ledger.
type Option func(*Ledger)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator reemplaza el generador de IDs (por defecto UUID v4).
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

// WithSink registra el colaborador de persistencia.
func WithSink(s Sink) Option {
	return func(l *Ledger) { l.sink = s }
}

// NewLedger construye un ledger vacío.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		items: make(map[string]*itemEntry),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load carga el estado inicial desde persistencia. Solo es válido sobre un ledger vacío.
func (l *Ledger) Load(items []entity.StockItem, receipts []entity.StockReceipt, consumption []entity.StockConsumption) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.items) > 0 || len(l.receipts) > 0 || len(l.consumption) > 0 {
		return domain.ErrInvalidInput
	}
	loaded := make(map[string]*itemEntry, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.ItemCode) == "" || it.CurrentQuantity.IsNegative() || it.Rate.IsNegative() {
			return domain.ErrInvalidInput
		}
		if _, dup := loaded[it.ItemCode]; dup {
			return domain.ErrDuplicate
		}
		loaded[it.ItemCode] = &itemEntry{item: it}
		order = append(order, it.ItemCode)
	}
	l.items = loaded
	l.order = order
	l.histMu.Lock()
	l.receipts = append([]entity.StockReceipt(nil), receipts...)
	l.consumption = append([]entity.StockConsumption(nil), consumption...)
	l.histMu.Unlock()
	return nil
}

// CreateItem da de alta un material. El código no puede repetirse.
func (l *Ledger) CreateItem(in NewItem) (entity.StockItem, error) {
	code := strings.TrimSpace(in.ItemCode)
	if code == "" || strings.TrimSpace(in.ItemName) == "" || strings.TrimSpace(in.UnitOfMeasurement) == "" {
		return entity.StockItem{}, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() || in.Rate.IsNegative() || !FitsScale(in.Quantity) || !FitsScale(in.Rate) {
		return entity.StockItem{}, domain.ErrInvalidInput
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.items[code]; ok {
		return entity.StockItem{}, domain.ErrDuplicate
	}
	now := l.now()
	item := entity.StockItem{
		ItemCode:          code,
		ItemName:          strings.TrimSpace(in.ItemName),
		CurrentQuantity:   in.Quantity,
		UnitOfMeasurement: strings.TrimSpace(in.UnitOfMeasurement),
		Rate:              in.Rate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	l.items[code] = &itemEntry{item: item}
	l.order = append(l.order, code)
	if l.sink != nil {
		l.sink.Append(Event{Kind: EventItemCreated, Item: item})
	}
	return item, nil
}

// RecordReceipt registra una entrada: agrega el evento, suma la cantidad y reemplaza la tarifa
// del material por RatePerUnit (costeo por última tarifa, sin promedio ponderado).
// Material inexistente → ErrUnknownItem; unidad distinta a la del material → ErrInvalidInput.
func (l *Ledger) RecordReceipt(in ReceiptInput) (entity.StockReceipt, error) {
	if err := validateReceipt(in); err != nil {
		return entity.StockReceipt{}, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.items[strings.TrimSpace(in.ItemCode)]
	if !ok {
		return entity.StockReceipt{}, domain.ErrUnknownItem
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if unit := strings.TrimSpace(in.UnitOfMeasurement); unit != "" && !strings.EqualFold(unit, e.item.UnitOfMeasurement) {
		return entity.StockReceipt{}, domain.ErrInvalidInput
	}

	now := l.now()
	rec := entity.StockReceipt{
		ID:                l.newID(),
		ItemCode:          e.item.ItemCode,
		ItemName:          e.item.ItemName,
		QuantityReceived:  in.QuantityReceived,
		RatePerUnit:       in.RatePerUnit,
		UnitOfMeasurement: e.item.UnitOfMeasurement,
		TotalValue:        LineValue(in.QuantityReceived, in.RatePerUnit),
		SupplierName:      in.SupplierName,
		DeliveryDate:      DateOnly(in.DeliveryDate),
		ReceivedBy:        in.ReceivedBy,
		CreatedAt:         now,
		CreatedBy:         in.CreatedBy,
	}

	l.histMu.Lock()
	l.receipts = append(l.receipts, rec)
	l.histMu.Unlock()

	e.item.CurrentQuantity = e.item.CurrentQuantity.Add(in.QuantityReceived)
	e.item.Rate = in.RatePerUnit
	e.item.UpdatedAt = now

	if l.sink != nil {
		r := rec
		l.sink.Append(Event{Kind: EventReceipt, Item: e.item, Receipt: &r})
	}
	return rec, nil
}

// RecordConsumption registra un consumo. Valida y descuenta en un solo paso atómico por material:
// si QuantityUsed supera el stock devuelve *domain.InsufficientStockError y no modifica nada.
func (l *Ledger) RecordConsumption(in ConsumptionInput) (entity.StockConsumption, error) {
	if err := validateConsumption(in); err != nil {
		return entity.StockConsumption{}, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.items[strings.TrimSpace(in.ItemCode)]
	if !ok {
		return entity.StockConsumption{}, domain.ErrUnknownItem
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if in.QuantityUsed.GreaterThan(e.item.CurrentQuantity) {
		return entity.StockConsumption{}, &domain.InsufficientStockError{
			ItemCode:  e.item.ItemCode,
			Available: e.item.CurrentQuantity,
			Requested: in.QuantityUsed,
		}
	}

	now := l.now()
	rate := e.item.Rate
	rec := entity.StockConsumption{
		ID:                  l.newID(),
		ItemCode:            e.item.ItemCode,
		ItemName:            e.item.ItemName,
		QuantityUsed:        in.QuantityUsed,
		PurposeActivityCode: in.PurposeActivityCode,
		UsedBy:              in.UsedBy,
		Date:                DateOnly(in.Date),
		Remarks:             in.Remarks,
		UnitOfMeasurement:   e.item.UnitOfMeasurement,
		RatePerUnit:         rate,
		TotalValue:          LineValue(in.QuantityUsed, rate),
		CreatedAt:           now,
		CreatedBy:           in.CreatedBy,
	}

	l.histMu.Lock()
	l.consumption = append(l.consumption, rec)
	l.histMu.Unlock()

	e.item.CurrentQuantity = e.item.CurrentQuantity.Sub(in.QuantityUsed)
	e.item.UpdatedAt = now

	if l.sink != nil {
		c := rec
		l.sink.Append(Event{Kind: EventConsumption, Item: e.item, Consumption: &c})
	}
	return rec, nil
}

// Item devuelve una copia del material o ErrUnknownItem.
func (l *Ledger) Item(code string) (entity.StockItem, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.items[strings.TrimSpace(code)]
	if !ok {
		return entity.StockItem{}, domain.ErrUnknownItem
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.item, nil
}

// Items devuelve los materiales en orden de alta.
func (l *Ledger) Items() []entity.StockItem {
	return l.Snapshot().Items
}

// Receipts devuelve las entradas en orden de inserción.
func (l *Ledger) Receipts() []entity.StockReceipt {
	l.histMu.Lock()
	defer l.histMu.Unlock()
	return append([]entity.StockReceipt(nil), l.receipts...)
}

// Consumption devuelve los consumos en orden de inserción.
func (l *Ledger) Consumption() []entity.StockConsumption {
	l.histMu.Lock()
	defer l.histMu.Unlock()
	return append([]entity.StockConsumption(nil), l.consumption...)
}

// Snapshot copia las tres colecciones sin mutaciones en curso.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]entity.StockItem, 0, len(l.order))
	for _, code := range l.order {
		items = append(items, l.items[code].item)
	}
	l.histMu.Lock()
	defer l.histMu.Unlock()
	return Snapshot{
		Items:       items,
		Receipts:    append([]entity.StockReceipt(nil), l.receipts...),
		Consumption: append([]entity.StockConsumption(nil), l.consumption...),
	}
}

func validateReceipt(in ReceiptInput) error {
	if strings.TrimSpace(in.ItemCode) == "" ||
		strings.TrimSpace(in.SupplierName) == "" ||
		strings.TrimSpace(in.ReceivedBy) == "" ||
		strings.TrimSpace(in.CreatedBy) == "" {
		return domain.ErrInvalidInput
	}
	if !in.QuantityReceived.IsPositive() || in.RatePerUnit.IsNegative() ||
		!FitsScale(in.QuantityReceived) || !FitsScale(in.RatePerUnit) {
		return domain.ErrInvalidInput
	}
	if in.DeliveryDate.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}

func validateConsumption(in ConsumptionInput) error {
	if strings.TrimSpace(in.ItemCode) == "" ||
		strings.TrimSpace(in.PurposeActivityCode) == "" ||
		strings.TrimSpace(in.UsedBy) == "" ||
		strings.TrimSpace(in.CreatedBy) == "" {
		return domain.ErrInvalidInput
	}
	if !in.QuantityUsed.IsPositive() || !FitsScale(in.QuantityUsed) || in.Date.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}
