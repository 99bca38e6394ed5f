package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/inventario-obra/internal/domain/inventory"
	"github.com/jhoicas/inventario-obra/internal/domain/repository"
	"github.com/jhoicas/inventario-obra/pkg/logger"
)

var _ inventory.Sink = (*Journal)(nil)

// Journal persiste en segundo plano los eventos del ledger.
//
// Append solo encola: el ledger lo llama con el material bloqueado. Un único worker escribe
// cada evento en su propia transacción, en el mismo orden en que se aplicaron, así el saldo
// guardado de cada material nunca retrocede. Un fallo se registra en el log y no se reintenta.
type Journal struct {
	tx  TxRunner
	log *logger.Logger

	mu     sync.Mutex
	queue  []inventory.Event
	closed bool

	signal  chan struct{}
	stop    chan struct{}
	done    chan struct{}
	started bool
}

// NewJournal construye el journal. Llamar Start antes de registrar movimientos.
func NewJournal(tx TxRunner, log *logger.Logger) *Journal {
	return &Journal{
		tx:     tx,
		log:    log.Component("journal"),
		signal: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Append encola el evento. No bloquea.
func (j *Journal) Append(ev inventory.Event) {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		j.log.Warn().Str("kind", ev.Kind).Str("item_code", ev.Item.ItemCode).Msg("evento descartado: journal cerrado")
		return
	}
	j.queue = append(j.queue, ev)
	j.mu.Unlock()

	select {
	case j.signal <- struct{}{}:
	default:
	}
}

// Pending devuelve la cantidad de eventos aún sin escribir.
func (j *Journal) Pending() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.queue)
}

// Start lanza el worker. Las escrituras no se cancelan con ctx: solo Close las detiene.
func (j *Journal) Start(ctx context.Context) {
	j.mu.Lock()
	if j.started {
		j.mu.Unlock()
		return
	}
	j.started = true
	j.mu.Unlock()

	go j.run(context.WithoutCancel(ctx))
}

// Close deja de aceptar eventos, espera a que se escriba lo encolado y detiene el worker.
// Si ctx vence antes, devuelve el error con la cantidad de eventos pendientes.
func (j *Journal) Close(ctx context.Context) error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	started := j.started
	j.mu.Unlock()

	if !started {
		return nil
	}
	close(j.stop)
	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("journal: %d eventos sin escribir: %w", j.Pending(), ctx.Err())
	}
}

func (j *Journal) run(ctx context.Context) {
	defer close(j.done)
	for {
		select {
		case <-j.signal:
			j.drain(ctx)
		case <-j.stop:
			j.drain(ctx)
			return
		}
	}
}

func (j *Journal) drain(ctx context.Context) {
	for {
		j.mu.Lock()
		if len(j.queue) == 0 {
			j.mu.Unlock()
			return
		}
		ev := j.queue[0]
		j.queue[0] = inventory.Event{}
		j.queue = j.queue[1:]
		j.mu.Unlock()

		if err := j.write(ctx, ev); err != nil {
			j.log.Error().Err(err).
				Str("kind", ev.Kind).
				Str("item_code", ev.Item.ItemCode).
				Msg("no se pudo persistir el evento")
		}
	}
}

func (j *Journal) write(ctx context.Context, ev inventory.Event) error {
	return j.tx.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		receiptRepo repository.StockReceiptRepository,
		consumptionRepo repository.StockConsumptionRepository,
	) error {
		switch ev.Kind {
		case inventory.EventItemCreated:
			item := ev.Item
			return itemRepo.Create(ctx, &item)
		case inventory.EventReceipt:
			if err := receiptRepo.Create(ctx, ev.Receipt); err != nil {
				return err
			}
		case inventory.EventConsumption:
			if err := consumptionRepo.Create(ctx, ev.Consumption); err != nil {
				return err
			}
		default:
			return fmt.Errorf("journal: tipo de evento desconocido %q", ev.Kind)
		}
		return itemRepo.UpdateBalance(ctx, ev.Item.ItemCode, ev.Item.CurrentQuantity, ev.Item.Rate)
	})
}
