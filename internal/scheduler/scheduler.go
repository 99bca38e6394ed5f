package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/pkg/config"
	"github.com/jhoicas/inventario-obra/pkg/logger"
)

// LowStockSource consulta de materiales bajo el umbral (LedgerUseCase).
type LowStockSource interface {
	LowStock(ctx context.Context) []entity.StockItem
	Threshold() decimal.Decimal
}

// Scheduler ejecuta los jobs periódicos del inventario.
type Scheduler struct {
	cron   *cron.Cron
	source LowStockSource
	cfg    config.SchedulerConfig
	log    *logger.Logger
}

// NewScheduler crea el scheduler. El parser es el estándar de 5 campos (min, hora, día, mes, día semana).
func NewScheduler(cfg config.SchedulerConfig, source LowStockSource, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		source: source,
		cfg:    cfg,
		log:    log.Component("scheduler"),
	}
}

// Start programa los jobs habilitados y arranca el cron.
func (s *Scheduler) Start() error {
	if s.cfg.LowStockEnabled() {
		if _, err := s.cron.AddFunc(s.cfg.LowStockCron, func() { s.LowStockAlert() }); err != nil {
			return fmt.Errorf("scheduler: expresión inválida %q: %w", s.cfg.LowStockCron, err)
		}
		s.log.Info().Str("cron", s.cfg.LowStockCron).Msg("alerta de stock bajo programada")
	} else {
		s.log.Info().Msg("alerta de stock bajo deshabilitada")
	}
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que terminen los jobs en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

// LowStockAlert registra un warning por cada material bajo el umbral. Devuelve cuántos hay.
func (s *Scheduler) LowStockAlert() int {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	items := s.source.LowStock(ctx)
	threshold := s.source.Threshold()
	for _, it := range items {
		s.log.Warn().
			Str("item_code", it.ItemCode).
			Str("item_name", it.ItemName).
			Str("current_quantity", it.CurrentQuantity.String()).
			Str("unit", it.UnitOfMeasurement).
			Str("threshold", threshold.String()).
			Msg("stock bajo")
	}
	s.log.Info().Int("low_stock_items", len(items)).Msg("revisión de stock bajo completada")
	return len(items)
}
