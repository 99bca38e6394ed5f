package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/inventario-obra/internal/application/auth"
	"github.com/jhoicas/inventario-obra/internal/application/inventory"
	"github.com/jhoicas/inventario-obra/internal/application/ports"
	domaininv "github.com/jhoicas/inventario-obra/internal/domain/inventory"
	"github.com/jhoicas/inventario-obra/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-obra/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-obra/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/inventario-obra/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/inventario-obra/internal/interfaces/http"
	"github.com/jhoicas/inventario-obra/internal/scheduler"
	"github.com/jhoicas/inventario-obra/pkg/config"
	"github.com/jhoicas/inventario-obra/pkg/logger"
)

const idempotencyTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewStockItemRepository(pool)
	receiptRepo := postgres.NewStockReceiptRepository(pool)
	consumptionRepo := postgres.NewStockConsumptionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Journal: el ledger en memoria es la fuente de verdad; la BD se actualiza en segundo plano.
	journal := inventory.NewJournal(txRunner, log)
	journal.Start(ctx)

	ledger := domaininv.NewLedger(domaininv.WithSink(journal))
	ledgerUC := inventory.NewLedgerUseCase(ledger, itemRepo, receiptRepo, consumptionRepo, inventory.Settings{
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
		RecentLimit:       cfg.Inventory.RecentLimit,
	}, log)
	if err := ledgerUC.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial del inventario")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Idempotency-Key: Redis si está configurado; si no, memoria del proceso.
	var idemStore ports.IdempotencyStore
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer client.Close()
		idemStore = infraredis.NewIdempotencyStore(client)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: idempotency keys en memoria")
		idemStore = memory.NewIdempotencyStore(idempotencyTTL)
	}

	sched := scheduler.NewScheduler(cfg.Scheduler, ledgerUC, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Str("cron", cfg.Scheduler.LowStockCron).Msg("programar alerta de stock bajo")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario de Obra API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":          "ok",
			"service":         cfg.App.Name,
			"journal_pending": journal.Pending(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:    ledgerUC,
		AuthUC:      authUC,
		PDF:         infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		Idempotency: idemStore,
		Logger:      log,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	sched.Stop()
	if err := journal.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre del journal")
	}

	log.Info().Msg("aplicación detenida")
}
