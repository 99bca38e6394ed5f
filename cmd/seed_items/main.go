// seed_items carga el catálogo inicial de materiales desde un CSV y, opcionalmente,
// crea el usuario administrador.
//
// Uso: go run ./cmd/seed_items [ruta/materiales.csv]
// Por defecto busca materiales.csv en el directorio actual. SEED_CSV_LATIN1=true para archivos
// ISO-8859-1. SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD crean el admin si no existe.
package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/jhoicas/inventario-obra/internal/application/auth"
	"github.com/jhoicas/inventario-obra/internal/application/dto"
	"github.com/jhoicas/inventario-obra/internal/domain"
	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/internal/domain/inventory"
	"github.com/jhoicas/inventario-obra/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-obra/pkg/config"
	"github.com/jhoicas/inventario-obra/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_items"})

	csvPath := "materiales.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("abrir CSV")
	}
	defer f.Close()

	newItems, err := loadItems(f, strings.EqualFold(os.Getenv("SEED_CSV_LATIN1"), "true"))
	if err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("leer materiales")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// El ledger valida cada fila con las mismas reglas que la API (código único, cantidades >= 0).
	ledger := inventory.NewLedger()
	itemRepo := postgres.NewStockItemRepository(pool)
	created, skipped := 0, 0
	for _, n := range newItems {
		item, err := ledger.CreateItem(n)
		if err != nil {
			log.Fatal().Err(err).Str("item_code", n.ItemCode).Msg("material inválido")
		}
		if err := itemRepo.Create(ctx, &item); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				log.Warn().Str("item_code", item.ItemCode).Msg("material ya existe, se omite")
				continue
			}
			log.Fatal().Err(err).Str("item_code", item.ItemCode).Msg("insertar material")
		}
		created++
	}
	log.Info().Int("creados", created).Int("omitidos", skipped).Msg("materiales cargados")

	email, password := os.Getenv("SEED_ADMIN_EMAIL"), os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     "Administrador",
		Role:     entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		log.Info().Str("email", email).Msg("admin ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear admin")
	default:
		log.Info().Str("email", user.Email).Str("id", user.ID).Msg("admin creado")
	}
}
