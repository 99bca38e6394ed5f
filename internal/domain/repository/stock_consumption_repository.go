package repository

import (
	"context"

	"github.com/jhoicas/inventario-obra/internal/domain/entity"
)

// StockConsumptionRepository puerto de persistencia de consumos (solo inserción).
type StockConsumptionRepository interface {
	Create(ctx context.Context, consumption *entity.StockConsumption) error
	List(ctx context.Context) ([]entity.StockConsumption, error)
}
