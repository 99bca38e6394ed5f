package inventory

import (
	"context"

	"github.com/jhoicas/inventario-obra/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El Journal lo usa para que registro y saldo del material se escriban juntos o no se escriban.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		receiptRepo repository.StockReceiptRepository,
		consumptionRepo repository.StockConsumptionRepository,
	) error) error
}
