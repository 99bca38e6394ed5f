package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-obra/internal/domain"
	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

const stockItemColumns = `item_code, item_name, current_quantity, unit_of_measurement, rate, created_at, updated_at`

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// Create persiste un material nuevo.
func (r *StockItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	query := `INSERT INTO stock_items (` + stockItemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ItemCode, item.ItemName, item.CurrentQuantity, item.UnitOfMeasurement,
		item.Rate, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByCode obtiene un material por código. Devuelve nil, nil si no existe.
func (r *StockItemRepo) GetByCode(ctx context.Context, itemCode string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE item_code = $1`
	var it entity.StockItem
	err := r.q.QueryRow(ctx, query, itemCode).Scan(
		&it.ItemCode, &it.ItemName, &it.CurrentQuantity, &it.UnitOfMeasurement,
		&it.Rate, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return &it, nil
}

// List devuelve todos los materiales en orden de alta.
func (r *StockItemRepo) List(ctx context.Context) ([]entity.StockItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockItemColumns+` FROM stock_items ORDER BY created_at, item_code`)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []entity.StockItem
	for rows.Next() {
		var it entity.StockItem
		if err := rows.Scan(&it.ItemCode, &it.ItemName, &it.CurrentQuantity, &it.UnitOfMeasurement,
			&it.Rate, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// UpdateBalance escribe cantidad y tarifa tal como quedaron en el ledger.
func (r *StockItemRepo) UpdateBalance(ctx context.Context, itemCode string, quantity, rate decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_items SET current_quantity = $2, rate = $3, updated_at = now() WHERE item_code = $1`,
		itemCode, quantity, rate,
	)
	if err != nil {
		return fmt.Errorf("update stock item balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUnknownItem
	}
	return nil
}
