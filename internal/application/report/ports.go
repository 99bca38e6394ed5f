package report

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-obra/internal/domain/entity"
)

// ValuationPDFGenerator genera el reporte de valorización en PDF.
type ValuationPDFGenerator interface {
	GenerateValuationPDF(ctx context.Context, reports []entity.InventoryReport, generatedAt time.Time) ([]byte, error)
}
