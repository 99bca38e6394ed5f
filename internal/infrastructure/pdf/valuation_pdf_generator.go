// Package pdf genera el reporte de valorización de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la obra        │  Fecha de corte          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Material | Rec. | Cons. | Stock | Und | Valor│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: Valor del inventario                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventario-obra/internal/application/report"
	"github.com/jhoicas/inventario-obra/internal/domain/entity"
)

var _ report.ValuationPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.ValuationPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	siteName string
	printer  *message.Printer
}

// NewMarotoPDFGenerator construye el generador. siteName aparece en el encabezado.
func NewMarotoPDFGenerator(siteName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{
		siteName: siteName,
		printer:  message.NewPrinter(language.Spanish),
	}
}

// GenerateValuationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateValuationPDF(
	_ context.Context,
	reports []entity.InventoryReport,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Valorización de inventario", true).
		WithAuthor(g.siteName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	total := decimal.Zero
	for i, r := range reports {
		m.AddRows(g.detailRow(r, i%2 == 1))
		total = total.Add(r.CurrentValue)
	}
	if len(reports) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No hay materiales registrados.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(len(reports), total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(at time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.siteName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario de materiales de obra", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE VALORIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Corte: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Material", 3, align.Left),
		h("Recibido", 1, align.Right),
		h("Consumido", 1, align.Right),
		h("Stock", 1, align.Right),
		h("Und.", 1, align.Center),
		h("Valor actual", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *MarotoPDFGenerator) detailRow(r entity.InventoryReport, striped bool) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := row.New(7).Add(
		cell(r.ItemCode, 2, align.Left),
		cell(r.ItemName, 3, align.Left),
		cell(g.quantity(r.TotalReceived), 1, align.Right),
		cell(g.quantity(r.TotalConsumed), 1, align.Right),
		cell(g.quantity(r.CurrentStock), 1, align.Right),
		cell(r.UnitOfMeasurement, 1, align.Center),
		cell("$"+g.Money(r.CurrentValue), 3, align.Right),
	)
	if striped {
		out = out.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return out
}

func (g *MarotoPDFGenerator) totalRow(count int, total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6).Add(text.New(fmt.Sprintf("%d materiales", count), props.Text{
			Size: 8, Top: 3, Color: colorGray,
		})),
		col.New(3).Add(text.New("VALOR DEL INVENTARIO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+g.Money(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Money formatea con separador de miles y dos decimales según la configuración regional.
func (g *MarotoPDFGenerator) Money(v decimal.Decimal) string {
	return g.printer.Sprintf("%.2f", v.Round(2).InexactFloat64())
}

func (g *MarotoPDFGenerator) quantity(v decimal.Decimal) string {
	if v.Equal(v.Truncate(0)) {
		return g.printer.Sprintf("%d", v.IntPart())
	}
	return g.printer.Sprintf("%.2f", v.Round(2).InexactFloat64())
}
