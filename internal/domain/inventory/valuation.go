package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scale decimales máximos de cantidades y tarifas (columnas NUMERIC(18, 4)).
const Scale = 4

// FitsScale indica si v se guarda sin redondeo con Scale decimales.
// Ceros a la derecha no cuentan: 1.50000 es válido.
func FitsScale(v decimal.Decimal) bool {
	return v.Equal(v.Truncate(Scale))
}

// LineValue total de una línea de entrada o consumo: cantidad × tarifa, exacto.
// Con ambos factores en Scale decimales el resultado tiene a lo sumo 2*Scale.
func LineValue(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate)
}

// DateOnly normaliza un instante a su fecha calendario (medianoche UTC).
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
