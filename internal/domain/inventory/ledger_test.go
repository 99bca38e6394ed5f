package inventory_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-obra/internal/domain"
	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type recordingSink struct {
	mu     sync.Mutex
	events []inventory.Event
}

func (s *recordingSink) Append(ev inventory.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// newLedgerWithCement crea un ledger con CEM001 en 100 unidades a tarifa 10.
func newLedgerWithCement(t *testing.T, opts ...inventory.Option) *inventory.Ledger {
	t.Helper()
	seq := 0
	base := []inventory.Option{
		inventory.WithClock(func() time.Time { return fixedNow }),
		inventory.WithIDGenerator(func() string { seq++; return fmt.Sprintf("ID-%03d", seq) }),
	}
	l := inventory.NewLedger(append(base, opts...)...)
	require.NoError(t, l.Load([]entity.StockItem{{
		ItemCode:          "CEM001",
		ItemName:          "Cemento gris",
		CurrentQuantity:   d("100"),
		UnitOfMeasurement: "Bags",
		Rate:              d("10"),
	}}, nil, nil))
	return l
}

func receiptInput(code string, qty, rate string) inventory.ReceiptInput {
	return inventory.ReceiptInput{
		ItemCode:         code,
		QuantityReceived: d(qty),
		RatePerUnit:      d(rate),
		SupplierName:     "Cementos del Valle",
		DeliveryDate:     time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		ReceivedBy:       "Bodega principal",
		CreatedBy:        "user-1",
	}
}

func consumptionInput(code, qty string) inventory.ConsumptionInput {
	return inventory.ConsumptionInput{
		ItemCode:            code,
		QuantityUsed:        d(qty),
		PurposeActivityCode: "ACT-CIM",
		UsedBy:              "Construction Team A",
		Date:                time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Remarks:             "zapatas eje 3",
		CreatedBy:           "user-1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios CEM001
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_EscenariosCemento(t *testing.T) {
	l := newLedgerWithCement(t)

	// Escenario 1: entrada de 50 a tarifa 12.
	rec, err := l.RecordReceipt(receiptInput("CEM001", "50", "12"))
	require.NoError(t, err)
	assert.Equal(t, "ID-001", rec.ID)
	assert.True(t, rec.TotalValue.Equal(d("600")))
	assert.Equal(t, fixedNow, rec.CreatedAt)

	item, err := l.Item("CEM001")
	require.NoError(t, err)
	assert.True(t, item.CurrentQuantity.Equal(d("150")), "cantidad tras la entrada")
	assert.True(t, item.Rate.Equal(d("12")), "la tarifa pasa a ser la de la última entrada")

	// Escenario 2: consumo de 30 a la tarifa vigente.
	cons, err := l.RecordConsumption(consumptionInput("CEM001", "30"))
	require.NoError(t, err)
	assert.True(t, cons.RatePerUnit.Equal(d("12")))
	assert.True(t, cons.TotalValue.Equal(d("360")))
	assert.Equal(t, "Cemento gris", cons.ItemName)
	assert.Equal(t, "Bags", cons.UnitOfMeasurement)

	item, _ = l.Item("CEM001")
	assert.True(t, item.CurrentQuantity.Equal(d("120")))

	// Escenario 3: consumo mayor al disponible.
	_, err = l.RecordConsumption(consumptionInput("CEM001", "200"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var insuf *domain.InsufficientStockError
	require.True(t, errors.As(err, &insuf))
	assert.True(t, insuf.Available.Equal(d("120")))
	assert.True(t, insuf.Requested.Equal(d("200")))

	item, _ = l.Item("CEM001")
	assert.True(t, item.CurrentQuantity.Equal(d("120")), "el rechazo no modifica el stock")
	assert.Len(t, l.Consumption(), 1, "el rechazo no agrega consumo")

	// Escenario 4: material desconocido.
	_, err = l.RecordConsumption(consumptionInput("UNKNOWN", "1"))
	assert.ErrorIs(t, err, domain.ErrUnknownItem)

	// Escenario 5: proyección.
	reports := inventory.ProjectReports(l.Snapshot())
	require.Len(t, reports, 1)
	r := reports[0]
	assert.Equal(t, "CEM001", r.ItemCode)
	assert.True(t, r.TotalReceived.Equal(d("50")))
	assert.True(t, r.TotalConsumed.Equal(d("30")))
	assert.True(t, r.CurrentStock.Equal(d("120")))
	assert.True(t, r.CurrentValue.Equal(d("1440")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordReceipt_MaterialDesconocido_NoModificaEstado(t *testing.T) {
	l := newLedgerWithCement(t)

	_, err := l.RecordReceipt(receiptInput("ARENA01", "10", "5"))
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
	assert.Empty(t, l.Receipts())
}

func TestRecordReceipt_TarifaSiempreLaUltima(t *testing.T) {
	l := newLedgerWithCement(t)

	for _, rate := range []string{"15", "8.5", "0"} {
		_, err := l.RecordReceipt(receiptInput("CEM001", "1", rate))
		require.NoError(t, err)
		item, _ := l.Item("CEM001")
		assert.True(t, item.Rate.Equal(d(rate)), "tarifa esperada %s, obtenida %s", rate, item.Rate)
	}
}

func TestRecordReceipt_TomaNombreYUnidadDelMaterial(t *testing.T) {
	l := newLedgerWithCement(t)
	for _, unit := range []string{"", "Bags", "bags"} {
		in := receiptInput("CEM001", "5", "11")
		in.UnitOfMeasurement = unit

		rec, err := l.RecordReceipt(in)
		require.NoError(t, err, "unidad %q", unit)
		assert.Equal(t, "Cemento gris", rec.ItemName)
		assert.Equal(t, "Bags", rec.UnitOfMeasurement)
	}
}

func TestRecordReceipt_UnidadDistintaRechazada(t *testing.T) {
	l := newLedgerWithCement(t)
	in := receiptInput("CEM001", "5", "11")
	in.UnitOfMeasurement = "Kg"

	_, err := l.RecordReceipt(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	item, _ := l.Item("CEM001")
	assert.True(t, item.CurrentQuantity.Equal(d("100")))
	assert.True(t, item.Rate.Equal(d("10")))
	assert.Empty(t, l.Receipts())
}

func TestMovimientos_RechazanMasDeCuatroDecimales(t *testing.T) {
	l := newLedgerWithCement(t)

	_, err := l.RecordReceipt(receiptInput("CEM001", "0.00004", "10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad con 5 decimales")

	_, err = l.RecordReceipt(receiptInput("CEM001", "1", "12.345678"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tarifa con 6 decimales")

	_, err = l.RecordConsumption(consumptionInput("CEM001", "0.12345"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = l.CreateItem(inventory.NewItem{ItemCode: "ARE01", ItemName: "Arena", UnitOfMeasurement: "m3", Quantity: d("1.00001")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = l.CreateItem(inventory.NewItem{ItemCode: "ARE01", ItemName: "Arena", UnitOfMeasurement: "m3", Rate: d("0.000001")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, l.Receipts())
	assert.Empty(t, l.Consumption())
	item, _ := l.Item("CEM001")
	assert.True(t, item.CurrentQuantity.Equal(d("100")))
	assert.True(t, item.Rate.Equal(d("10")))
}

func TestMovimientos_CuatroDecimalesYTotalExacto(t *testing.T) {
	l := newLedgerWithCement(t)

	rec, err := l.RecordReceipt(receiptInput("CEM001", "0.0001", "12.3457"))
	require.NoError(t, err)
	assert.Equal(t, "0.00123457", rec.TotalValue.String())

	_, err = l.RecordReceipt(receiptInput("CEM001", "2.50000", "3"))
	assert.NoError(t, err, "ceros a la derecha no cuentan como decimales")
}

func TestRecordReceipt_NormalizaFechaDeEntrega(t *testing.T) {
	l := newLedgerWithCement(t)
	in := receiptInput("CEM001", "5", "11")
	in.DeliveryDate = time.Date(2026, 3, 9, 18, 45, 0, 0, time.UTC)

	rec, err := l.RecordReceipt(in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), rec.DeliveryDate)
}

func TestRecordReceipt_EntradaInvalida(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*inventory.ReceiptInput)
	}{
		{"cantidad cero", func(in *inventory.ReceiptInput) { in.QuantityReceived = decimal.Zero }},
		{"cantidad negativa", func(in *inventory.ReceiptInput) { in.QuantityReceived = d("-1") }},
		{"tarifa negativa", func(in *inventory.ReceiptInput) { in.RatePerUnit = d("-0.01") }},
		{"sin proveedor", func(in *inventory.ReceiptInput) { in.SupplierName = " " }},
		{"sin recibido por", func(in *inventory.ReceiptInput) { in.ReceivedBy = "" }},
		{"sin creado por", func(in *inventory.ReceiptInput) { in.CreatedBy = "" }},
		{"sin fecha", func(in *inventory.ReceiptInput) { in.DeliveryDate = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLedgerWithCement(t)
			in := receiptInput("CEM001", "10", "10")
			tc.mutate(&in)

			_, err := l.RecordReceipt(in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			item, _ := l.Item("CEM001")
			assert.True(t, item.CurrentQuantity.Equal(d("100")))
			assert.True(t, item.Rate.Equal(d("10")))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordConsumption_TodoElStock(t *testing.T) {
	l := newLedgerWithCement(t)

	_, err := l.RecordConsumption(consumptionInput("CEM001", "100"))
	require.NoError(t, err)
	item, _ := l.Item("CEM001")
	assert.True(t, item.CurrentQuantity.IsZero())

	_, err = l.RecordConsumption(consumptionInput("CEM001", "0.001"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRecordConsumption_EntradaInvalida(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*inventory.ConsumptionInput)
	}{
		{"cantidad cero", func(in *inventory.ConsumptionInput) { in.QuantityUsed = decimal.Zero }},
		{"sin actividad", func(in *inventory.ConsumptionInput) { in.PurposeActivityCode = "" }},
		{"sin cuadrilla", func(in *inventory.ConsumptionInput) { in.UsedBy = "" }},
		{"sin creado por", func(in *inventory.ConsumptionInput) { in.CreatedBy = "" }},
		{"sin fecha", func(in *inventory.ConsumptionInput) { in.Date = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLedgerWithCement(t)
			in := consumptionInput("CEM001", "1")
			tc.mutate(&in)

			_, err := l.RecordConsumption(in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, l.Consumption())
		})
	}
}

func TestRecordConsumption_Concurrente_NuncaNegativo(t *testing.T) {
	l := newLedgerWithCement(t, inventory.WithIDGenerator(func() string { return "x" }))

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, rejected := 0, 0
	for i := 0; i < 250; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.RecordConsumption(consumptionInput("CEM001", "1"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	item, _ := l.Item("CEM001")
	assert.Equal(t, 100, ok, "solo se aceptan consumos hasta agotar el stock")
	assert.Equal(t, 150, rejected)
	assert.True(t, item.CurrentQuantity.IsZero())
	assert.Len(t, l.Consumption(), 100)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conservación y alta de materiales
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_Conservacion(t *testing.T) {
	l := inventory.NewLedger()
	_, err := l.CreateItem(inventory.NewItem{ItemCode: "VAR12", ItemName: "Varilla 1/2", UnitOfMeasurement: "Kg"})
	require.NoError(t, err)

	steps := []struct {
		receipt bool
		qty     string
	}{
		{true, "40"}, {false, "15"}, {true, "7.5"}, {false, "32.5"}, {false, "1"}, {true, "3"},
	}
	for _, s := range steps {
		if s.receipt {
			_, err = l.RecordReceipt(receiptInput("VAR12", s.qty, "4200"))
		} else {
			_, err = l.RecordConsumption(consumptionInput("VAR12", s.qty))
		}
		if err != nil {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
		item, _ := l.Item("VAR12")
		assert.False(t, item.CurrentQuantity.IsNegative())
	}

	r := inventory.ProjectReports(l.Snapshot())[0]
	assert.True(t, r.CurrentStock.Equal(r.TotalReceived.Sub(r.TotalConsumed)),
		"stock %s debe ser recibido %s - consumido %s", r.CurrentStock, r.TotalReceived, r.TotalConsumed)
}

func TestCreateItem_DuplicadoEInvalido(t *testing.T) {
	sink := &recordingSink{}
	l := newLedgerWithCement(t, inventory.WithSink(sink))

	_, err := l.CreateItem(inventory.NewItem{ItemCode: "CEM001", ItemName: "Otro", UnitOfMeasurement: "Bags"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = l.CreateItem(inventory.NewItem{ItemCode: "ARE01", ItemName: "Arena", UnitOfMeasurement: "m3", Rate: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	item, err := l.CreateItem(inventory.NewItem{ItemCode: " ARE01 ", ItemName: "Arena", UnitOfMeasurement: "m3", Quantity: d("3")})
	require.NoError(t, err)
	assert.Equal(t, "ARE01", item.ItemCode)
	assert.Len(t, l.Items(), 2)
	require.Len(t, sink.events, 1)
	assert.Equal(t, inventory.EventItemCreated, sink.events[0].Kind)
}

func TestLoad_RechazaDatosInconsistentes(t *testing.T) {
	l := inventory.NewLedger()
	err := l.Load([]entity.StockItem{{ItemCode: "A", CurrentQuantity: d("-1")}}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = l.Load([]entity.StockItem{{ItemCode: "A"}, {ItemCode: "A"}}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	l = newLedgerWithCement(t)
	err = l.Load([]entity.StockItem{{ItemCode: "B"}}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "Load solo sobre ledger vacío")
}

func TestSink_RecibeEstadoPosterior(t *testing.T) {
	sink := &recordingSink{}
	l := newLedgerWithCement(t, inventory.WithSink(sink))

	_, err := l.RecordReceipt(receiptInput("CEM001", "50", "12"))
	require.NoError(t, err)
	_, err = l.RecordConsumption(consumptionInput("CEM001", "30"))
	require.NoError(t, err)
	_, _ = l.RecordConsumption(consumptionInput("CEM001", "500"))

	require.Len(t, sink.events, 2, "los rechazos no emiten eventos")
	assert.Equal(t, inventory.EventReceipt, sink.events[0].Kind)
	assert.True(t, sink.events[0].Item.CurrentQuantity.Equal(d("150")))
	require.NotNil(t, sink.events[0].Receipt)
	assert.Equal(t, inventory.EventConsumption, sink.events[1].Kind)
	assert.True(t, sink.events[1].Item.CurrentQuantity.Equal(d("120")))
	require.NotNil(t, sink.events[1].Consumption)
	assert.True(t, sink.events[1].Consumption.TotalValue.Equal(d("360")))
}
