package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-obra/internal/domain/inventory"
)

var expectedHeader = []string{"item_code", "item_name", "current_quantity", "unit_of_measurement", "rate"}

// loadItems lee el CSV de materiales iniciales. Con latin1 el archivo se decodifica desde ISO-8859-1
// (exportaciones de Excel en Windows).
func loadItems(r io.Reader, latin1 bool) ([]inventory.NewItem, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV de materiales: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("el CSV debe tener encabezado y al menos una fila")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	if !validateHeader(header) {
		return nil, fmt.Errorf("encabezado inválido. Esperado: %v, recibido: %v", expectedHeader, header)
	}

	items := make([]inventory.NewItem, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("fila %d: se esperaban %d columnas, hay %d", i+2, len(expectedHeader), len(record))
		}
		item, err := parseItem(record)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func validateHeader(header []string) bool {
	if len(header) != len(expectedHeader) {
		return false
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(h), expectedHeader[i]) {
			return false
		}
	}
	return true
}

func parseItem(record []string) (inventory.NewItem, error) {
	qty, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return inventory.NewItem{}, fmt.Errorf("current_quantity inválido %q", record[2])
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(record[4]))
	if err != nil {
		return inventory.NewItem{}, fmt.Errorf("rate inválido %q", record[4])
	}
	return inventory.NewItem{
		ItemCode:          strings.TrimSpace(record[0]),
		ItemName:          strings.TrimSpace(record[1]),
		Quantity:          qty,
		UnitOfMeasurement: strings.TrimSpace(record[3]),
		Rate:              rate,
	}, nil
}
