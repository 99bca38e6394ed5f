// Package csvexport serializa filas ordenadas (columna, valor) a CSV compatible con hojas de cálculo.
package csvexport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"
)

// BOM marca de orden de bytes UTF-8; Excel la necesita para reconocer acentos.
const BOM = "\uFEFF"

// ContentType cabecera HTTP para las descargas.
const ContentType = "text/csv; charset=utf-8"

// ErrNoData no hay filas que exportar.
var ErrNoData = errors.New("csvexport: no hay datos para exportar")

// Field par columna/valor ya formateado.
type Field struct {
	Name  string
	Value string
}

// Row fila de exportación. El orden de los campos es el orden de las columnas.
type Row []Field

// Header nombres de columna de la fila.
func (r Row) Header() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Name
	}
	return out
}

// Values valores de la fila.
func (r Row) Values() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Value
	}
	return out
}

// Write escribe BOM, la cabecera tomada de la primera fila y todas las filas.
// Los valores con coma, comillas o salto de línea van entre comillas con las comillas internas duplicadas.
func Write(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	if _, err := io.WriteString(w, BOM); err != nil {
		return err
	}
	header := rows[0].Header()
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("csvexport: fila %d tiene %d columnas, se esperaban %d", i+1, len(row), len(header))
		}
		if err := cw.Write(row.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FileName nombre de descarga: <prefix>-YYYY-MM-DD.csv.
func FileName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%s.csv", prefix, t.Format("2006-01-02"))
}
