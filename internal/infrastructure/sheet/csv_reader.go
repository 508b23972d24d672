// Package sheet lee exportaciones CSV de la planilla de movimientos que se llenaba a mano
// para cargarlas al ledger.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encodings soportados para la exportación.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "iso-8859-1"
	EncodingWindows1252 = "windows-1252"
)

// Encabezados esperados; se comparan sin distinguir mayúsculas y en cualquier orden.
const (
	colDate        = "fecha"
	colCategory    = "categoría"
	colDescription = "descripción"
	colLot         = "lote"
	colQuantity    = "cantidad"
	colUnit        = "unidad"
	colMovement    = "movimiento"
	colUnitCost    = "costo unitario"
	colNotes       = "observaciones"
)

var requiredColumns = []string{colCategory, colDescription, colQuantity, colMovement}

// Row es una fila de la planilla, aún sin validar contra el dominio.
type Row struct {
	Line        int
	Date        *time.Time
	Category    string
	Description string
	Lot         string
	Quantity    decimal.Decimal
	Unit        string
	Movement    string
	UnitCost    decimal.Decimal
	Notes       string
}

// ErrMissingColumn indica que el encabezado no trae una columna obligatoria.
var ErrMissingColumn = errors.New("sheet: falta columna obligatoria")

// Decoder envuelve r según el encoding declarado de la exportación.
func Decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingLatin1, "latin1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case EncodingWindows1252, "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("sheet: encoding no soportado %q", encoding)
	}
}

// ReadRows lee el CSV completo. El separador se detecta entre ',' y ';' a partir del encabezado.
func ReadRows(r io.Reader, encoding string) ([]Row, error) {
	dec, err := Decoder(r, encoding)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("sheet: leer: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = detectComma(raw)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("sheet: encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}

	var rows []Row
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("sheet: línea %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		row := Row{
			Line:        line,
			Category:    get(colCategory),
			Description: get(colDescription),
			Lot:         get(colLot),
			Unit:        get(colUnit),
			Movement:    get(colMovement),
			Notes:       get(colNotes),
		}
		if row.Quantity, err = parseDecimal(get(colQuantity), cr.Comma); err != nil {
			return nil, fmt.Errorf("sheet: línea %d: cantidad: %w", line, err)
		}
		if row.UnitCost, err = parseDecimal(get(colUnitCost), cr.Comma); err != nil {
			return nil, fmt.Errorf("sheet: línea %d: costo unitario: %w", line, err)
		}
		if s := get(colDate); s != "" {
			d, err := parseDate(s)
			if err != nil {
				return nil, fmt.Errorf("sheet: línea %d: fecha: %w", line, err)
			}
			row.Date = &d
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func detectComma(raw []byte) rune {
	first := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		first = raw[:i]
	}
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// groupedThousands reconoce "1.234" o "12.345.678": puntos que solo agrupan miles.
var groupedThousands = regexp.MustCompile(`^[-+]?\d{1,3}(\.\d{3})+$`)

// parseDecimal acepta "12.5", "12,5", "1.234,5" y "1,234.5": el último separador es el decimal.
// En archivos separados por ';' (planilla en español) un punto seguido de grupos de tres dígitos
// y sin coma es separador de miles, así que "1.234" vale 1234. Vacío = 0.
func parseDecimal(s string, sep rune) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case sep == ';' && comma < 0 && groupedThousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	default:
		s = strings.ReplaceAll(s, ",", "")
	}
	return decimal.NewFromString(s)
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("formato no reconocido %q", s)
}
