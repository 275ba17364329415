// Package export serializes meal records into the artifacts uploaded to
// object storage.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"dorm-menu-csv/internal/menu"
)

// Header is the fixed column order of the CSV artifact.
var Header = []string{"date", "breakfast", "lunch", "dinner"}

// utf8BOM lets spreadsheet programs detect the encoding.
const utf8BOM = "\ufeff"

// WriteCSV writes the header and one CRLF-terminated line per record, in
// the order given.
func WriteCSV(w io.Writer, records []menu.Record, bom bool) error {
	if bom {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return fmt.Errorf("write bom: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(r.Fields()); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes v as indented JSON. Menu text keeps its literal "&".
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
