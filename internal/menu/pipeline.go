package menu

import (
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
)

// Extraction is the outcome of one pass over a page.
type Extraction struct {
	Codec   Codec
	Records []Record
}

// Run decodes raw once, locates the schedule rows and assembles them into
// records in source order. A page without a schedule table yields an empty
// slice.
func Run(raw []byte, contentType string) ([]Record, error) {
	ext, err := Extract(raw, contentType)
	if err != nil {
		return nil, err
	}
	return ext.Records, nil
}

// Extract is Run but also reports the codec override that was applied.
func Extract(raw []byte, contentType string) (Extraction, error) {
	codec := ResolveCodec(contentType, raw)

	doc, err := goquery.NewDocumentFromReader(newUTF8Reader(raw, contentType, codec))
	if err != nil {
		return Extraction{}, fmt.Errorf("parse page: %w", err)
	}

	rows := LocateRows(doc)
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Assemble(row))
	}

	slog.Debug("extracted meal schedule", "codec", codec, "content_type", contentType, "rows", len(records))
	return Extraction{Codec: codec, Records: records}, nil
}
