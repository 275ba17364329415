package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dorm-menu-csv/internal/config"
	"dorm-menu-csv/internal/menu"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ---------- Scraper ----------

// The food board for the requested day is a "table.boxstyle02"; each row is
// one day with breakfast, lunch and dinner cells.

func extractPage(ctx context.Context, pg page, src config.Source, day time.Time) (DormOut, error) {
	_, span := tracer().Start(ctx, "extractPage")
	defer span.End()

	ext, err := menu.Extract(pg.Body, pg.ContentType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract failed")
		return DormOut{}, fmt.Errorf("extract %s: %w", pg.URL, err)
	}

	span.SetAttributes(
		attribute.String("codec", string(ext.Codec)),
		attribute.Int("records", len(ext.Records)),
	)
	if len(ext.Records) == 0 {
		// the site publishes nothing on some holidays
		slog.WarnContext(ctx, "schedule table has no rows", "source", pg.URL)
	}

	return DormOut{
		Menus: ext.Records,
		Meta: DormMeta{
			Date:        day.Format(time.DateOnly),
			Timezone:    src.Timezone,
			Source:      pg.URL,
			Encoding:    string(ext.Codec),
			LastUpdated: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
