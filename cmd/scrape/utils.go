package main

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"dorm-menu-csv/internal/config"
	"dorm-menu-csv/internal/export"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// dormURL points at the food board for the week containing day.
func dormURL(base string, day time.Time) string {
	return fmt.Sprintf(
		"%s/Khostel/mall_main.php?viewform=B0001_foodboard_list&gyear=%04d&gmonth=%02d&gday=%02d",
		strings.TrimRight(base, "/"), day.Year(), int(day.Month()), day.Day(),
	)
}

// resolveDay parses a YYYY-MM-DD flag value, defaulting to today in loc.
func resolveDay(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().In(loc), nil
	}
	day, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", value)
	}
	return day, nil
}

// artifactName keeps the configured base name and swaps the extension for
// the output format.
func artifactName(csvName, format string) string {
	base := filepath.Base(csvName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "dorm_menu"
	}
	return base + "." + format
}

func objectKey(prefix, name string) string {
	return path.Join(prefix, name)
}

func renderArtifact(out DormOut, o config.Output) ([]byte, string, error) {
	var buf bytes.Buffer
	switch o.Format {
	case config.FormatJSON:
		if err := export.WriteJSON(&buf, out); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), contentTypeJSON, nil
	default:
		if err := export.WriteCSV(&buf, out.Menus, o.UTF8BOM); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), contentTypeCSV, nil
	}
}

func writeArtifact(p string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}
