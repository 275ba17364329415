package main

import (
	"io"
	"os"

	"dorm-menu-csv/internal/export"
	"dorm-menu-csv/internal/menu"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
)

func renderRecords(w io.Writer, records []menu.Record) string {
	tw := table.NewWriter()
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, len(export.Header))
	for i, h := range export.Header {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, r := range records {
		fields := r.Fields()
		row := make(table.Row, len(fields))
		for i, f := range fields {
			row[i] = f
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
