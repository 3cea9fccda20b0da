// Package fs provides file-based export of search results.
package fs

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fwojciec/watchscout"
)

// CSVHeader is the header row of every export.
var CSVHeader = []string{watchscout.FieldName, watchscout.FieldPrice}

// Ensure CSVExporter implements watchscout.OfferExporter at compile time.
var _ watchscout.OfferExporter = (*CSVExporter)(nil)

// CSVExporter writes offer tables as CSV files.
// Rows are written to path.tmp and renamed into place once complete, so an
// interrupted export never leaves a truncated file at path.
type CSVExporter struct {
	path string
}

// NewCSVExporter creates a CSVExporter writing to path.
func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{path: path}
}

// Path returns the destination file.
func (e *CSVExporter) Path() string {
	return e.path
}

func (e *CSVExporter) tempPath() string {
	return e.path + ".tmp"
}

// ExportOffers writes the name and price of every row. Rows without a
// price get an empty price cell.
func (e *CSVExporter) ExportOffers(ctx context.Context, table *watchscout.OfferTable) error {
	if e.path == "" {
		return watchscout.Errorf(watchscout.EINVALID, "export path required")
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(e.tempPath())
	if err != nil {
		return err
	}

	if err := writeRows(ctx, f, table); err != nil {
		_ = f.Close()
		_ = os.Remove(e.tempPath())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(e.tempPath())
		return err
	}

	if err := os.Rename(e.tempPath(), e.path); err != nil {
		_ = os.Remove(e.tempPath())
		return fmt.Errorf("move export into place: %w", err)
	}
	return nil
}

func writeRows(ctx context.Context, f *os.File, table *watchscout.OfferTable) error {
	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		return err
	}

	if table != nil {
		for _, row := range table.Rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			var price string
			if p, ok := row.Price(); ok {
				price = strconv.FormatInt(p, 10)
			}
			if err := w.Write([]string{row.Name(), price}); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
