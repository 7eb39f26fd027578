// Package ledger implements the LedgerRepository on top of a flat
// spreadsheet file. The ledger is the only state that survives between
// runs: a single "id" column listing every publication that has already
// been processed and notified.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pubwatch/internal/repository"
)

const (
	sheetName    = "Sheet1"
	headerCell   = "A1"
	headerColumn = "id"
)

type ExcelLedger struct {
	path string
}

// NewExcelLedger creates a ledger backed by the spreadsheet file at path.
// The file does not need to exist yet; a missing file loads as an empty
// ledger and is created on the first Save.
func NewExcelLedger(path string) repository.LedgerRepository {
	return &ExcelLedger{path: path}
}

// Load reads every id from the ledger spreadsheet.
//
// A missing file is treated as "no prior publications known" so that
// the very first run does not fail. Rows holding values that cannot be
// coerced to an integer are skipped with a warning; the store has no
// way to repair them and a bad row must not block the run.
func (l *ExcelLedger) Load(ctx context.Context) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("ledger file missing, starting with empty ledger",
				slog.String("path", l.path))
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger %s: %w", l.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close ledger file", slog.Any("error", cerr))
		}
	}()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read ledger rows: %w", err)
	}

	ids := make([]int64, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if i == 0 && strings.EqualFold(cell, headerColumn) {
			continue
		}

		id, ok := coerceID(cell)
		if !ok {
			slog.Warn("skipping non-numeric ledger row",
				slog.Int("row", i+1),
				slog.String("value", cell))
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// Save overwrites the ledger spreadsheet with the given ids.
// The new content is written to a temporary file first and renamed into
// place so a crash mid-write never leaves a truncated ledger behind.
func (l *ExcelLedger) Save(ctx context.Context, ids []int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close ledger file", slog.Any("error", cerr))
		}
	}()

	if err := f.SetCellValue(sheetName, headerCell, headerColumn); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	for i, id := range ids {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("ledger cell name for row %d: %w", i+2, err)
		}
		if err := f.SetCellValue(sheetName, cell, id); err != nil {
			return fmt.Errorf("write ledger row %d: %w", i+2, err)
		}
	}

	tmp := l.path + ".tmp"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("save ledger %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("replace ledger %s: %w", l.path, err)
	}

	return nil
}

// coerceID converts a spreadsheet cell to an int64 id. Spreadsheet
// round-trips can turn integer ids into strings or floats ("12345",
// "12345.0"); both shapes coerce to the same numeric id so a reloaded
// ledger never produces false "new" detections.
func coerceID(cell string) (int64, bool) {
	if id, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return id, true
	}
	fv, err := strconv.ParseFloat(cell, 64)
	if err != nil || fv != float64(int64(fv)) {
		return 0, false
	}
	return int64(fv), true
}
