// Package excel persists the zone registry as a two-column xlsx workbook,
// the format the operations team already maintains by hand: a "Zone" column
// and a "Name" column on the first sheet.
package excel

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pulseforge/alarm-report-etl/internal/registry"
)

const sheet = "Sheet1"

// Store reads and rewrites the registry workbook at a fixed path. The whole
// table is read on Load and rewritten on every Save; there is no partial
// update.
type Store struct {
	path string
}

// NewStore creates a store for the workbook at path. The file does not have
// to exist yet; the first Save creates it.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads every row of the workbook. A missing file is an error the
// caller downgrades to an empty registry.
func (s *Store) Load() ([]registry.Entry, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open registry workbook: %w", err)
	}
	defer f.Close()

	// The operations team edits this file by hand; read whatever the
	// first sheet is called rather than assuming the default name.
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read registry sheet: %w", err)
	}

	var entries []registry.Entry
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		entry := entryFromRow(row)
		if entry.Zone == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Save rewrites the workbook with the given entries. The write goes to a
// temp file first and is renamed into place so a failed write never leaves
// a truncated registry behind.
func (s *Store) Save(entries []registry.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetCellValue(sheet, "A1", "Zone"); err != nil {
		return fmt.Errorf("write registry header: %w", err)
	}
	if err := f.SetCellValue(sheet, "B1", "Name"); err != nil {
		return fmt.Errorf("write registry header: %w", err)
	}
	for i, e := range entries {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.Zone); err != nil {
			return fmt.Errorf("write registry row %d: %w", row, err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Owner); err != nil {
			return fmt.Errorf("write registry row %d: %w", row, err)
		}
	}

	// SaveAs validates the extension, so the temp name has to keep the
	// xlsx suffix.
	tmp := s.path + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("save registry workbook: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace registry workbook: %w", err)
	}
	return nil
}

func entryFromRow(row []string) registry.Entry {
	var e registry.Entry
	if len(row) > 0 {
		e.Zone = strings.TrimSpace(row[0])
	}
	if len(row) > 1 {
		e.Owner = strings.TrimSpace(row[1])
	}
	return e
}
