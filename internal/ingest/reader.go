// Package ingest extracts raw alarm rows from exported report workbooks and
// defines the boundary to the external acquisition collaborator.
package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pulseforge/alarm-report-etl/internal/domain"
)

// HeaderRowOffset is the number of preamble rows the portal writes above the
// column header in every exported report.
const HeaderRowOffset = 2

// Column headers the reader requires. The portal pads some headers with
// trailing spaces ("Site Alias "), so matching trims first.
const (
	colSiteAlias = "Site Alias"
	colZone      = "Zone"
	colStartTime = "Start Time"
	colEndTime   = "End Time"
)

// ReadReport extracts the raw rows from one exported workbook. The first
// sheet is read, the preamble is skipped, and the required columns are
// located by header name; any extra columns are ignored. Rows past the
// header that are entirely empty are dropped.
func ReadReport(r io.Reader) ([]domain.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open report workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("report workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read report sheet %q: %w", sheet, err)
	}
	if len(rows) <= HeaderRowOffset {
		return nil, fmt.Errorf("report sheet %q has no header row", sheet)
	}

	cols, err := locateColumns(rows[HeaderRowOffset])
	if err != nil {
		return nil, err
	}

	var out []domain.RawRow
	for _, row := range rows[HeaderRowOffset+1:] {
		raw := domain.RawRow{
			SiteAlias: cellAt(row, cols.site),
			Zone:      cellAt(row, cols.zone),
			StartTime: cellAt(row, cols.start),
			EndTime:   cellAt(row, cols.end),
		}
		if raw.SiteAlias == "" && raw.Zone == "" && raw.StartTime == "" && raw.EndTime == "" {
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

type columnIndex struct {
	site, zone, start, end int
}

func locateColumns(header []string) (columnIndex, error) {
	idx := columnIndex{site: -1, zone: -1, start: -1, end: -1}
	for i, cell := range header {
		switch strings.TrimSpace(cell) {
		case colSiteAlias:
			idx.site = i
		case colZone:
			idx.zone = i
		case colStartTime:
			idx.start = i
		case colEndTime:
			idx.end = i
		}
	}

	var missing []string
	for _, c := range []struct {
		name string
		pos  int
	}{
		{colSiteAlias, idx.site},
		{colZone, idx.zone},
		{colStartTime, idx.start},
		{colEndTime, idx.end},
	} {
		if c.pos < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("report header missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
