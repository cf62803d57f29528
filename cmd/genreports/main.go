// Command genreports writes sample motion and vibration report workbooks,
// plus a zone owner workbook, shaped exactly like the portal exports. Useful
// for local runs and manual testing of the upload flow.
//
// Usage:
//
//	go run ./cmd/genreports -out data/sample -date 2024-04-26
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pulseforge/alarm-report-etl/internal/registry"
	registryexcel "github.com/pulseforge/alarm-report-etl/internal/registry/excel"
)

var zones = []string{"Sylhet", "Gazipur", "Shariatpur", "Narayanganj", "Faridpur", "Mymensingh", "Khulna", "Barisal"}

var owners = map[string]string{
	"Sylhet":  "Karim",
	"Gazipur": "Rahim",
	"Khulna":  "Jamal",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "data/sample", "output directory for generated workbooks")
	dateStr := flag.String("date", "2024-04-26", "report date (YYYY-MM-DD)")
	rows := flag.Int("rows", 120, "approximate rows per report")
	seed := flag.Int64("seed", 1, "random seed for reproducible output")
	flag.Parse()

	day, err := time.ParseInLocation("2006-01-02", *dateStr, time.Local)
	if err != nil {
		return fmt.Errorf("parse -date: %w", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))

	for _, kind := range []string{"motion", "vibration"} {
		path := filepath.Join(*outDir, fmt.Sprintf("%s_report_%s.xlsx", kind, day.Format("060102")))
		if err := writeReport(path, kind, day, *rows, rng); err != nil {
			return err
		}
		fmt.Println("wrote", path)
	}

	regPath := filepath.Join(*outDir, "zone_owners.xlsx")
	if err := writeRegistry(regPath); err != nil {
		return err
	}
	fmt.Println("wrote", regPath)
	return nil
}

func writeReport(path, kind string, day time.Time, rows int, rng *rand.Rand) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	// The portal writes a two-row preamble before the header row.
	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("%s Alarm Report", kind)); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A2", "Generated "+day.Format("2006-01-02")); err != nil {
		return err
	}

	header := []string{"Serial", "Site Alias ", "Zone", "Start Time", "End Time"}
	for i, cell := range header {
		axis, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, axis, cell); err != nil {
			return err
		}
	}

	for r := 0; r < rows; r++ {
		zone := zones[rng.Intn(len(zones))]
		site := fmt.Sprintf("%s%02d", zone[:1], rng.Intn(25))
		start := day.Add(time.Duration(rng.Intn(24*60)) * time.Minute)
		end := start.Add(time.Duration(1+rng.Intn(30)) * time.Minute)

		values := []any{r + 1, site, zone, start.Format("2006-01-02 15:04:05"), end.Format("2006-01-02 15:04:05")}
		// Sprinkle in the malformed timestamps real exports contain.
		if rng.Intn(20) == 0 {
			values[3] = "--"
		}
		for c, v := range values {
			axis, err := excelize.CoordinatesToCellName(c+1, 4+r)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, axis, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeRegistry(path string) error {
	var entries []registry.Entry
	for _, zone := range zones {
		if owner, ok := owners[zone]; ok {
			entries = append(entries, registry.Entry{Zone: zone, Owner: owner})
		}
	}
	if err := registryexcel.NewStore(path).Save(entries); err != nil {
		return fmt.Errorf("save registry workbook: %w", err)
	}
	return nil
}
