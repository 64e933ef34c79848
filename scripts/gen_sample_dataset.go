// +build ignore

// Generates a small synthetic WiFi point dataset in the layout of the
// official open-data export: ID, Programa, Latitud, Longitud, Alcaldía.
// Useful for local runs without downloading the real file.
//
// Usage:
//
//	go run scripts/gen_sample_dataset.go -out data/sample-wifi-points.xlsx -rows 500
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var alcaldias = []string{
	"Cuauhtémoc", "Coyoacán", "Tlalpan", "Gustavo A. Madero",
	"Iztapalapa", "Benito Juárez", "Miguel Hidalgo", "Álvaro Obregón",
	"Xochimilco", "Venustiano Carranza",
}

var programas = []string{"C5", "PILARES", "Metro CDMX", "Ecobici"}

func main() {
	out := flag.String("out", "data/sample-wifi-points.xlsx", "output file (.xlsx or .csv)")
	rows := flag.Int("rows", 500, "number of points to generate")
	seed := flag.Int64("seed", 42, "PRNG seed, fixed so runs are reproducible")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	records := [][]string{{"ID", "Programa", "Latitud", "Longitud", "Alcaldía"}}
	for i := 0; i < *rows; i++ {
		lat := 19.05 + rng.Float64()*0.55
		lon := -99.35 + rng.Float64()*0.45
		records = append(records, []string{
			strconv.Itoa(i + 1),
			programas[rng.Intn(len(programas))],
			strconv.FormatFloat(lat, 'f', 6, 64),
			strconv.FormatFloat(lon, 'f', 6, 64),
			alcaldias[rng.Intn(len(alcaldias))],
		})
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create output dir: %v", err)
		}
	}

	var err error
	switch strings.ToLower(filepath.Ext(*out)) {
	case ".csv":
		err = writeCSV(*out, records)
	case ".xlsx":
		err = writeXLSX(*out, records)
	default:
		log.Fatalf("Unsupported extension %q, use .xlsx or .csv", filepath.Ext(*out))
	}
	if err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Wrote %d points to %s\n", *rows, *out)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func writeXLSX(path string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, record := range records {
		row := make([]interface{}, len(record))
		for j, cell := range record {
			row[j] = cell
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
