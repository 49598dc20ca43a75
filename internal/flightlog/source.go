package flightlog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"visastay/internal/app"

	"github.com/rs/zerolog/log"
)

var ErrSourceUnavailable = errors.New("flight log source unavailable")

// Source loads the raw legs of a flight log in a single bounded read
type Source interface {
	LoadLegs(ctx context.Context) ([]app.FlightLeg, error)
}

// CSVFile reads a flight log export from a local file
type CSVFile struct {
	Path string
}

// NewCSVFile creates a source for a local CSV export
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{Path: path}
}

// LoadLegs reads and maps every row of the file
func (f *CSVFile) LoadLegs(ctx context.Context) ([]app.FlightLeg, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer file.Close()

	legs, err := ParseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}

	log.Debug().
		Str("path", f.Path).
		Int("legs", len(legs)).
		Msg("Loaded flight log from CSV file")

	return legs, nil
}

// ParseCSV parses a CSV flight log with a header row
func ParseCSV(r io.Reader) ([]app.FlightLeg, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]Cell
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		rows = append(rows, StringCells(record))
	}

	return MapRows(rows)
}
