package sheets

import (
	"context"
	"fmt"
	"strings"

	"visastay/internal/app"
	"visastay/internal/flightlog"

	"github.com/rs/zerolog/log"
)

// Scheme prefixes a Google Sheets flight log location: sheets://<spreadsheetID>/<range>
const Scheme = "sheets://"

// DefaultRange is read when a location names no range
const DefaultRange = "A:Z"

// LegSource loads a flight log stored in a Google Sheet. The first row of the
// range is the header row, laid out like the CSV export.
type LegSource struct {
	reader        SheetReader
	spreadsheetID string
	readRange     string
}

// NewLegSource creates a flight log source for a spreadsheet range
func NewLegSource(reader SheetReader, spreadsheetID, readRange string) *LegSource {
	if readRange == "" {
		readRange = DefaultRange
	}
	return &LegSource{
		reader:        reader,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}
}

// ParseLocation splits sheets://<spreadsheetID>/<range> into its parts
func ParseLocation(location string) (spreadsheetID, readRange string, err error) {
	if !strings.HasPrefix(location, Scheme) {
		return "", "", fmt.Errorf("invalid sheets location %q: expected %s<spreadsheetID>/<range>", location, Scheme)
	}

	rest := strings.TrimPrefix(location, Scheme)
	spreadsheetID, readRange, _ = strings.Cut(rest, "/")
	if spreadsheetID == "" {
		return "", "", fmt.Errorf("invalid sheets location %q: missing spreadsheet ID", location)
	}
	if readRange == "" {
		readRange = DefaultRange
	}

	return spreadsheetID, readRange, nil
}

// LoadLegs reads the range and maps each row into a flight leg
func (s *LegSource) LoadLegs(ctx context.Context) ([]app.FlightLeg, error) {
	if sheetName, ok := rangeSheetName(s.readRange); ok {
		exists, err := s.reader.SheetExists(ctx, s.spreadsheetID, sheetName)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", flightlog.ErrSourceUnavailable, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: sheet %q not found in spreadsheet %s", flightlog.ErrSourceUnavailable, sheetName, s.spreadsheetID)
		}
	}

	values, err := s.reader.ReadSheet(ctx, s.spreadsheetID, s.readRange)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", flightlog.ErrSourceUnavailable, err)
	}

	rows := make([][]flightlog.Cell, len(values))
	for i, row := range values {
		cells := make([]flightlog.Cell, len(row))
		for j, raw := range row {
			cells[j] = flightlog.NewCell(raw)
		}
		rows[i] = cells
	}

	legs, err := flightlog.MapRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to map sheet %s: %w", s.readRange, err)
	}

	log.Debug().
		Str("spreadsheet_id", s.spreadsheetID).
		Str("range", s.readRange).
		Int("legs", len(legs)).
		Msg("Loaded flight log from Google Sheets")

	return legs, nil
}

// rangeSheetName returns the sheet title of an A1 range such as
// 'My Flights'!A:K, with the quoting removed. ok is false when the range
// names no sheet.
func rangeSheetName(readRange string) (name string, ok bool) {
	idx := strings.LastIndex(readRange, "!")
	if idx < 0 {
		return "", false
	}
	name = readRange[:idx]
	if len(name) >= 2 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		name = strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name, true
}
