package sheets

import (
	"context"
	"errors"
	"testing"

	"visastay/internal/flightlog"
)

// fakeSheetReader is a test double for the Google Sheets client
type fakeSheetReader struct {
	values      [][]interface{}
	readErr     error
	sheetExists bool
	existsErr   error

	// titles, when set, are matched exactly like the real spreadsheet
	titles []string

	readRanges   []string
	existsChecks []string
}

func (f *fakeSheetReader) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	f.readRanges = append(f.readRanges, range_)
	return f.values, f.readErr
}

func (f *fakeSheetReader) SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	f.existsChecks = append(f.existsChecks, sheetName)
	if f.titles != nil {
		for _, title := range f.titles {
			if title == sheetName {
				return true, f.existsErr
			}
		}
		return false, f.existsErr
	}
	return f.sheetExists, f.existsErr
}

func headerRow() []interface{} {
	row := make([]interface{}, len(flightlog.RequiredColumns))
	for i, column := range flightlog.RequiredColumns {
		row[i] = column
	}
	return row
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name          string
		location      string
		expectedID    string
		expectedRange string
		wantErr       bool
	}{
		{"id and range", "sheets://abc123/Flights!A:K", "abc123", "Flights!A:K", false},
		{"id only", "sheets://abc123", "abc123", DefaultRange, false},
		{"id with trailing slash", "sheets://abc123/", "abc123", DefaultRange, false},
		{"missing id", "sheets:///A:K", "", "", true},
		{"wrong scheme", "ssh://abc123/A:K", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, rng, err := ParseLocation(tt.location)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLocation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if id != tt.expectedID || rng != tt.expectedRange {
				t.Errorf("ParseLocation() = (%q, %q), expected (%q, %q)", id, rng, tt.expectedID, tt.expectedRange)
			}
		})
	}
}

func TestLegSourceLoadLegs(t *testing.T) {
	ctx := context.Background()

	t.Run("maps rows", func(t *testing.T) {
		// Columns follow RequiredColumns order: Date, Airline, Flight, From, To, Canceled,
		// Gate Departure, Take off, Landing, Gate Arrival
		reader := &fakeSheetReader{
			sheetExists: true,
			values: [][]interface{}{
				headerRow(),
				{"2025-01-01", "KE", 18.0, "LAX", "ICN", false, "", "", "", "2025-01-02T05:20"},
				{"2025-01-20", "KE", "17", "ICN", "LAX", "TRUE"},
			},
		}

		legs, err := NewLegSource(reader, "abc123", "Flights!A:K").LoadLegs(ctx)
		if err != nil {
			t.Fatalf("LoadLegs() error = %v", err)
		}

		if len(legs) != 2 {
			t.Fatalf("Expected 2 legs, got %d", len(legs))
		}
		if legs[0].Label() != "KE 18" {
			t.Errorf("Expected numeric flight cell to stringify, got %q", legs[0].Label())
		}
		if legs[0].GateArrival == nil {
			t.Error("Expected gate arrival to be parsed")
		}
		if !legs[1].Canceled {
			t.Error("Expected second leg to be canceled")
		}
		if len(reader.existsChecks) != 1 || reader.existsChecks[0] != "Flights" {
			t.Errorf("Expected sheet existence check for Flights, got %v", reader.existsChecks)
		}
	})

	t.Run("quoted sheet name", func(t *testing.T) {
		reader := &fakeSheetReader{
			titles: []string{"My Flights", "Bob's Log"},
			values: [][]interface{}{headerRow()},
		}

		if _, err := NewLegSource(reader, "abc123", "'My Flights'!A:K").LoadLegs(ctx); err != nil {
			t.Fatalf("LoadLegs() error = %v", err)
		}
		if _, err := NewLegSource(reader, "abc123", "'Bob''s Log'!A:K").LoadLegs(ctx); err != nil {
			t.Fatalf("LoadLegs() with escaped quote error = %v", err)
		}
		if reader.existsChecks[0] != "My Flights" || reader.existsChecks[1] != "Bob's Log" {
			t.Errorf("Expected unquoted titles, got %v", reader.existsChecks)
		}
		if reader.readRanges[0] != "'My Flights'!A:K" {
			t.Errorf("Range should be read as given, got %s", reader.readRanges[0])
		}
	})

	t.Run("quoted location end to end", func(t *testing.T) {
		id, rng, err := ParseLocation("sheets://abc/'My Flights'!A:K")
		if err != nil {
			t.Fatalf("ParseLocation() error = %v", err)
		}
		reader := &fakeSheetReader{titles: []string{"My Flights"}, values: [][]interface{}{headerRow()}}
		if _, err := NewLegSource(reader, id, rng).LoadLegs(ctx); err != nil {
			t.Errorf("LoadLegs() error = %v", err)
		}
	})

	t.Run("default range skips existence check", func(t *testing.T) {
		reader := &fakeSheetReader{values: [][]interface{}{headerRow()}}

		legs, err := NewLegSource(reader, "abc123", "").LoadLegs(ctx)
		if err != nil {
			t.Fatalf("LoadLegs() error = %v", err)
		}
		if len(legs) != 0 {
			t.Errorf("Expected no legs, got %d", len(legs))
		}
		if len(reader.existsChecks) != 0 {
			t.Errorf("Did not expect existence checks, got %v", reader.existsChecks)
		}
		if reader.readRanges[0] != DefaultRange {
			t.Errorf("Expected default range, got %s", reader.readRanges[0])
		}
	})

	t.Run("missing sheet", func(t *testing.T) {
		reader := &fakeSheetReader{sheetExists: false}

		_, err := NewLegSource(reader, "abc123", "Flights!A:K").LoadLegs(ctx)
		if !errors.Is(err, flightlog.ErrSourceUnavailable) {
			t.Errorf("Expected ErrSourceUnavailable, got %v", err)
		}
		if len(reader.readRanges) != 0 {
			t.Error("Should not read a sheet that does not exist")
		}
	})

	t.Run("read failure", func(t *testing.T) {
		reader := &fakeSheetReader{readErr: errors.New("permission denied")}

		_, err := NewLegSource(reader, "abc123", "A:K").LoadLegs(ctx)
		if !errors.Is(err, flightlog.ErrSourceUnavailable) {
			t.Errorf("Expected ErrSourceUnavailable, got %v", err)
		}
	})

	t.Run("missing column", func(t *testing.T) {
		reader := &fakeSheetReader{values: [][]interface{}{{"Date", "From", "To"}}}

		_, err := NewLegSource(reader, "abc123", "A:K").LoadLegs(ctx)
		if !errors.Is(err, flightlog.ErrMissingColumn) {
			t.Errorf("Expected ErrMissingColumn, got %v", err)
		}
	})
}

func TestRangeSheetName(t *testing.T) {
	tests := []struct {
		readRange    string
		expectedName string
		expectedOK   bool
	}{
		{"Flights!A:K", "Flights", true},
		{"'My Flights'!A:K", "My Flights", true},
		{"'Bob''s Log'!A1:K200", "Bob's Log", true},
		{"'Trips!2025'!A:K", "Trips!2025", true},
		{"A:Z", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.readRange, func(t *testing.T) {
			name, ok := rangeSheetName(tt.readRange)
			if name != tt.expectedName || ok != tt.expectedOK {
				t.Errorf("rangeSheetName(%q) = (%q, %v), expected (%q, %v)",
					tt.readRange, name, ok, tt.expectedName, tt.expectedOK)
			}
		})
	}
}
