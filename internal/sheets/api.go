package sheets

import (
	"context"
)

// SheetReader defines the Google Sheets operations used to load a flight log.
//
// Note on interface{} usage:
// The Google Sheets API (google.golang.org/api/sheets/v4) uses [][]interface{}
// for cell values. To keep interface{} at this boundary:
// - wrap values with flightlog.NewCell before reading them
// - never expose interface{} to the domain layer
type SheetReader interface {
	// ReadSheet reads values from a sheet range.
	ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)

	// SheetExists checks if a sheet with the given name exists
	SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error)
}

var _ SheetReader = (*Client)(nil)
