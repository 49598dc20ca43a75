package flightlog

import (
	"errors"
	"fmt"
	"strings"

	"visastay/internal/app"
)

// Column names of the flight log export
const (
	ColumnDate          = "Date"
	ColumnAirline       = "Airline"
	ColumnFlight        = "Flight"
	ColumnFrom          = "From"
	ColumnTo            = "To"
	ColumnCanceled      = "Canceled"
	ColumnGateDeparture = "Gate Departure (Actual)"
	ColumnTakeOff       = "Take off (Actual)"
	ColumnLanding       = "Landing (Actual)"
	ColumnGateArrival   = "Gate Arrival (Actual)"
)

// RequiredColumns must all be present in the header row
var RequiredColumns = []string{
	ColumnDate, ColumnAirline, ColumnFlight, ColumnFrom, ColumnTo, ColumnCanceled,
	ColumnGateDeparture, ColumnTakeOff, ColumnLanding, ColumnGateArrival,
}

var ErrMissingColumn = errors.New("flight log is missing a required column")

// RowMapper maps rows of a flight log onto app.FlightLeg using the header row
type RowMapper struct {
	index map[string]int
}

// NewRowMapper validates the header row and records column positions
func NewRowMapper(header []Cell) (*RowMapper, error) {
	index := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.TrimPrefix(cell.String(), "\ufeff")
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, column := range RequiredColumns {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return &RowMapper{index: index}, nil
}

// MapRow converts one row. Short rows yield empty values for missing cells.
func (m *RowMapper) MapRow(row []Cell) app.FlightLeg {
	return app.FlightLeg{
		Date:          m.cell(row, ColumnDate).String(),
		Airline:       m.cell(row, ColumnAirline).String(),
		Flight:        m.cell(row, ColumnFlight).String(),
		From:          strings.ToUpper(m.cell(row, ColumnFrom).String()),
		To:            strings.ToUpper(m.cell(row, ColumnTo).String()),
		Canceled:      m.cell(row, ColumnCanceled).Bool(),
		GateDeparture: m.cell(row, ColumnGateDeparture).Time(),
		TakeOff:       m.cell(row, ColumnTakeOff).Time(),
		Landing:       m.cell(row, ColumnLanding).Time(),
		GateArrival:   m.cell(row, ColumnGateArrival).Time(),
	}
}

// MapRows maps the data rows following a header row.
// Blank rows are skipped.
func MapRows(rows [][]Cell) ([]app.FlightLeg, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	mapper, err := NewRowMapper(rows[0])
	if err != nil {
		return nil, err
	}

	legs := make([]app.FlightLeg, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		legs = append(legs, mapper.MapRow(row))
	}
	return legs, nil
}

func (m *RowMapper) cell(row []Cell, column string) Cell {
	i := m.index[column]
	if i >= len(row) {
		return Cell{}
	}
	return row[i]
}

func isBlankRow(row []Cell) bool {
	for _, cell := range row {
		if !cell.IsEmpty() {
			return false
		}
	}
	return true
}
