package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"visastay/internal/app"
	"visastay/internal/flightlog"

	"github.com/rs/zerolog/log"
)

// ImportLegs upserts legs keyed by date, airline, flight and route.
// A re-imported leg replaces the stored cancellation flag and timestamps.
func (s *FlightLogStore) ImportLegs(ctx context.Context, legs []app.FlightLeg) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO flight_legs (
  flight_date, airline, flight, from_code, to_code, canceled,
  gate_departure, take_off, landing, gate_arrival, imported_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (flight_date, airline, flight, from_code, to_code) DO UPDATE SET
  canceled = excluded.canceled,
  gate_departure = excluded.gate_departure,
  take_off = excluded.take_off,
  landing = excluded.landing,
  gate_arrival = excluded.gate_arrival,
  imported_at_ms = excluded.imported_at_ms;`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().UnixMilli()
	for _, leg := range legs {
		if _, err := stmt.ExecContext(ctx,
			leg.Date, leg.Airline, leg.Flight, leg.From, leg.To, leg.Canceled,
			formatTime(leg.GateDeparture), formatTime(leg.TakeOff),
			formatTime(leg.Landing), formatTime(leg.GateArrival), now,
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("upsert leg %s %s: %w", leg.Date, leg.Label(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	log.Info().
		Str("db", s.path).
		Int("legs", len(legs)).
		Msg("Imported flight legs")

	return len(legs), nil
}

// LoadLegs returns every stored leg in insertion order
func (s *FlightLogStore) LoadLegs(ctx context.Context) ([]app.FlightLeg, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT flight_date, airline, flight, from_code, to_code, canceled,
       gate_departure, take_off, landing, gate_arrival
FROM flight_legs
ORDER BY rowid;`)
	if err != nil {
		return nil, fmt.Errorf("%w: query flight_legs: %w", flightlog.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var legs []app.FlightLeg
	for rows.Next() {
		var (
			leg                                     app.FlightLeg
			gateDeparture, takeOff, landing, arrive sql.NullString
		)
		if err := rows.Scan(
			&leg.Date, &leg.Airline, &leg.Flight, &leg.From, &leg.To, &leg.Canceled,
			&gateDeparture, &takeOff, &landing, &arrive,
		); err != nil {
			return nil, fmt.Errorf("scan flight leg: %w", err)
		}
		leg.GateDeparture = parseTime(gateDeparture)
		leg.TakeOff = parseTime(takeOff)
		leg.Landing = parseTime(landing)
		leg.GateArrival = parseTime(arrive)
		legs = append(legs, leg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flight legs: %w", err)
	}

	return legs, nil
}

func formatTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}

func parseTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		log.Warn().Str("value", s.String).Err(err).Msg("Ignoring unreadable stored timestamp")
		return nil
	}
	return &t
}
