package processing

import (
	"context"

	"visastay/internal/app"
)

// LegSourceInterface defines the flight log methods used by StayAnalyzer
type LegSourceInterface interface {
	LoadLegs(ctx context.Context) ([]app.FlightLeg, error)
}

// LegImporterInterface defines the store methods used by Importer
type LegImporterInterface interface {
	ImportLegs(ctx context.Context, legs []app.FlightLeg) (int, error)
}
