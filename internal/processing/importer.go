package processing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Importer copies a flight log from a source into the local store
type Importer struct {
	source LegSourceInterface
	store  LegImporterInterface
}

// NewImporter creates a new importer
func NewImporter(source LegSourceInterface, store LegImporterInterface) *Importer {
	return &Importer{
		source: source,
		store:  store,
	}
}

// Import loads every leg from the source and upserts it into the store
func (i *Importer) Import(ctx context.Context) (int, error) {
	legs, err := i.source.LoadLegs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load flight log: %w", err)
	}

	n, err := i.store.ImportLegs(ctx, legs)
	if err != nil {
		return 0, fmt.Errorf("failed to store flight log: %w", err)
	}

	log.Debug().Int("legs", n).Msg("Flight log import finished")
	return n, nil
}
