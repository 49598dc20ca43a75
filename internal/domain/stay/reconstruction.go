package stay

import "cloud.google.com/go/civil"

// Reconstruction is the result of pairing crossings into stays
type Reconstruction struct {
	Stays []Stay

	// OpenEntry is an entry with no later exit: the traveler may still be in
	// the country. It is not part of Stays.
	OpenEntry *TravelEvent

	// DiscardedEntries were superseded by a later entry before any exit
	DiscardedEntries []*TravelEvent

	// OrphanExits had no pending entry to pair with
	OrphanExits []*TravelEvent
}

// ReconstructStays pairs each exit with the most recent unmatched entry.
// Events must be in chronological order (see ExtractEvents).
//
// Pure function: deterministic, no state carried between calls.
func ReconstructStays(events []TravelEvent) Reconstruction {
	var result Reconstruction
	var pendingEntry *TravelEvent

	for i := range events {
		event := &events[i]

		switch event.Direction {
		case DirectionEntry:
			if pendingEntry != nil {
				result.DiscardedEntries = append(result.DiscardedEntries, pendingEntry)
			}
			pendingEntry = event
		case DirectionExit:
			if pendingEntry == nil {
				result.OrphanExits = append(result.OrphanExits, event)
				continue
			}
			result.Stays = append(result.Stays, Stay{
				Entry:     pendingEntry,
				Exit:      event,
				EntryDate: pendingEntry.Date(),
				ExitDate:  event.Date(),
			})
			pendingEntry = nil
		}
	}

	result.OpenEntry = pendingEntry
	return result
}

// OpenStay builds a stay from a dangling entry that runs through asOf
func OpenStay(entry *TravelEvent, asOf civil.Date) Stay {
	return Stay{
		Entry:     entry,
		EntryDate: entry.Date(),
		ExitDate:  asOf,
		Open:      true,
	}
}
