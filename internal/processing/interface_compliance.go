package processing

import (
	"visastay/internal/domain/stay"
	"visastay/internal/flightlog"
	"visastay/internal/remote"
	"visastay/internal/sheets"
	"visastay/internal/store/sqlite"
)

// Compile-time interface compliance checks
var (
	_ LegSourceInterface   = (*flightlog.CSVFile)(nil)
	_ LegSourceInterface   = (*sheets.LegSource)(nil)
	_ LegSourceInterface   = (*remote.SSHFetcher)(nil)
	_ LegSourceInterface   = (*sqlite.FlightLogStore)(nil)
	_ LegImporterInterface = (*sqlite.FlightLogStore)(nil)
	_ stay.Clock           = stay.SystemClock{}
	_ stay.Clock           = stay.FixedClock{}
)
