package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"visastay/internal/app"
	"visastay/internal/config"
	"visastay/internal/flightlog"
	"visastay/internal/remote"
	"visastay/internal/sheets"
	"visastay/internal/store/sqlite"

	"github.com/rs/zerolog/log"
)

// Options carries the credentials and limits needed by remote sources
type Options struct {
	CredentialsFile string
	SSHKeyPath      string
	SSHKnownHosts   string
	Limits          config.SourceLimits
}

// OptionsFromConfig builds source options from the environment configuration
func OptionsFromConfig(cfg *app.Config) Options {
	return Options{
		CredentialsFile: cfg.CredentialsFile,
		SSHKeyPath:      cfg.SSHKeyPath,
		SSHKnownHosts:   cfg.SSHKnownHosts,
		Limits:          config.DefaultSourceLimits,
	}
}

// Open selects a flight log source by the form of location:
//
//	sheets://<spreadsheetID>/<range>  Google Sheets
//	ssh://user@host:path              remote CSV over SSH
//	sqlite://<path>                   local flight log store
//	anything else                     local CSV file
func Open(ctx context.Context, location string, opts Options) (flightlog.Source, error) {
	switch {
	case strings.HasPrefix(location, sheets.Scheme):
		spreadsheetID, readRange, err := sheets.ParseLocation(location)
		if err != nil {
			return nil, err
		}
		client, err := sheets.NewClient(ctx, opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", flightlog.ErrSourceUnavailable, err)
		}
		log.Debug().Str("spreadsheet_id", spreadsheetID).Str("range", readRange).Msg("Using Google Sheets flight log")
		return withTimeout(sheets.NewLegSource(client, spreadsheetID, readRange), opts.Limits.Sheets.Timeout), nil

	case strings.HasPrefix(location, remote.Scheme):
		if _, err := remote.ParseLocation(location); err != nil {
			return nil, err
		}
		log.Debug().Str("location", location).Msg("Using remote flight log over SSH")
		return remote.NewSSHFetcher(location, opts.SSHKeyPath, opts.SSHKnownHosts, opts.Limits.SSH), nil

	case strings.HasPrefix(location, sqlite.Scheme):
		path := strings.TrimPrefix(location, sqlite.Scheme)
		if path == "" {
			return nil, fmt.Errorf("invalid sqlite location %q: missing database path", location)
		}
		log.Debug().Str("db", path).Msg("Using stored flight log")
		return withTimeout(&storeSource{path: path}, opts.Limits.SQLite.Timeout), nil

	default:
		log.Debug().Str("path", location).Msg("Using local CSV flight log")
		return flightlog.NewCSVFile(location), nil
	}
}

// storeSource opens the store for the duration of a single load
type storeSource struct {
	path string
}

func (s *storeSource) LoadLegs(ctx context.Context) ([]app.FlightLeg, error) {
	store, err := sqlite.Open(ctx, sqlite.Config{Path: s.path})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", flightlog.ErrSourceUnavailable, err)
	}
	defer store.Close()

	return store.LoadLegs(ctx)
}

type timeoutSource struct {
	source  flightlog.Source
	timeout time.Duration
}

func withTimeout(source flightlog.Source, timeout time.Duration) flightlog.Source {
	if timeout <= 0 {
		return source
	}
	return &timeoutSource{source: source, timeout: timeout}
}

func (s *timeoutSource) LoadLegs(ctx context.Context) ([]app.FlightLeg, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.source.LoadLegs(ctx)
}
