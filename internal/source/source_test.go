package source

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"visastay/internal/app"
	"visastay/internal/config"
	"visastay/internal/flightlog"
	"visastay/internal/remote"
	"visastay/internal/store/sqlite"
)

func testOptions() Options {
	return Options{Limits: config.DefaultSourceLimits}
}

func TestOpenSelectsImplementation(t *testing.T) {
	ctx := context.Background()

	t.Run("local csv", func(t *testing.T) {
		src, err := Open(ctx, "flights.csv", testOptions())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if _, ok := src.(*flightlog.CSVFile); !ok {
			t.Errorf("Expected *flightlog.CSVFile, got %T", src)
		}
	})

	t.Run("ssh", func(t *testing.T) {
		src, err := Open(ctx, "ssh://alice@example.com:/data/flights.csv", testOptions())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if _, ok := src.(*remote.SSHFetcher); !ok {
			t.Errorf("Expected *remote.SSHFetcher, got %T", src)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		src, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "log.db"), testOptions())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if _, ok := src.(*timeoutSource); !ok {
			t.Errorf("Expected store source wrapped with a timeout, got %T", src)
		}
	})
}

func TestOpenRejectsMalformedLocations(t *testing.T) {
	ctx := context.Background()
	locations := []string{
		"ssh://example.com:/data/flights.csv",
		"sheets:///A:K",
		"sqlite://",
	}

	for _, location := range locations {
		if _, err := Open(ctx, location, testOptions()); err == nil {
			t.Errorf("Open(%q) expected error", location)
		}
	}
}

func TestOpenMissingCSV(t *testing.T) {
	src, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), testOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	_, err = src.LoadLegs(context.Background())
	if !errors.Is(err, flightlog.ErrSourceUnavailable) {
		t.Errorf("Expected ErrSourceUnavailable, got %v", err)
	}
}

func TestStoreSourceLoadsImportedLegs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "log.db")

	store, err := sqlite.Open(ctx, sqlite.Config{Path: path})
	if err != nil {
		t.Fatalf("sqlite.Open() error = %v", err)
	}
	legs := []app.FlightLeg{{Date: "2025-01-01", Airline: "KE", Flight: "18", From: "LAX", To: "ICN"}}
	if _, err := store.ImportLegs(ctx, legs); err != nil {
		t.Fatalf("ImportLegs() error = %v", err)
	}
	store.Close()

	src, err := Open(ctx, "sqlite://"+path, testOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	loaded, err := src.LoadLegs(ctx)
	if err != nil {
		t.Fatalf("LoadLegs() error = %v", err)
	}
	if len(loaded) != 1 || loaded[0].To != "ICN" {
		t.Errorf("Unexpected legs %+v", loaded)
	}
}

type deadlineSource struct {
	hadDeadline bool
}

func (d *deadlineSource) LoadLegs(ctx context.Context) ([]app.FlightLeg, error) {
	_, d.hadDeadline = ctx.Deadline()
	return nil, nil
}

func TestWithTimeout(t *testing.T) {
	inner := &deadlineSource{}
	if _, err := withTimeout(inner, time.Second).LoadLegs(context.Background()); err != nil {
		t.Fatalf("LoadLegs() error = %v", err)
	}
	if !inner.hadDeadline {
		t.Error("Expected a deadline on the wrapped context")
	}

	if withTimeout(inner, 0) != flightlog.Source(inner) {
		t.Error("Zero timeout should return the source unchanged")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &app.Config{CredentialsFile: "creds.json", SSHKeyPath: "/tmp/key", SSHKnownHosts: "/tmp/known"}
	opts := OptionsFromConfig(cfg)
	if opts.CredentialsFile != "creds.json" || opts.SSHKeyPath != "/tmp/key" || opts.SSHKnownHosts != "/tmp/known" {
		t.Errorf("Unexpected options %+v", opts)
	}
	if opts.Limits != config.DefaultSourceLimits {
		t.Errorf("Expected default limits, got %+v", opts.Limits)
	}
}
