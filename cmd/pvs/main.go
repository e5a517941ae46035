// Command pvs is the Plato Visualisation System viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/plato/internal/adapters/driven/config/file"
	steerfile "github.com/custodia-labs/plato/internal/adapters/driven/steering/file"
	"github.com/custodia-labs/plato/internal/adapters/driven/steering/mailbox"
	"github.com/custodia-labs/plato/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/plato/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/plato/internal/adapters/driving/cli"
	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/core/ports/driving"
	"github.com/custodia-labs/plato/internal/core/services"
	"github.com/custodia-labs/plato/internal/logger"
	"github.com/custodia-labs/plato/internal/readers/rho"
	"github.com/custodia-labs/plato/internal/readers/xyz"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetBootstrap(bootstrap)
	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// bootstrap wires the adapters into the core services.
func bootstrap(configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	var (
		journal driven.SteeringJournal = memory.NewJournal()
		closers []func() error
	)
	if settings.Journal.Enabled {
		store, err := sqlite.NewStore(filepath.Join(configStore.Dir(), "data"))
		if err != nil {
			return nil, fmt.Errorf("opening journal: %w", err)
		}
		logger.Debug("journal at %s", store.Path())
		journal = store.JournalStore()
		closers = append(closers, store.Close)
	}

	return &cli.Services{
		Settings: settingsService,
		Scene:    services.NewSceneService(rho.NewReader(), xyz.NewReader()),
		Journal:  services.NewJournalService(journal),
		NewSteering: func(s domain.SteeringSettings) (driving.SteeringService, driven.SteeringSource, error) {
			source, err := newSteeringSource(s)
			if err != nil {
				return nil, nil, err
			}
			return services.NewSteeringService(source, journal, s.PollInterval), source, nil
		},
		Close: func() error {
			var firstErr error
			for _, c := range closers {
				if err := c(); err != nil && firstErr == nil {
					firstErr = err
				}
			}
			return firstErr
		},
	}, nil
}

func newSteeringSource(s domain.SteeringSettings) (driven.SteeringSource, error) {
	switch s.Source {
	case domain.SteeringSourceFile:
		if s.File == "" {
			return nil, fmt.Errorf("steering file not set: %w", domain.ErrInvalidInput)
		}
		return steerfile.NewSource(s.File), nil
	case domain.SteeringSourceMCP:
		return mailbox.New(), nil
	default:
		return nil, fmt.Errorf("steering source %q: %w", s.Source, domain.ErrInvalidInput)
	}
}
