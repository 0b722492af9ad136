package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/config"
)

// healthCheck verifies the run dependencies before the schedule loop
// starts: the browser must launch, and the store must be reachable
// (credentials file for sheets, writable data dir for sqlite). The
// probes are independent, so they run concurrently.
func healthCheck(ctx context.Context, cfg config.Config) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		probeCtx, cancel := context.WithTimeout(gctx, 30*time.Second)
		defer cancel()
		b, err := browser.StartChrome(probeCtx, 10*time.Second)
		if err != nil {
			return fmt.Errorf("browser probe: %w (is Chrome installed?)", err)
		}
		return b.Close()
	})

	g.Go(func() error {
		if cfg.Store.Backend == "sheets" {
			if _, err := os.Stat(cfg.Store.CredentialsFile); err != nil {
				return fmt.Errorf("credentials file %s: %w", cfg.Store.CredentialsFile, err)
			}
			return nil
		}
		probe := filepath.Join(cfg.App.DataDir, ".write-probe")
		if err := os.WriteFile(probe, nil, 0o644); err != nil {
			return fmt.Errorf("data dir %s not writable: %w", cfg.App.DataDir, err)
		}
		return os.Remove(probe)
	})

	return g.Wait()
}
