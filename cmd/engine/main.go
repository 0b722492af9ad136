package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"jobscout-engine/internal/browser"
	"jobscout-engine/internal/classify"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/pipeline"
	"jobscout-engine/internal/scheduler"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/glassdoor"
	"jobscout-engine/internal/scrape/linkedin"
	scrapeutil "jobscout-engine/internal/scrape/util"
	"jobscout-engine/internal/scrape/xing"
	"jobscout-engine/internal/store"
)

func main() {
	_ = godotenv.Load()

	dataDir := os.Getenv("JOBSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	cfgPath, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
	if err != nil {
		log.Fatalf("[engine] config bootstrap failed: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[engine] config load failed (%s): %v", cfgPath, err)
	}
	cfg.App.DataDir = dataDir

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		log.Fatalf("[config] invalid: %s", strings.Join(res.Errors, "; "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := healthCheck(ctx, cfg); err != nil {
		log.Fatalf("[health] %v", err)
	}
	log.Printf("[health] ok")

	runner, cleanup, err := buildRunner(ctx, cfg)
	if err != nil {
		log.Fatalf("[engine] %v", err)
	}
	defer cleanup()

	if cfg.App.RunOnStart {
		runner.RunOnce(ctx)
	}

	log.Printf("[engine] scheduled daily at %s", strings.Join(cfg.App.ScheduleTimes, ", "))
	err = scheduler.Daily(ctx, cfg.App.ScheduleTimes, "engine", runner.RunOnce)
	if err != nil && ctx.Err() == nil {
		log.Fatalf("[engine] scheduler: %v", err)
	}
	log.Printf("[engine] shutting down")
}

func buildRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, func(), error) {
	session, err := openSession(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	cleanup := func() {
		if err := session.Close(); err != nil {
			log.Printf("[store] close: %v", err)
		}
	}

	cls := classify.New(
		cfg.Filters.ExcludeTerms,
		cfg.Filters.JuniorTerms,
		cfg.Filters.SeniorTerms,
		languageGroups(cfg),
	)
	// one request per pause interval, per host
	lim := scrapeutil.NewHostLimiter(1.0/float64(cfg.Search.PauseSeconds), 1)

	var sources []scrape.Source
	if cfg.Sources.LinkedIn.Enabled {
		sources = append(sources, linkedin.New(linkedin.Config{
			Terms:    cfg.Search.Terms,
			MaxTerms: cfg.Search.TermsPerRun,
			MaxCards: cfg.Search.MaxCardsPerPage,
			Location: cfg.Sources.LinkedIn.Location,
		}, cls, lim))
	}
	if cfg.Sources.Glassdoor.Enabled {
		sources = append(sources, glassdoor.New(glassdoor.Config{
			Terms:    cfg.Search.Terms,
			MaxTerms: cfg.Search.TermsPerRun,
			MaxCards: cfg.Search.MaxCardsPerPage,
		}, cls, lim))
	}
	if cfg.Sources.Xing.Enabled {
		sources = append(sources, xing.New(xing.Config{
			Terms:    cfg.Search.Terms,
			MaxTerms: cfg.Search.TermsPerRun,
			MaxCards: cfg.Search.MaxCardsPerPage,
			Location: cfg.Sources.Xing.Location,
		}, cls, lim))
	}

	loadTimeout := time.Duration(cfg.Search.LoadTimeoutSeconds) * time.Second
	runner := &pipeline.Runner{
		NewBrowser: func(ctx context.Context) (browser.Browser, error) {
			return browser.StartChrome(ctx, loadTimeout)
		},
		Ledger:  store.NewLedger(session, cfg.Store.Table),
		Sources: sources,
		Lock:    flock.New(filepath.Join(cfg.App.DataDir, "run.lock")),
	}
	return runner, cleanup, nil
}

func openSession(ctx context.Context, cfg config.Config) (store.Session, error) {
	switch cfg.Store.Backend {
	case "sheets":
		return store.DialSheets(ctx, cfg.Store.CredentialsFile, cfg.Store.SheetKey)
	default:
		return store.OpenSQLite(filepath.Join(cfg.App.DataDir, "postings.db"))
	}
}

func languageGroups(cfg config.Config) []classify.LanguageGroup {
	out := make([]classify.LanguageGroup, 0, len(cfg.Languages))
	for _, g := range cfg.Languages {
		out = append(out, classify.LanguageGroup{Tag: g.Tag, Terms: g.Terms})
	}
	return out
}
