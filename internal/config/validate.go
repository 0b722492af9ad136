package config

import (
	"fmt"
	"strings"
	"time"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims and dedups the term lists and checks the
// fields a run actually depends on. Warnings are logged at startup;
// errors stop the daemon.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Search.Terms = trimList(out.Search.Terms)
	out.Filters.ExcludeTerms = trimList(out.Filters.ExcludeTerms)
	out.Filters.JuniorTerms = trimList(out.Filters.JuniorTerms)
	out.Filters.SeniorTerms = trimList(out.Filters.SeniorTerms)

	// ---- Validation rules ----

	for _, s := range out.App.ScheduleTimes {
		if _, err := time.Parse("15:04", s); err != nil {
			res.addErr("app.schedule_times entry %q is not HH:MM", s)
		}
	}
	if len(out.App.ScheduleTimes) == 0 {
		res.addErr("app.schedule_times must list at least one HH:MM time")
	}

	switch out.Store.Backend {
	case "sqlite":
	case "sheets":
		if strings.TrimSpace(out.Store.SheetKey) == "" {
			res.addErr("store.sheet_key is required when store.backend=sheets")
		}
		if strings.TrimSpace(out.Store.CredentialsFile) == "" {
			res.addErr("store.credentials_file is required when store.backend=sheets")
		}
	default:
		res.addErr("store.backend must be sqlite or sheets, got %q", out.Store.Backend)
	}

	if !out.Sources.LinkedIn.Enabled && !out.Sources.Glassdoor.Enabled && !out.Sources.Xing.Enabled {
		res.addErr("no sources enabled: enable linkedin, glassdoor, or xing")
	}

	if len(out.Search.Terms) == 0 {
		res.addErr("search.terms is empty")
	}
	if out.Search.TermsPerRun < 0 {
		res.addErr("search.terms_per_run must be >= 0")
	}
	if out.Search.TermsPerRun > len(out.Search.Terms) && len(out.Search.Terms) > 0 {
		res.addWarn("search.terms_per_run (%d) exceeds the term catalog (%d)", out.Search.TermsPerRun, len(out.Search.Terms))
	}
	if out.Search.PauseSeconds < 1 {
		res.addWarn("search.pause_seconds is very low (%d); sites may rate-limit or block.", out.Search.PauseSeconds)
	}
	if out.Search.LoadTimeoutSeconds <= 0 {
		res.addErr("search.load_timeout_seconds must be > 0")
	}
	if out.Search.MaxCardsPerPage <= 0 {
		res.addErr("search.max_cards_per_page must be > 0")
	}

	if len(out.Filters.JuniorTerms) == 0 {
		res.addWarn("filters.junior_terms is empty; only the senior-term fallback will admit titles.")
	}

	return out, res
}
