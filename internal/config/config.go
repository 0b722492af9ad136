package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Location string `yaml:"location,omitempty"`
}

type LanguageGroup struct {
	Tag   string   `yaml:"tag"`
	Terms []string `yaml:"terms"`
}

type Config struct {
	App struct {
		DataDir       string   `yaml:"data_dir"`
		RunOnStart    bool     `yaml:"run_on_start"`
		ScheduleTimes []string `yaml:"schedule_times"`
	} `yaml:"app"`

	Store struct {
		Backend         string `yaml:"backend"` // sqlite | sheets
		Table           string `yaml:"table"`
		SheetKey        string `yaml:"sheet_key"`
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"store"`

	Search struct {
		Terms              []string `yaml:"terms"`
		TermsPerRun        int      `yaml:"terms_per_run"`
		MaxCardsPerPage    int      `yaml:"max_cards_per_page"`
		PauseSeconds       int      `yaml:"pause_seconds"`
		LoadTimeoutSeconds int      `yaml:"load_timeout_seconds"`
	} `yaml:"search"`

	Filters struct {
		ExcludeTerms []string `yaml:"exclude_terms"`
		JuniorTerms  []string `yaml:"junior_terms"`
		SeniorTerms  []string `yaml:"senior_terms"`
	} `yaml:"filters"`

	Languages []LanguageGroup `yaml:"languages"`

	Sources struct {
		LinkedIn  SourceConfig `yaml:"linkedin"`
		Glassdoor SourceConfig `yaml:"glassdoor"`
		Xing      SourceConfig `yaml:"xing"`
	} `yaml:"sources"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

// applyEnv layers environment overrides on top of the file. The names
// are the ones operators already use with this system.
func applyEnv(cfg *Config) {
	if v := os.Getenv("JOBSCOUT_DATA_DIR"); v != "" {
		cfg.App.DataDir = v
	}
	if v := os.Getenv("GOOGLE_SHEETS_KEY"); v != "" {
		cfg.Store.SheetKey = v
	}
	if v := os.Getenv("CREDENTIALS_FILE"); v != "" {
		cfg.Store.CredentialsFile = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		cfg.App.RunOnStart = strings.EqualFold(v, "true")
	}
	t1, t2 := os.Getenv("SCHEDULE_TIME_1"), os.Getenv("SCHEDULE_TIME_2")
	if t1 != "" || t2 != "" {
		var times []string
		if t1 != "" {
			times = append(times, t1)
		}
		if t2 != "" {
			times = append(times, t2)
		}
		cfg.App.ScheduleTimes = times
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = "."
	}
	if len(cfg.App.ScheduleTimes) == 0 {
		cfg.App.ScheduleTimes = []string{"08:00", "20:00"}
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "sqlite"
	}
	if cfg.Store.Table == "" {
		cfg.Store.Table = "postings"
	}
	if cfg.Store.CredentialsFile == "" {
		cfg.Store.CredentialsFile = "credentials.json"
	}
	if len(cfg.Search.Terms) == 0 {
		cfg.Search.Terms = []string{
			"digital health", "telemedicine", "eHealth", "mHealth",
			"health IT", "interoperability health", "FHIR", "HL7",
			"AI healthcare", "health informatics", "digitale Gesundheit", "Telemedizin",
		}
	}
	if cfg.Search.TermsPerRun == 0 {
		cfg.Search.TermsPerRun = 3
	}
	if cfg.Search.MaxCardsPerPage == 0 {
		cfg.Search.MaxCardsPerPage = 20
	}
	if cfg.Search.PauseSeconds == 0 {
		cfg.Search.PauseSeconds = 3
	}
	if cfg.Search.LoadTimeoutSeconds == 0 {
		cfg.Search.LoadTimeoutSeconds = 15
	}
	if len(cfg.Filters.ExcludeTerms) == 0 {
		cfg.Filters.ExcludeTerms = []string{
			"project manager", "senior", "lead", "principal", "director", "head of", "developer",
		}
	}
	if len(cfg.Filters.JuniorTerms) == 0 {
		cfg.Filters.JuniorTerms = []string{
			"junior", "entry", "graduate", "trainee", "praktikum", "werkstudent",
		}
	}
	if len(cfg.Filters.SeniorTerms) == 0 {
		cfg.Filters.SeniorTerms = []string{"senior", "lead", "principal"}
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = []LanguageGroup{
			{Tag: "English", Terms: []string{"english", "englisch"}},
			{Tag: "German", Terms: []string{"german", "deutsch"}},
		}
	}
	if cfg.Sources.LinkedIn.Location == "" {
		cfg.Sources.LinkedIn.Location = "Germany"
	}
	if cfg.Sources.Xing.Location == "" {
		cfg.Sources.Xing.Location = "Deutschland"
	}
}
