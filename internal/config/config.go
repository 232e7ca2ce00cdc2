package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// RosterConfig points at the two flat roster tables.
type RosterConfig struct {
	// StudentsFile is the path to the students CSV (student_name, email).
	StudentsFile string `yaml:"students_file" json:"students_file"`
	// TutorsFile is the path to the tutors CSV (no_id_name, email).
	TutorsFile string `yaml:"tutors_file" json:"tutors_file"`
}

// MonitorConfig controls the two background polling loops.
type MonitorConfig struct {
	// SyncInterval is the period of the calendar skeleton sync.
	SyncInterval time.Duration `yaml:"sync_interval" json:"sync_interval"`

	// PollInterval is the period of the attendance monitor. It should be
	// strictly shorter than SyncInterval.
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval"`

	// Workers bounds the concurrent per-session enrichment fetches.
	Workers int `yaml:"workers" json:"workers"`

	// Lead is how far before its start time a session with a live
	// conference record is reported as UPCOMING.
	Lead time.Duration `yaml:"lead" json:"lead"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the sessions API.
	Listen string `yaml:"listen" json:"listen"`

	// MetricsListen is the dedicated Prometheus listener address.
	// Empty disables the metrics server.
	MetricsListen string `yaml:"metrics_listen" json:"metrics_listen"`

	// Account selects which stored Google OAuth token to use.
	Account string `yaml:"account" json:"account"`

	// AllowedOrigins is the CORS allowlist for the monitoring GUI.
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`

	// Timeframes seeds the active hour-window set (e.g. "14:00") before
	// the GUI pushes its own via POST /sync-config.
	Timeframes []string `yaml:"timeframes" json:"timeframes"`

	Roster  RosterConfig  `yaml:"roster" json:"roster"`
	Monitor MonitorConfig `yaml:"monitor" json:"monitor"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:         "127.0.0.1:3001",
		MetricsListen:  ":9090",
		Account:        "default",
		AllowedOrigins: []string{"*"},
		Timeframes:     []string{},
		Roster: RosterConfig{
			StudentsFile: "students.csv",
			TutorsFile:   "tutors.csv",
		},
		Monitor: MonitorConfig{
			SyncInterval: 5 * time.Minute,
			PollInterval: 20 * time.Second,
			Workers:      25,
			Lead:         10 * time.Minute,
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:3001"
	}
	if c.Account == "" {
		c.Account = "default"
	}
	if c.AllowedOrigins == nil {
		c.AllowedOrigins = []string{"*"}
	}
	if c.Timeframes == nil {
		c.Timeframes = []string{}
	}
	if c.Roster.StudentsFile == "" {
		c.Roster.StudentsFile = "students.csv"
	}
	if c.Roster.TutorsFile == "" {
		c.Roster.TutorsFile = "tutors.csv"
	}
	if c.Monitor.SyncInterval <= 0 {
		c.Monitor.SyncInterval = 5 * time.Minute
	}
	if c.Monitor.PollInterval <= 0 {
		c.Monitor.PollInterval = 20 * time.Second
	}
	if c.Monitor.Workers <= 0 {
		c.Monitor.Workers = 25
	}
	if c.Monitor.Lead <= 0 {
		c.Monitor.Lead = 10 * time.Minute
	}
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (parent
// directory created as needed) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically
// (temp file + rename) with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".classwatch-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
