package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskm.db"
	DefaultExportName     = "tasks.json"
)

type Keymap struct {
	Quit          string `toml:"quit"`
	Add           string `toml:"add"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Toggle        string `toml:"toggle"`
	Delete        string `toml:"delete"`
	Edit          string `toml:"edit"`
	Due           string `toml:"due"`
	Search        string `toml:"search"`
	Filter        string `toml:"filter"`
	ClearDone     string `toml:"clear_done"`
	MoveUp        string `toml:"move_up"`
	MoveDown      string `toml:"move_down"`
	SortManual    string `toml:"sort_manual"`
	SortDue       string `toml:"sort_due"`
	SortCreated   string `toml:"sort_created"`
	SortCompleted string `toml:"sort_completed"`
	Theme         string `toml:"theme"`
	Export        string `toml:"export"`
	Import        string `toml:"import"`
	Confirm       string `toml:"confirm"`
	Cancel        string `toml:"cancel"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	ExportPath    string `toml:"export_path"`
	DefaultFilter string `toml:"default_filter"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath prefers the user config dir, falling back to the
// working directory when it cannot be determined.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "taskm", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.ExportPath == "" {
		cfg.ExportPath = DefaultExportName
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		ExportPath:    DefaultExportName,
		DefaultFilter: "all",
		Keys: Keymap{
			Quit:          "q",
			Add:           "a",
			Up:            "k",
			Down:          "j",
			Toggle:        " ",
			Delete:        "d",
			Edit:          "e",
			Due:           "D",
			Search:        "/",
			Filter:        "f",
			ClearDone:     "c",
			MoveUp:        "K",
			MoveDown:      "J",
			SortManual:    "1",
			SortDue:       "2",
			SortCreated:   "3",
			SortCompleted: "4",
			Theme:         "t",
			Export:        "E",
			Import:        "I",
			Confirm:       "enter",
			Cancel:        "esc",
		},
	}
}
