package engine

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the optional config.toml next to the binary. Anything
// missing falls back to defaults; a missing file entirely is fine.
type Config struct {
	LevelsDir    string  `toml:"levels_dir"`
	ProgressPath string  `toml:"progress_path"`
	Debug        bool    `toml:"debug"`
	StartMuted   bool    `toml:"start_muted"`
	Volume       float64 `toml:"volume"`
}

func DefaultConfig() Config {
	return Config{
		LevelsDir:    "levels",
		ProgressPath: "progress.db",
		Volume:       0.8,
	}
}

// LoadConfig overlays the file onto defaults. A parse error is
// reported; an absent file is not.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Volume < 0 {
		cfg.Volume = 0
	}
	if cfg.Volume > 1 {
		cfg.Volume = 1
	}
	return cfg, nil
}
