// Package config loads the gallery settings from yaml.
package config

import (
	_ "embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"defile/fetch"
	"defile/gallery"
	"defile/logging"
)

//go:embed sample.yaml
var sample []byte

// Config is the gallery configuration.
type Config struct {
	BaseURL     string         `yaml:"base_url"`
	UserAgent   string         `yaml:"user_agent,omitempty"`
	LogFile     string         `yaml:"log_file"`
	Log         logging.Config `yaml:"log"`
	MetricsAddr string         `yaml:"metrics_addr,omitempty"`
	Catalog     bool           `yaml:"catalog"`
	Cells       gallery.Cells  `yaml:"cells"`
	DetailStyle string         `yaml:"detail_style"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		BaseURL:     fetch.DefaultBaseURL,
		LogFile:     "defile.log",
		Log:         logging.Config{Level: "info"},
		Catalog:     true,
		Cells:       gallery.DefaultCells,
		DetailStyle: "dark",
	}
}

// Load reads path over the defaults.
func Load(path string) (cfg *Config, err error) {

	cfg = Default()

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to unmarshal")
		return
	}

	cfg.fill()
	return
}

// Sample writes the sample config to path, unless a file is already there.
func Sample(path string, mode os.FileMode) (err error) {

	_, err = os.Stat(path)
	if err == nil {
		return // already have a cfg
	}
	if !errors.Is(err, fs.ErrNotExist) {
		err = errors.Wrapf(err, "failed to stat %s", path)
		return
	}

	err = os.WriteFile(path, sample, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

// OpenLog opens the log file for appending, falling back to discard.
func OpenLog(path string, mode os.FileMode) (file io.Writer) {

	if path == "" {
		return io.Discard
	}

	var err error
	file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		fmt.Printf("warning: %s\n", err.Error())
		file = io.Discard
	}

	return
}

func CloseLog(file io.Writer) {

	actually, ok := file.(*os.File)
	if ok {
		actually.Close()
	}
}

// unexported

func (cfg *Config) fill() {

	dflt := Default()
	if cfg.BaseURL == "" {
		cfg.BaseURL = dflt.BaseURL
	}
	if cfg.Cells.Width <= 0 || cfg.Cells.Height <= 0 {
		cfg.Cells = dflt.Cells
	}
	if cfg.DetailStyle == "" {
		cfg.DetailStyle = dflt.DetailStyle
	}
}
