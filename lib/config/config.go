// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// AlbumCoverFilename is the fixed name of the album-art artifact inside
// the output directory. It cannot be used by a text output.
const AlbumCoverFilename = "album_cover.jpeg"

// Config is the rocksniffer configuration.
type Config struct {
	// Output lists the rendered text artifacts.
	Output []OutputSpec `yaml:"output" json:"output"`

	// Format configures how times and percentages are rendered.
	Format FormatConfig `yaml:"format" json:"format"`

	// Addons configures the notification side-channel.
	Addons AddonConfig `yaml:"addons" json:"addons"`

	// Debug enables verbose logging per subsystem.
	Debug DebugConfig `yaml:"debug" json:"debug"`

	// Paths configures directory and file locations.
	Paths PathsConfig `yaml:"paths" json:"paths"`

	// Process configures target process discovery and the render tick.
	Process ProcessConfig `yaml:"process" json:"process"`
}

// OutputSpec describes one rendered text artifact: the file it is
// written to inside the output directory and the template rendered into
// it.
type OutputSpec struct {
	Filename string `yaml:"filename" json:"filename"`
	Template string `yaml:"text" json:"text"`
}

// FormatConfig configures value formatting for rendered templates.
type FormatConfig struct {
	// TimeLayout is a Go reference-time layout applied to durations,
	// e.g. "04:05" for minutes and seconds.
	TimeLayout string `yaml:"time_layout" json:"time_layout"`

	// Percentage is a printf pattern with one float verb applied to the
	// accuracy in percent, e.g. "%.2f%%".
	Percentage string `yaml:"percentage" json:"percentage"`

	// Locale is a BCP 47 tag selecting decimal separators for
	// percentages.
	Locale string `yaml:"locale" json:"locale"`
}

// AddonConfig configures the notification side-channel used by overlay
// widgets.
type AddonConfig struct {
	Enable    bool   `yaml:"enable" json:"enable"`
	IPAddress string `yaml:"ip_address" json:"ip_address"`
	Port      int    `yaml:"port" json:"port"`
}

// DebugConfig enables debug logging per subsystem. Setting any of them
// lowers the log level to debug. StateMachine, SongDetails and Cache
// gate the supervisor's own debug records; every switch except Cache is
// also forwarded to the sniffer factory.
type DebugConfig struct {
	StateMachine              bool `yaml:"state_machine" json:"state_machine"`
	SongDetails               bool `yaml:"song_details" json:"song_details"`
	Cache                     bool `yaml:"cache" json:"cache"`
	MemoryReadout             bool `yaml:"memory_readout" json:"memory_readout"`
	SystemHandleQuery         bool `yaml:"system_handle_query" json:"system_handle_query"`
	FileDetailQuery           bool `yaml:"file_detail_query" json:"file_detail_query"`
	DisableFileHandleSniffing bool `yaml:"disable_file_handle_sniffing" json:"disable_file_handle_sniffing"`
}

// Any reports whether any debug flag is set.
func (d DebugConfig) Any() bool {
	return d.StateMachine || d.SongDetails || d.Cache || d.MemoryReadout ||
		d.SystemHandleQuery || d.FileDetailQuery
}

// PathsConfig configures file locations.
type PathsConfig struct {
	// Output is the directory rendered artifacts are written to.
	Output string `yaml:"output" json:"output"`

	// Cache is the album-art cache directory. Empty keeps the cache in
	// memory only.
	Cache string `yaml:"cache" json:"cache"`

	// Status is the supervisor status file. Empty disables it.
	Status string `yaml:"status" json:"status"`
}

// ProcessConfig configures target process discovery.
type ProcessConfig struct {
	// Name is the process name to look for.
	Name string `yaml:"name" json:"name"`

	// PollInterval is the wait between discovery attempts.
	PollInterval Duration `yaml:"poll_interval" json:"poll_interval"`

	// TickInterval is the render period while the process is running.
	TickInterval Duration `yaml:"tick_interval" json:"tick_interval"`
}

// Duration is a time.Duration that reads from strings such as "1s" or
// "250ms" in both YAML and JSON.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the default configuration. The output list mirrors the
// files overlay presets expect to find.
func Default() *Config {
	return &Config{
		Output: []OutputSpec{
			{Filename: "song_details.txt", Template: "%SONG_ARTIST% - %SONG_NAME%"},
			{Filename: "album_details.txt", Template: "%SONG_ALBUM% (%ALBUM_YEAR%)"},
			{Filename: "song_timer.txt", Template: "%SONG_TIMER%/%SONG_LENGTH%"},
			{Filename: "notes.txt", Template: "%NOTES_HIT%/%TOTAL_NOTES%"},
			{Filename: "streaks.txt", Template: "%CURRENT_STREAK%/%HIGHEST_STREAK%"},
			{Filename: "accuracy.txt", Template: "%CURRENT_ACCURACY%"},
		},
		Format: FormatConfig{
			TimeLayout: "04:05",
			Percentage: "%.2f%%",
			Locale:     "en",
		},
		Addons: AddonConfig{
			Enable:    false,
			IPAddress: "127.0.0.1",
			Port:      9938,
		},
		Paths: PathsConfig{
			Output: "output",
			Cache:  "cache",
			Status: "",
		},
		Process: ProcessConfig{
			Name:         "Rocksmith2014",
			PollInterval: Duration(time.Second),
			TickInterval: Duration(time.Second),
		},
	}
}

// Load loads configuration from the file named by ROCKSNIFFER_CONFIG.
// When the variable is unset the defaults are returned, so the binary
// runs out of the box next to its output directory.
func Load() (*Config, error) {
	configPath := os.Getenv("ROCKSNIFFER_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, merging it over the defaults
// and expanding ${VAR} references in paths. An output list in the file
// replaces the default list rather than extending it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	// encoding/json decodes into the existing elements of a slice, so
	// a file entry would inherit fields from the default at its index.
	// Decode outputs into an empty list and restore the defaults only
	// when the file has no output key.
	cfg.Output = nil
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if cfg.Output == nil {
		cfg.Output = Default().Output
	}

	cfg.expandVariables()
	return cfg, nil
}

// loadFile decodes one file into c according to its extension.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, c)
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		return fmt.Errorf("unsupported config extension %q (want .yaml, .yml, .json or .jsonc)", filepath.Ext(path))
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	c.Paths.Output = expandVars(c.Paths.Output)
	c.Paths.Cache = expandVars(c.Paths.Cache)
	c.Paths.Status = expandVars(c.Paths.Status)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// percentVerb matches a printf float or generic verb with optional flags,
// width and precision.
var percentVerb = regexp.MustCompile(`%[-+# 0]*[0-9]*(\.[0-9]+)?[fFeEgGv]`)

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Output) == 0 {
		errs = append(errs, errors.New("output: at least one output is required"))
	}
	seen := make(map[string]bool, len(c.Output))
	for i, output := range c.Output {
		switch {
		case output.Filename == "":
			errs = append(errs, fmt.Errorf("output[%d]: filename is required", i))
		case strings.ContainsAny(output.Filename, `/\`) || output.Filename == "." || output.Filename == "..":
			errs = append(errs, fmt.Errorf("output[%d]: filename %q must not contain a path", i, output.Filename))
		case output.Filename == AlbumCoverFilename:
			errs = append(errs, fmt.Errorf("output[%d]: filename %q is reserved for album art", i, output.Filename))
		case seen[output.Filename]:
			errs = append(errs, fmt.Errorf("output[%d]: duplicate filename %q", i, output.Filename))
		}
		seen[output.Filename] = true
	}

	if c.Format.TimeLayout == "" {
		errs = append(errs, errors.New("format.time_layout is required"))
	}
	if !percentVerb.MatchString(strings.ReplaceAll(c.Format.Percentage, "%%", "")) {
		errs = append(errs, fmt.Errorf("format.percentage %q must contain a float verb such as %%.2f", c.Format.Percentage))
	}
	if _, err := language.Parse(c.Format.Locale); err != nil {
		errs = append(errs, fmt.Errorf("format.locale %q: %w", c.Format.Locale, err))
	}

	if c.Addons.Enable && (c.Addons.Port < 1 || c.Addons.Port > 65535) {
		errs = append(errs, fmt.Errorf("addons.port %d out of range", c.Addons.Port))
	}

	if c.Paths.Output == "" {
		errs = append(errs, errors.New("paths.output is required"))
	}

	if c.Process.Name == "" {
		errs = append(errs, errors.New("process.name is required"))
	}
	if c.Process.PollInterval <= 0 {
		errs = append(errs, errors.New("process.poll_interval must be positive"))
	}
	if c.Process.TickInterval <= 0 {
		errs = append(errs, errors.New("process.tick_interval must be positive"))
	}

	return errors.Join(errs...)
}

// Locale returns the parsed formatting locale, falling back to English
// for an unparseable tag. Validate reports the parse error.
func (c *Config) Locale() language.Tag {
	tag, err := language.Parse(c.Format.Locale)
	if err != nil {
		return language.English
	}
	return tag
}
