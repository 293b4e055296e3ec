package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
)

// Values for the tri-state Interactive and Color settings.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	Prompt      string `json:"prompt" validate:"required"`
	Interactive string `json:"interactive" validate:"oneof=auto always never"`
	Color       string `json:"color" validate:"oneof=auto always never"`
	EventLog    string `json:"event_log" validate:"omitempty,excludesall=/"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewReadOnlyFs(afero.NewMemMapFs())
	}
	return c.configFs
}

// IsInteractive resolves the interactive setting given whether the input
// stream is a terminal.
func (c *Configuration) IsInteractive(inputIsTerminal bool) bool {
	return resolveMode(c.Interactive, inputIsTerminal)
}

// ShouldColor resolves the color setting given whether the diagnostic stream
// is a terminal.
func (c *Configuration) ShouldColor(outputIsTerminal bool) bool {
	return resolveMode(c.Color, outputIsTerminal)
}

func resolveMode(mode string, auto bool) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return auto
	}
}

// HasEventLog returns true if events should be recorded.
func (c *Configuration) HasEventLog() bool {
	return c.EventLog != ""
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_RDONLY, 0600)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the built-in configuration, which has no backing directory.
func Default() *Configuration {
	return defaultConfig()
}
