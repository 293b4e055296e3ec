package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.Nil(t, cfg.Validate())

	assert.Equal(t, "($) ", cfg.Prompt)
	assert.Equal(t, ModeAuto, cfg.Interactive)
	assert.Equal(t, ModeNever, cfg.Color)
	assert.False(t, cfg.HasEventLog())
}

func TestConfiguration_Validate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Configuration)
		field  string
	}{
		"blank prompt":      {func(c *Configuration) { c.Prompt = "" }, "prompt"},
		"bad interactive":   {func(c *Configuration) { c.Interactive = "sometimes" }, "interactive"},
		"bad color":         {func(c *Configuration) { c.Color = "yes" }, "color"},
		"event log escapes": {func(c *Configuration) { c.EventLog = "../events.log" }, "event_log"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.field)
			}
		})
	}
}

func TestConfiguration_modes(t *testing.T) {
	cfg := defaultConfig()

	for _, terminal := range []bool{true, false} {
		cfg.Interactive = ModeAuto
		assert.Equal(t, terminal, cfg.IsInteractive(terminal))
		cfg.Interactive = ModeAlways
		assert.True(t, cfg.IsInteractive(terminal))
		cfg.Interactive = ModeNever
		assert.False(t, cfg.IsInteractive(terminal))

		cfg.Color = ModeAuto
		assert.Equal(t, terminal, cfg.ShouldColor(terminal))
		cfg.Color = ModeAlways
		assert.True(t, cfg.ShouldColor(terminal))
		cfg.Color = ModeNever
		assert.False(t, cfg.ShouldColor(terminal))
	}
}
