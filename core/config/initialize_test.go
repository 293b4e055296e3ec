package config

import (
	"bytes"
	"errors"
	"io/fs"
	"io/ioutil"
	"log"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, defaultConfig().Prompt, cfg.Prompt)

	t.Run("LoadConfigFile", func(t *testing.T) {
		cfg, err := Load(filepath.Join(tempDir, ConfigurationName))
		assert.Nil(t, err)
		assert.NotNil(t, cfg)
	})

	t.Run("EventLog", func(t *testing.T) {
		cfg.EventLog = "events.log"

		fd, err := cfg.OpenEventLog()
		require.Nil(t, err)
		_, err = fd.WriteString("{}\n")
		assert.Nil(t, err)
		fd.Close()

		rd, err := cfg.ReadEventLog()
		require.Nil(t, err)
		defer rd.Close()
		contents, err := ioutil.ReadAll(rd)
		assert.Nil(t, err)
		assert.Equal(t, "{}\n", string(contents))
	})
}

func TestInitializeFs_existing(t *testing.T) {
	configFs := afero.NewMemMapFs()
	custom := "prompt: \"> \"\ninteractive: never\ncolor: always\nevent_log: events.log\n"
	require.NoError(t, afero.WriteFile(configFs, ConfigurationName, []byte(custom), 0600))

	out := &bytes.Buffer{}
	cfg, err := InitializeFs(configFs, log.New(out, "", 0))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "already exists")
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, ModeNever, cfg.Interactive)
	assert.True(t, cfg.HasEventLog())
}

func TestLoad(t *testing.T) {
	t.Run("blank path uses defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, defaultConfig(), cfg)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("unknown field", func(t *testing.T) {
		configFs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(configFs, ConfigurationName, []byte("prompt: x\nbogus: 1\n"), 0600))

		_, err := LoadFs(configFs)
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		configFs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(configFs, ConfigurationName, []byte("prompt: x\ninteractive: auto\ncolor: purple\n"), 0600))

		_, err := LoadFs(configFs)
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "color")
		}
	})

	t.Run("no event log without directory", func(t *testing.T) {
		cfg := Default()
		cfg.EventLog = "events.log"
		_, err := cfg.OpenEventLog()
		assert.Error(t, err)
	})
}
