package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcat/internal/config"
	"bookcat/internal/eventbus"
)

// newSetupApp runs the persistent pre-run against a config file in a temp dir
func newSetupApp(t *testing.T, apiURL string, debug bool) *app {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BOOKCAT_LOG_FILE", filepath.Join(dir, "bookcat.log"))
	for _, key := range []string{"BOOKCAT_API_URL", "BOOKCAT_API_ROUTES", "BOOKCAT_API_TIMEOUT_SECONDS", "BOOKCAT_PAGE_SIZE", "BOOKCAT_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	path := filepath.Join(dir, "config.toml")
	cfg := config.DefaultConfig()
	cfg.API.BaseURL = "http://catalog.test:3000"
	require.NoError(t, config.NewConfigService(path).Save(cfg))

	a := &app{configPath: path, apiURL: apiURL, debug: debug, logger: zerolog.Nop()}
	require.NoError(t, a.setup())
	t.Cleanup(func() { _ = a.cleanup() })
	return a
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPageSizeSaveKeepsOverridesOutOfFile(t *testing.T) {
	a := newSetupApp(t, "http://one-off.example:9999", true)
	require.Equal(t, "http://one-off.example:9999", a.cfg.API.BaseURL)
	require.Equal(t, "debug", a.cfg.Log.Level)

	saver := newPageSizeSaver(a.configSvc, nil, zerolog.Nop())
	require.NoError(t, saver.Save(15))

	saved := readFile(t, a.configSvc.Path())
	assert.Contains(t, saved, "page_size = 15")
	assert.Contains(t, saved, "catalog.test:3000")
	assert.NotContains(t, saved, "one-off.example")
	assert.NotContains(t, saved, "debug")
}

func TestPageSizeSaveIgnoresEnvironmentOverrides(t *testing.T) {
	a := newSetupApp(t, "", false)
	require.NoError(t, a.cleanup())
	t.Setenv("BOOKCAT_LOG_LEVEL", "warn")
	t.Setenv("BOOKCAT_API_URL", "http://from-env.example")
	require.NoError(t, a.setup())
	require.Equal(t, "warn", a.cfg.Log.Level)

	saver := newPageSizeSaver(a.configSvc, nil, zerolog.Nop())
	require.NoError(t, saver.Save(20))

	saved := readFile(t, a.configSvc.Path())
	assert.Contains(t, saved, "page_size = 20")
	assert.NotContains(t, saved, "warn")
	assert.NotContains(t, saved, "from-env.example")
}

func TestPageSizeSavesFollowChangeOrder(t *testing.T) {
	a := newSetupApp(t, "", false)
	bus := eventbus.New(zerolog.Nop())

	saver := newPageSizeSaver(a.configSvc, bus, zerolog.Nop())
	bus.Subscribe(eventbus.EventConfigChanged, saver.Handle)

	for _, size := range []int{5, 10, 15, 20} {
		bus.Publish(eventbus.ConfigChangedEvent{PageSize: size})
	}
	bus.Close()

	assert.Contains(t, readFile(t, a.configSvc.Path()), "page_size = 20")
}

func TestPageSizeSaveReportsFailures(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes both read and write fail
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.Mkdir(path, 0o755))

	bus := eventbus.New(zerolog.Nop())
	got := make(chan eventbus.ErrorEvent, 1)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		got <- e.(eventbus.ErrorEvent)
	})

	saver := newPageSizeSaver(config.NewConfigService(path), bus, zerolog.Nop())
	require.Error(t, saver.Save(15))
	bus.Close()

	select {
	case e := <-got:
		assert.Equal(t, "Could not save settings", e.Message)
	default:
		t.Fatal("ErrorEvent not published")
	}
}
