// File: settei/loader_test.go
package settei_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/settei-dev/settei"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFromPath(t *testing.T) {
	t.Run("TOML", func(t *testing.T) {
		path := writeTempConfig(t, "config.toml", `
[server]
host = "localhost"
port = 8080
`)
		cfg, err := settei.FromPath(path, settei.WithEnviron(staticEnv(nil)))
		require.NoError(t, err)
		v, ok := cfg.Lookup("server.host")
		require.True(t, ok)
		assert.Equal(t, "localhost", v)
	})

	t.Run("YAML", func(t *testing.T) {
		path := writeTempConfig(t, "config.yaml", `
server:
  host: localhost
  port: 8080
`)
		cfg, err := settei.FromPath(path, settei.WithEnviron(staticEnv(nil)))
		require.NoError(t, err)
		v, ok := cfg.Lookup("server.port")
		require.True(t, ok)
		assert.Equal(t, 8080, v)
	})

	t.Run("JSON", func(t *testing.T) {
		path := writeTempConfig(t, "config.json",
			`{"server": {"host": "localhost"}}`)
		cfg, err := settei.FromPath(path, settei.WithEnviron(staticEnv(nil)))
		require.NoError(t, err)
		v, ok := cfg.Lookup("server.host")
		require.True(t, ok)
		assert.Equal(t, "localhost", v)
	})

	t.Run("Unknown Extension Falls Back To Content Detection", func(t *testing.T) {
		path := writeTempConfig(t, "config.conf",
			`{"debug": true}`)
		cfg, err := settei.FromPath(path, settei.WithEnviron(staticEnv(nil)))
		require.NoError(t, err)
		v, ok := cfg.Lookup("debug")
		require.True(t, ok)
		assert.Equal(t, true, v)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := settei.FromPath(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, settei.ErrConfigNotFound)
	})

	t.Run("Malformed Content", func(t *testing.T) {
		path := writeTempConfig(t, "config.toml", `server = [incomplete`)
		_, err := settei.FromPath(path)
		assert.Error(t, err)
	})
}

func TestFromFile(t *testing.T) {
	t.Run("Detects TOML From Reader", func(t *testing.T) {
		cfg, err := settei.FromFile(strings.NewReader(`
[database]
url = "postgres://localhost/app"
`), settei.WithEnviron(staticEnv(nil)))
		require.NoError(t, err)
		v, ok := cfg.Lookup("database.url")
		require.True(t, ok)
		assert.Equal(t, "postgres://localhost/app", v)
	})

	t.Run("JSON Numbers Resolve As Typed Properties", func(t *testing.T) {
		cfg, err := settei.FromFile(strings.NewReader(
			`{"server": {"port": 8080, "ratio": 0.75, "big": 9007199254740993}}`),
			settei.WithEnviron(staticEnv(nil)))
		require.NoError(t, err)

		port, perr := settei.NewProperty("server.port", settei.Int).Resolve(cfg)
		require.NoError(t, perr)
		assert.Equal(t, int64(8080), port)

		ratio, perr := settei.NewProperty("server.ratio", settei.Float).Resolve(cfg)
		require.NoError(t, perr)
		assert.InDelta(t, 0.75, ratio.(float64), 1e-9)

		// Integers beyond float64 precision survive intact.
		big, perr := settei.NewProperty("server.big", settei.Int).Resolve(cfg)
		require.NoError(t, perr)
		assert.Equal(t, int64(9007199254740993), big)

		// A number is not a string.
		_, perr = settei.NewProperty("server.port", settei.String).Resolve(cfg)
		var typeErr *settei.TypeError
		assert.ErrorAs(t, perr, &typeErr)
	})

	t.Run("Detects JSON From Reader", func(t *testing.T) {
		cfg, err := settei.FromFile(strings.NewReader(`{"a": {"b": "c"}}`),
			settei.WithEnviron(staticEnv(nil)))
		require.NoError(t, err)
		v, ok := cfg.Lookup("a.b")
		require.True(t, ok)
		assert.Equal(t, "c", v)
	})

	t.Run("Loaded Document Participates In Env Overlay", func(t *testing.T) {
		cfg, err := settei.FromFile(strings.NewReader(`
[server]
host = "file-host"
`), settei.WithEnviron(staticEnv(map[string]string{
			"SERVER__PORT": "9999",
		})))
		require.NoError(t, err)
		p := settei.NewProperty("server", settei.Map)
		v, perr := p.Resolve(cfg)
		require.NoError(t, perr)
		assert.Equal(t, map[string]any{"host": "file-host", "port": "9999"}, v)
	})
}

func TestConfigurationAccessors(t *testing.T) {
	cfg := settei.New(map[string]any{
		"b": 1,
		"a": 2,
		"c": map[string]any{"nested": true},
	}, settei.WithEnviron(staticEnv(nil)))

	assert.Equal(t, 3, cfg.Len())
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Keys())

	v, ok := cfg.Get("b")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = cfg.Get("missing")
	assert.False(t, ok)

	t.Run("Lookup Stops At Non Mapping", func(t *testing.T) {
		_, ok := cfg.Lookup("b.deeper")
		assert.False(t, ok)
	})
}
