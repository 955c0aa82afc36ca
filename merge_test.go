// File: settei/merge_test.go
package settei_test

import (
	"testing"

	"github.com/settei-dev/settei"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeOverlay(t *testing.T) {
	t.Run("Environment Wins Conflicts And Document Backfills", func(t *testing.T) {
		document := map[string]any{
			"foo": map[string]any{
				"overlay_env": map[string]any{"bar": "3"},
			},
		}
		cfg := settei.New(document, settei.WithEnviron(staticEnv(map[string]string{
			"FOO__OVERLAY_ENV__FOO": "1",
			"FOO__OVERLAY_ENV__BAR": "2",
		})))
		p := settei.NewProperty("foo.overlay_env", settei.Map)
		v, err := p.Resolve(cfg)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"foo": "1", "bar": "2"}, v)
	})

	t.Run("Document Only", func(t *testing.T) {
		document := map[string]any{
			"server": map[string]any{"host": "doc-host", "port": 8080},
		}
		cfg := settei.New(document, settei.WithEnviron(staticEnv(nil)))
		p := settei.NewProperty("server", settei.Map)
		v, err := p.Resolve(cfg)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"host": "doc-host", "port": 8080}, v)
	})

	t.Run("Environment Only", func(t *testing.T) {
		cfg := settei.New(nil, settei.WithEnviron(staticEnv(map[string]string{
			"SERVER__HOST": "env-host",
		})))
		p := settei.NewProperty("server", settei.Map)
		v, err := p.Resolve(cfg)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"host": "env-host"}, v)
	})

	t.Run("Nested Merge Keeps Untouched Branches", func(t *testing.T) {
		document := map[string]any{
			"app": map[string]any{
				"db":    map[string]any{"host": "localhost", "port": 5432},
				"cache": map[string]any{"size": 128},
			},
		}
		cfg := settei.New(document, settei.WithEnviron(staticEnv(map[string]string{
			"APP__DB__HOST": "db.internal",
		})))
		p := settei.NewProperty("app", settei.Map)
		v, err := p.Resolve(cfg)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"db":    map[string]any{"host": "db.internal", "port": 5432},
			"cache": map[string]any{"size": 128},
		}, v)
	})

	t.Run("Environment Mapping Replaces Document Scalar Inside Merge", func(t *testing.T) {
		document := map[string]any{
			"app": map[string]any{"db": "sqlite://memory"},
		}
		cfg := settei.New(document, settei.WithEnviron(staticEnv(map[string]string{
			"APP__DB__HOST": "db.internal",
		})))
		p := settei.NewProperty("app", settei.Map)
		v, err := p.Resolve(cfg)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"db": map[string]any{"host": "db.internal"},
		}, v)
	})
}
