// File: settei/example/main.go
package main

import (
	"fmt"
	"log"
	"os"

	settei "github.com/settei-dev/settei"
)

// Cache is the capability the application depends on; which implementation
// backs it is decided by configuration.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryCache is a trivial in-process Cache.
type MemoryCache struct {
	prefix string
	data   map[string]string
}

func (m *MemoryCache) Get(key string) (string, bool) {
	v, ok := m.data[m.prefix+key]
	return v, ok
}

func (m *MemoryCache) Set(key, value string) {
	m.data[m.prefix+key] = value
}

const configFile = "app.toml"

const configBody = `
[database]
url = "sqlite:///app.db"

[cache]
class = "example:MemoryCache"
prefix = "app:"

[worker]
level = "info"
`

var (
	databaseURL = settei.NewProperty("database.url", settei.String,
		settei.WithDefault("sqlite:///fallback.db"), settei.WithDefaultWarning())

	workerLevel = settei.NewProperty("worker.level",
		settei.NewEnum("Level", "debug", "info", "warning"))

	appCache = settei.NewObjectProperty("cache", settei.InterfaceOf[Cache](),
		settei.WithCached())
)

func main() {
	if err := os.WriteFile(configFile, []byte(configBody), 0644); err != nil {
		log.Fatal(err)
	}
	defer os.Remove(configFile)

	// Structured env override: augments the cache section without
	// restating it in the document.
	os.Setenv("CACHE__PREFIX", "env:")
	defer os.Unsetenv("CACHE__PREFIX")

	registry := settei.NewRegistry()
	registry.MustRegister("example:MemoryCache", func(args []any, kwargs map[string]any) (any, error) {
		prefix, _ := kwargs["prefix"].(string)
		return &MemoryCache{prefix: prefix, data: make(map[string]string)}, nil
	})

	cfg, err := settei.NewBuilder().
		WithFile(configFile).
		WithResolver(registry).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	url, err := settei.Get[string](cfg, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("database url:", url)

	level, err := workerLevel.Resolve(cfg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("worker level:", level)

	// The cache section instantiates a MemoryCache through the registry,
	// memoized on this Configuration instance. The env override above wins
	// on the prefix key during the deep merge.
	obj, err := appCache.Resolve(cfg)
	if err != nil {
		log.Fatal(err)
	}
	cache := obj.(Cache)
	cache.Set("greeting", "hello")
	v, _ := cache.Get("greeting")
	fmt.Println("cached greeting:", v)
}
