// File: settei/builder.go
package settei

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// ValidatorFunc validates a fully built Configuration. It should return an
// error when the configuration cannot be used.
type ValidatorFunc func(c *Configuration) error

// Builder provides a fluent interface for assembling a Configuration from a
// document file, an explicit document mapping, override layers, and the
// injected collaborators.
type Builder struct {
	document   map[string]any
	overrides  []map[string]any
	file       string
	dotenv     string
	opts       []Option
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithDocument sets an explicit base document. When combined with WithFile,
// the explicit document is deep-merged over the file contents and wins on
// overlapping keys.
func (b *Builder) WithDocument(document map[string]any) *Builder {
	b.document = document
	return b
}

// WithFile sets the configuration document file path. A missing file is not
// fatal; Build reports it as ErrConfigNotFound alongside the Configuration
// assembled from the remaining layers.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithDotEnv loads variables from a .env file into the process environment
// before the Configuration is built. A missing .env file is ignored.
func (b *Builder) WithDotEnv(path string) *Builder {
	b.dotenv = path
	return b
}

// WithOverrides adds an override layer deep-merged over the document, with
// the override side winning on overlapping keys. Layers apply in the order
// they are added.
func (b *Builder) WithOverrides(overrides map[string]any) *Builder {
	if overrides != nil {
		b.overrides = append(b.overrides, overrides)
	}
	return b
}

// WithEnviron sets the environment snapshot function.
func (b *Builder) WithEnviron(environ func() []string) *Builder {
	b.opts = append(b.opts, WithEnviron(environ))
	return b
}

// WithDelimiter sets the environment variable segment delimiter.
func (b *Builder) WithDelimiter(delimiter string) *Builder {
	b.opts = append(b.opts, WithDelimiter(delimiter))
	return b
}

// WithResolver sets the symbol resolver used by object properties.
func (b *Builder) WithResolver(r Resolver) *Builder {
	b.opts = append(b.opts, WithResolver(r))
	return b
}

// WithWarning sets the default-usage advisory sink.
func (b *Builder) WithWarning(fn WarningFunc) *Builder {
	b.opts = append(b.opts, WithWarning(fn))
	return b
}

// WithValidator adds a validation function that runs at the end of the
// build. Multiple validators run in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build assembles the Configuration from all specified layers.
func (b *Builder) Build() (*Configuration, error) {
	if b.dotenv != "" {
		if err := godotenv.Load(b.dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file '%s': %w", b.dotenv, err)
		}
	}

	var (
		document = make(map[string]any)
		loadErr  error
	)
	if b.file != "" {
		fileDoc, err := loadDocument(b.file)
		switch {
		case errors.Is(err, ErrConfigNotFound):
			loadErr = err
		case err != nil:
			return nil, err
		default:
			document = fileDoc
		}
	}
	if b.document != nil {
		document, _ = asMapping(deepMerge(document, b.document))
	}
	for _, layer := range b.overrides {
		document, _ = asMapping(deepMerge(document, layer))
	}

	cfg := New(document, b.opts...)

	for _, validate := range b.validators {
		if err := validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	// ErrConfigNotFound or nil
	return cfg, loadErr
}

// MustBuild is like Build but panics on error. A missing configuration file
// is not fatal; the application can proceed with the remaining layers.
func (b *Builder) MustBuild() *Configuration {
	cfg, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("settei: configuration build failed: %v", err))
	}
	return cfg
}
