// File: settei/decode.go
package settei

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// structValidator enforces `validate` struct tags after decoding.
var structValidator = validator.New()

// Unmarshal decodes the configuration subtree at basePath into target. The
// subtree is the document value at the path, overlaid with any matching
// environment variables per the usual merge rules, so operators can
// override individual struct fields without restating the section.
//
// Field names map through `config` struct tags. After decoding, `validate`
// tags are enforced via go-playground/validator.
func (c *Configuration) Unmarshal(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("unmarshal target must be a non-nil pointer, got %T", target)
	}

	var section any = c.document
	if basePath != "" {
		docVal, docFound := c.Lookup(basePath)
		envVal, envFound := c.env.Lookup(basePath)
		merged, found := mergeLookup(docVal, docFound, envVal, envFound)
		if !found {
			merged = map[string]any{} // Empty section
		}
		section = merged
	}

	sectionMap, ok := asMapping(section)
	if !ok {
		return fmt.Errorf("path %q refers to non-map value (type %T)", basePath, section)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("decode failed for path %q: %w", basePath, err)
	}

	if err := validateTarget(target); err != nil {
		return fmt.Errorf("validation failed for path %q: %w", basePath, err)
	}
	return nil
}

// validateTarget runs struct tag validation when the target is a struct.
func validateTarget(target any) error {
	rv := reflect.ValueOf(target).Elem()
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return structValidator.Struct(rv.Interface())
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// Network types
		stringToNetIPHookFunc(),
		stringToURLHookFunc(),

		// Standard hooks
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToNetIPHookFunc handles net.IP conversion
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 45 { // Max IPv6 length
			return nil, fmt.Errorf("invalid IP length: %d", len(str))
		}
		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}
		return ip, nil
	}
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}
