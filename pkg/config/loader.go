package config

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const serviceURLSuffix = "_SERVICE_URL"

// Load fills out from defaults, then the YAML file named by CONFIG_FILE (if
// any), then the process environment. Later sources win.
func Load(defaults map[string]any, out any) error {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	known := k.Raw()
	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return envKey(key, known), value
		},
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", out, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           out,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// envKey maps an environment variable onto a config path. ORDER_SERVICE_URL
// becomes discovery.services.order-service; anything else is aligned with the
// keys that already exist, so REMOTE_MAX_CONCURRENCY lands on
// remote.maxConcurrency.
func envKey(raw string, known map[string]any) string {
	if strings.HasSuffix(raw, serviceURLSuffix) && len(raw) > len(serviceURLSuffix) {
		name := strings.ToLower(strings.TrimSuffix(raw, serviceURLSuffix))
		return "discovery.services." + strings.ReplaceAll(name, "_", "-") + "-service"
	}

	segments := strings.Split(strings.ToLower(raw), "_")
	path := make([]string, 0, len(segments))
	current := known

	for i := 0; i < len(segments); {
		matched := false
		// longest run of segments that names an existing key at this level
		for j := len(segments); j > i; j-- {
			key, next, ok := findKey(current, strings.Join(segments[i:j], ""))
			if !ok {
				continue
			}
			path = append(path, key)
			current = next
			i = j
			matched = true
			break
		}
		if !matched {
			// unrelated variables stay out of the known tree
			return strings.ToLower(raw)
		}
	}

	if current != nil {
		// a bare section name such as DB must not replace the section
		return strings.ToLower(raw)
	}
	return strings.Join(path, ".")
}

func findKey(level map[string]any, token string) (string, map[string]any, bool) {
	for key, value := range level {
		if normalize(key) != token {
			continue
		}
		child, _ := value.(map[string]any)
		return key, child, true
	}
	return "", nil, false
}

func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
