package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/leapstack-labs/bqlint/pkg/lint"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "bqlint.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "bqlint.yml"

// EnvPrefix starts every environment variable read by Load.
// BQLINT_LINT__DOCS_BASE_URL sets lint.docs_base_url.
const EnvPrefix = "BQLINT_"

// Load reads configuration from defaults, the YAML file at path (skipped
// when path is empty) and BQLINT_ environment variables.
// Precedence (highest to lowest): env vars > config file > defaults
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load config file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. Load environment variables
	// Transform: BQLINT_LINT__DISABLED -> lint.disabled
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Unmarshal into Config struct
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				severityHook(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromDir loads configuration using bqlint.yaml or bqlint.yml in dir,
// if either exists.
func LoadFromDir(dir string) (*Config, error) {
	return Load(findConfigFile(dir))
}

// findConfigFile finds the config file in the given directory.
// Returns empty string if not found.
func findConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

var severityType = reflect.TypeOf(lint.Severity(0))

// severityHook decodes severity names into lint.Severity.
func severityHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != severityType || from.Kind() != reflect.String {
			return data, nil
		}
		sev, err := lint.ParseSeverity(data.(string))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSeverity, err)
		}
		return sev, nil
	}
}
