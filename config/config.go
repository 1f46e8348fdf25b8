// Package config loads key material and walker settings from a file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/zoobzio/sensitive"
)

// EnvPrefix is prepended to every environment variable, e.g.
// SENSITIVE_MASTER_CBC_KEY.
const EnvPrefix = "SENSITIVE"

var (
	// ErrRootKeyPair indicates a malformed "version=key" pair or list entry.
	ErrRootKeyPair = errors.New("root key pair must be version=key")

	// ErrRootKeyCase rejects a root_keys mapping whose versions contain
	// letters. Viper lower-cases map keys, so the written case is lost.
	ErrRootKeyCase = errors.New("root key versions with letters need the list form")

	// ErrDuplicateVersion indicates a version listed twice in root_keys.
	ErrDuplicateVersion = errors.New("duplicate root key version")
)

// Keys is the materialised key set plus walker settings.
type Keys struct {
	MasterCBCKey string            `mapstructure:"master_cbc_key" validate:"required,len=64,hexadecimal"`
	RootKeys     map[string]string `mapstructure:"root_keys" validate:"required,min=1,dive,keys,len=4,endkeys,len=32,hexadecimal"`
	DisableWrite bool              `mapstructure:"disable_write"`
	Fields       []string          `mapstructure:"fields" validate:"omitempty,dive,required"`
}

// Load reads keys from path (yaml, json or toml; optional) and the
// environment. Environment variables win over the file:
//
//	SENSITIVE_MASTER_CBC_KEY=<64 hex>
//	SENSITIVE_ROOT_KEYS=0001=<32 hex>,0002=<32 hex>
//	SENSITIVE_DISABLE_WRITE=true
//	SENSITIVE_FIELDS=name,email,ssn
//
// In a file, root_keys is a mapping of version to key, or a list of
// "version=key" strings or {version, key} objects. Viper lower-cases
// mapping keys, so versions containing letters must use a list.
func Load(path string) (*Keys, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	for _, key := range []string{"master_cbc_key", "root_keys", "disable_write", "fields"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var keys Keys
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		rootKeysHook(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&keys, hook); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := keys.Validate(); err != nil {
		return nil, err
	}
	return &keys, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("disable_write", false)
}

// Validate checks the shape of the key material against the struct tags.
// Hex decoding and version rules are checked again by sensitive.NewKeyStore.
func (k Keys) Validate() error {
	if err := validator.New().Struct(k); err != nil {
		return fmt.Errorf("validating keys: %w", err)
	}
	return nil
}

// Sealer builds an initialized Sealer. KeyStore errors are returned as is.
func (k Keys) Sealer() (*sensitive.Sealer, error) {
	s := sensitive.NewSealer()
	if err := s.Init(k.MasterCBCKey, k.RootKeys); err != nil {
		return nil, err
	}
	return s, nil
}

// Walker builds a Walker over a new Sealer with the configured allow-list
// and write switch. An empty Fields list keeps the default allow-list.
func (k Keys) Walker() (*sensitive.Walker, error) {
	s, err := k.Sealer()
	if err != nil {
		return nil, err
	}
	return sensitive.NewWalker(s, k.WalkerOptions()...), nil
}

// WalkerOptions returns the walker options the settings imply.
func (k Keys) WalkerOptions() []sensitive.WalkerOption {
	opts := []sensitive.WalkerOption{sensitive.WithDisableWrite(k.DisableWrite)}
	if len(k.Fields) > 0 {
		opts = append(opts, sensitive.WithFields(sensitive.NewFieldSet(k.Fields...)))
	}
	return opts
}

// LogValue keeps key material out of logs.
func (k Keys) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("root_keys", len(k.RootKeys)),
		slog.Bool("disable_write", k.DisableWrite),
		slog.Int("fields", len(k.Fields)),
	)
}

// rootKeysHook decodes root_keys from an env string, a list or a mapping.
func rootKeysHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(map[string]string{})
	return func(from, to reflect.Type, data any) (any, error) {
		if to != target {
			return data, nil
		}
		switch from.Kind() {
		case reflect.String:
			return parseRootKeys(data.(string))
		case reflect.Slice:
			return parseRootKeyList(data)
		case reflect.Map:
			return checkRootKeyMap(data)
		default:
			return data, nil
		}
	}
}

// parseRootKeyList reads ["0001=abcd..."] or [{version: 0001, key: abcd...}].
func parseRootKeyList(data any) (map[string]string, error) {
	out := make(map[string]string)
	add := func(version, key string) error {
		version, key = strings.TrimSpace(version), strings.TrimSpace(key)
		if version == "" || key == "" {
			return fmt.Errorf("%w: %q=%q", ErrRootKeyPair, version, key)
		}
		if _, ok := out[version]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateVersion, version)
		}
		out[version] = key
		return nil
	}

	items := reflect.ValueOf(data)
	for i := 0; i < items.Len(); i++ {
		switch item := items.Index(i).Interface().(type) {
		case string:
			version, key, ok := strings.Cut(item, "=")
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrRootKeyPair, item)
			}
			if err := add(version, key); err != nil {
				return nil, err
			}
		case map[string]any:
			version, _ := item["version"].(string)
			key, _ := item["key"].(string)
			if err := add(version, key); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: entry %d is %T", ErrRootKeyPair, i, item)
		}
	}
	return out, nil
}

// checkRootKeyMap accepts a mapping only when no version could have lost
// its case.
func checkRootKeyMap(data any) (any, error) {
	m := reflect.ValueOf(data)
	for _, k := range m.MapKeys() {
		version := fmt.Sprint(k.Interface())
		if strings.ToLower(version) != strings.ToUpper(version) {
			return nil, fmt.Errorf("%w: %q", ErrRootKeyCase, version)
		}
	}
	return data, nil
}

// parseRootKeys parses "0001=abcd...,0002=ef01...".
func parseRootKeys(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		version, key, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrRootKeyPair, version)
		}
		out[strings.TrimSpace(version)] = strings.TrimSpace(key)
	}
	return out, nil
}
