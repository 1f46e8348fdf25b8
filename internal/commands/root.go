package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zoobzio/sensitive"
	"github.com/zoobzio/sensitive/bson"
	"github.com/zoobzio/sensitive/config"
	"github.com/zoobzio/sensitive/json"
	"github.com/zoobzio/sensitive/msgpack"
	"github.com/zoobzio/sensitive/yaml"
)

// ErrUnknownFormat indicates a --format value with no codec.
var ErrUnknownFormat = errors.New("unknown document format")

// options carries state shared by every subcommand.
type options struct {
	v      *viper.Viper
	logger *slog.Logger
}

// NewRootCommand creates the root command with common configuration.
// Persistent flags may also be set through SENSITIVE_CONFIG,
// SENSITIVE_FORMAT and SENSITIVE_VERBOSE.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{
		v:      viper.New(),
		logger: slog.New(slog.DiscardHandler),
	}

	root := &cobra.Command{
		Use:   "sensitivectl [flags] command",
		Short: "Field-level envelope encryption for PII",
		Long: `Seal and open personally identifiable fields in JSON, YAML, MessagePack
and BSON documents, using versioned root keys and per-value data keys.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if opts.v.GetBool("verbose") {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "Path to the key file (yaml, json or toml)")
	flags.StringP("format", "f", "json", "Document format: json, yaml, msgpack or bson")
	flags.BoolP("verbose", "v", false, "Log at debug level")

	opts.v.SetEnvPrefix(config.EnvPrefix)
	opts.v.AutomaticEnv()
	for _, name := range []string{"config", "format", "verbose"} {
		_ = opts.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newKeygenCommand(opts),
		newEncryptCommand(opts),
		newDecryptCommand(opts),
		newIndexCommand(opts),
		newInspectCommand(opts),
		newDumpCommand(opts),
		newLoadCommand(opts),
		newMaskCommand(opts),
	)

	return root
}

// keys loads key material from --config and the environment.
func (o *options) keys() (*config.Keys, error) {
	keys, err := config.Load(o.v.GetString("config"))
	if err != nil {
		return nil, err
	}
	o.logger.Debug("keys loaded", slog.Any("keys", keys))
	return keys, nil
}

func (o *options) sealer() (*sensitive.Sealer, error) {
	keys, err := o.keys()
	if err != nil {
		return nil, err
	}
	return keys.Sealer()
}

func (o *options) document() (*sensitive.Document, error) {
	codec, err := codecFor(o.v.GetString("format"))
	if err != nil {
		return nil, err
	}
	keys, err := o.keys()
	if err != nil {
		return nil, err
	}
	walker, err := keys.Walker()
	if err != nil {
		return nil, err
	}
	return sensitive.NewDocument(codec, walker), nil
}

func codecFor(format string) (sensitive.DocumentCodec, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.New(), nil
	case "yaml", "yml":
		return yaml.New(), nil
	case "msgpack":
		return msgpack.New(), nil
	case "bson":
		return bson.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
