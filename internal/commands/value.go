package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/sensitive"
)

func newEncryptCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] value",
		Aliases: []string{"enc"},
		Short:   "Seal a single value",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sealer, err := opts.sealer()
			if err != nil {
				return err
			}

			var scalarOpts []sensitive.ScalarOption
			if lower, _ := cmd.Flags().GetBool("lower"); lower {
				scalarOpts = append(scalarOpts, sensitive.WithLowerCase())
			}

			out, err := sensitive.NewScalar(sealer, scalarOpts...).Dump(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().Bool("lower", false, "Lower-case the value before sealing")

	return cmd
}

func newDecryptCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt value",
		Aliases: []string{"dec"},
		Short:   "Open a single value",
		Long: `Open an envelope. Values that are not envelopes, or that cannot be opened,
are printed unchanged; use inspect to see why.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sealer, err := opts.sealer()
			if err != nil {
				return err
			}

			out, err := sensitive.NewScalar(sealer).Load(args[0])
			if err != nil {
				return err
			}
			if out == args[0] && sensitive.IsEncrypted(out) {
				opts.logger.Warn("envelope returned unchanged")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newIndexCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "index value",
		Short: "Print the blind index of a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sealer, err := opts.sealer()
			if err != nil {
				return err
			}

			out, err := sealer.BlindIndex(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

// inspection is the report printed by inspect. It never carries plaintext.
type inspection struct {
	Shape      string `yaml:"shape"`
	Version    string `yaml:"version,omitempty"`
	WrappedKey string `yaml:"wrapped_key,omitempty"`
	Digest     string `yaml:"digest,omitempty"`
	Payload    string `yaml:"payload,omitempty"`
	Outcome    string `yaml:"outcome"`
	Reason     string `yaml:"reason,omitempty"`
}

func newInspectCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect value",
		Short: "Report the envelope fields of a value and whether it opens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sealer, err := opts.sealer()
			if err != nil {
				return err
			}

			report := inspect(args[0])
			res, err := sealer.Open(args[0])
			if err != nil {
				return err
			}
			report.Outcome = res.Outcome.String()
			if res.Reason != nil {
				report.Reason = res.Reason.Error()
			}
			opts.logger.Debug("inspected", slog.String("shape", report.Shape), slog.String("outcome", report.Outcome))

			data, err := yaml.Marshal(report)
			if err != nil {
				return fmt.Errorf("encoding report: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func inspect(value string) inspection {
	parts := sensitive.EnvelopeFields(value)
	switch {
	case len(parts) == 4:
		return inspection{Shape: "envelope", Version: parts[0], WrappedKey: parts[1], Digest: parts[2], Payload: parts[3]}
	case len(parts) == 2:
		return inspection{Shape: "legacy", Version: parts[0], Payload: parts[1]}
	default:
		return inspection{Shape: "plain"}
	}
}
