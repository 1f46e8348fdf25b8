package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sensitive"
)

const firstVersion = "0001"

func newKeygenCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a root key or master key",
		Long: `Generate a random root key and print it as version=key, the form read by
SENSITIVE_ROOT_KEYS. The version follows the latest configured root key.
With --master, print a 64 hex character master cbc key instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			master, _ := cmd.Flags().GetBool("master")

			size := sensitive.RootKeyHexLen / 2
			if master {
				size = sensitive.MasterKeyHexLen / 2
			}
			key := make([]byte, size)
			if _, err := rand.Read(key); err != nil {
				return fmt.Errorf("generating key: %w", err)
			}

			if master {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(key))
				return err
			}

			version, err := nextVersion(opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", version, hex.EncodeToString(key))
			return err
		},
	}

	cmd.Flags().Bool("master", false, "Generate a master cbc key instead of a root key")

	return cmd
}

// nextVersion suggests the version after the latest configured root key.
// Without usable key material it starts at 0001.
func nextVersion(opts *options) (string, error) {
	keys, err := opts.keys()
	if err != nil {
		opts.logger.Debug("no usable keys, starting a new version sequence", slog.Any("error", err))
		return firstVersion, nil
	}

	ks, err := sensitive.NewKeyStore(keys.MasterCBCKey, keys.RootKeys)
	if err != nil {
		return "", err
	}
	return incrementVersion(ks.LatestVersion())
}

func incrementVersion(latest string) (string, error) {
	n, err := strconv.ParseUint(latest, 10, 16)
	if err != nil || n >= 9999 {
		return "", fmt.Errorf("cannot suggest a version after %q", latest)
	}
	return fmt.Sprintf("%04d", n+1), nil
}
