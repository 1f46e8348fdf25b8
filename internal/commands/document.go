package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zoobzio/sensitive"
)

type documentOp func(doc *sensitive.Document, ctx context.Context, data []byte) ([]byte, error)

func newDumpCommand(opts *options) *cobra.Command {
	return newDocumentCommand(opts, "dump", "Seal allow-listed fields of documents", (*sensitive.Document).Store)
}

func newLoadCommand(opts *options) *cobra.Command {
	return newDocumentCommand(opts, "load", "Open sealed fields of documents", (*sensitive.Document).Load)
}

func newMaskCommand(opts *options) *cobra.Command {
	return newDocumentCommand(opts, "mask", "Open and mask allow-listed fields of documents for display", (*sensitive.Document).Display)
}

// newDocumentCommand runs op over stdin or over each file argument. Files are
// processed in parallel; results go to stdout in argument order, or back to
// the files with --write.
func newDocumentCommand(opts *options, name, short string, op documentOp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " [flags] [files...]",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.document()
			if err != nil {
				return err
			}

			write, _ := cmd.Flags().GetBool("write")
			parallel, _ := cmd.Flags().GetInt("parallel")

			if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
				if write {
					return errors.New("--write needs file arguments")
				}
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				out, err := runDocument(cmd.Context(), opts.logger, name, doc, op, "-", data)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			results := make([][]byte, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(parallel, 1))

			for i, path := range args {
				g.Go(func() error {
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("reading %s: %w", path, err)
					}
					out, err := runDocument(ctx, opts.logger, name, doc, op, path, data)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					if write {
						return writeFile(path, out)
					}
					results[i] = out
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if write {
				return nil
			}
			for _, out := range results {
				if _, err := cmd.OutOrStdout().Write(out); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, "Write results back to the input files")
	cmd.Flags().IntP("parallel", "j", runtime.NumCPU(), "Number of files processed at once")

	return cmd
}

func runDocument(ctx context.Context, logger *slog.Logger, name string, doc *sensitive.Document, op documentOp, source string, data []byte) ([]byte, error) {
	start := time.Now()
	out, err := op(doc, ctx, data)
	if err != nil {
		return nil, err
	}
	logger.Debug("document processed",
		slog.String("command", name),
		slog.String("source", source),
		slog.String("content_type", doc.ContentType()),
		slog.Int("input_size", len(data)),
		slog.Int("output_size", len(out)),
		slog.Duration("duration", time.Since(start)),
	)
	return out, nil
}

// writeFile replaces path, keeping its permissions.
func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
