package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bjaus/inspect"
)

var rootCmd = &cobra.Command{
	Use:   "inspect [flags] [file...]",
	Short: "Print data files as inspected values",
	Long: `inspect decodes JSON, YAML, TOML or MessagePack documents and prints them
the way inspect.String renders Go values. With no files it reads stdin.`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	rootCmd.Flags().Int("depth", inspect.DefaultDepth, "container levels to expand (negative for no limit)")
	rootCmd.Flags().Int("string-length", inspect.Unbounded, "characters shown per string (-1 for no limit)")
	rootCmd.Flags().Int("collection-length", inspect.Unbounded, "elements shown per list, set or map (-1 for no limit)")
	rootCmd.Flags().Int("object-length", inspect.Unbounded, "keys shown per object (-1 for no limit)")
	rootCmd.Flags().Bool("columns", false, "count string length in terminal columns instead of runes")
	rootCmd.Flags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.Flags().String("config", "", "YAML or TOML file with default options")
	rootCmd.Flags().String("input", "", "input format (json|yaml|toml|msgpack); default by extension, json for stdin")
	rootCmd.Flags().Bool("watch", false, "re-print the file every time it is written")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}
	input, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		if watch {
			return fmt.Errorf("inspect: --watch requires a file")
		}
		f, err := formatFor("", input)
		if err != nil {
			return err
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		v, err := decode(data, f)
		if err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
		return inspect.Write(out, v, inspect.WithOptions(opts))
	}

	if watch {
		if len(args) != 1 {
			return fmt.Errorf("inspect: --watch takes exactly one file")
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		return watchFile(cmd.Context(), logger, out, args[0], input, opts)
	}

	docs, err := loadFiles(cmd.Context(), args, input)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if len(docs) > 1 {
			if _, err := fmt.Fprintf(out, "==> %s <==\n", doc.path); err != nil {
				return err
			}
		}
		if err := inspect.Write(out, doc.value, inspect.WithOptions(opts)); err != nil {
			return err
		}
	}
	return nil
}

// optionsFromFlags starts from the config file (or defaults) and applies
// every flag the user set explicitly.
func optionsFromFlags(cmd *cobra.Command) (inspect.Options, error) {
	flags := cmd.Flags()
	opts := inspect.DefaultOptions()
	path, err := flags.GetString("config")
	if err != nil {
		return inspect.Options{}, err
	}
	if path != "" {
		loaded, err := inspect.LoadConfig(path)
		if err != nil {
			return inspect.Options{}, err
		}
		opts = loaded
	}
	for name, dst := range map[string]*int{
		"depth":             &opts.Depth,
		"string-length":     &opts.StringLength,
		"collection-length": &opts.CollectionLength,
		"object-length":     &opts.ObjectLength,
	} {
		if !flags.Changed(name) {
			continue
		}
		n, err := flags.GetInt(name)
		if err != nil {
			return inspect.Options{}, err
		}
		*dst = n
	}
	if flags.Changed("columns") {
		columns, err := flags.GetBool("columns")
		if err != nil {
			return inspect.Options{}, err
		}
		opts.Measure = inspect.MeasureRunes
		if columns {
			opts.Measure = inspect.MeasureColumns
		}
	}
	mode, err := flags.GetString("color")
	if err != nil {
		return inspect.Options{}, err
	}
	switch mode {
	case "auto":
		opts.Colors = opts.Colors || isTerminal(cmd.OutOrStdout())
	case "on":
		opts.Colors = true
	case "off":
		opts.Colors = false
	default:
		return inspect.Options{}, fmt.Errorf("inspect: unknown color mode %q", mode)
	}
	if err := opts.Validate(); err != nil {
		return inspect.Options{}, err
	}
	return opts, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
