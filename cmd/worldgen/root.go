package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/phrazzld/triquetra-api/internal/api"
	"github.com/phrazzld/triquetra-api/internal/bootstrap"
	"github.com/phrazzld/triquetra-api/internal/config"
	"github.com/phrazzld/triquetra-api/internal/domain"
	"github.com/phrazzld/triquetra-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configFile string
	envFile    string
	timeout    time.Duration
	demo       bool
	logLevel   string
}

// generatorFactory builds the generator a command runs against.
type generatorFactory func(ctx context.Context, opts options, stderr io.Writer) (api.Generator, error)

// newGenerator loads configuration the way the server does and wires the
// generation service. Logs go to stderr so stdout stays pure JSON.
func newGenerator(ctx context.Context, opts options, stderr io.Writer) (api.Generator, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		DotEnvPath: opts.envFile,
		ConfigFile: opts.configFile,
	})
	if err != nil {
		return nil, err
	}
	if opts.demo {
		cfg.Provider.APIToken = ""
	}

	level := cfg.Server.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	l, err := logger.SetupWithWriter(logger.Config{Level: level}, stderr)
	if err != nil {
		return nil, err
	}

	return bootstrap.NewService(ctx, l, cfg)
}

func newRootCmd(stdout, stderr io.Writer, factory generatorFactory) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "worldgen",
		Short: "Generate images for a prompt across three parallel worlds",
		Long: `worldgen sends a prompt through the Triquetra generation service and
prints the result as JSON.

Available subcommands:
  one    - Generate a single image, optionally styled for one world
  all    - Generate one image per world
  worlds - List the configured worlds`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "path to a config.yaml (default: search ./ and ./config)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "overall deadline for the command")
	flags.BoolVar(&opts.demo, "demo", false, "ignore any configured credential and return placeholders")
	flags.StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		newOneCmd(&opts, factory),
		newAllCmd(&opts, factory),
		newWorldsCmd(),
	)

	return root
}

func newOneCmd(opts *options, factory generatorFactory) *cobra.Command {
	var world string

	cmd := &cobra.Command{
		Use:   "one PROMPT",
		Short: "Generate a single image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			gen, err := factory(ctx, *opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			result, err := gen.GenerateOne(ctx, args[0], domain.WorldKey(world))
			if err != nil {
				return describe(err)
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&world, "world", "w", "", "world to style the prompt for (happened, couldHave, shouldHave)")

	return cmd
}

func newAllCmd(opts *options, factory generatorFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "all PROMPT",
		Short: "Generate one image per world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			gen, err := factory(ctx, *opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			results, err := gen.GenerateAll(ctx, args[0])
			if err != nil {
				return describe(err)
			}

			failed := 0
			for _, r := range results {
				if r.Error {
					failed++
				}
			}
			if failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d of %d worlds failed\n", failed, len(results))
			}

			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
}

func newWorldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worlds",
		Short: "List the configured worlds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			worlds := domain.Worlds()
			out := make([]api.WorldResponse, len(worlds))
			for i, w := range worlds {
				out[i] = api.WorldToResponse(w)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

// describe swaps err for the message an API client would have seen, keeping
// the original chain for errors.Is.
func describe(err error) error {
	return fmt.Errorf("%s: %w", api.GetSafeErrorMessage(err), err)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
