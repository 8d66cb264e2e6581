package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/on-the-ground/grimoire/config"
	"github.com/on-the-ground/grimoire/log"
)

const tracerName = "github.com/on-the-ground/grimoire"

var (
	// configFile is set by the --config flag.
	configFile string

	// env is built by PersistentPreRunE and released by closeRuntime.
	env *runtime
)

// runtime carries what every subcommand needs.
type runtime struct {
	cfg      config.Config
	logger   *zap.Logger
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	out      io.Writer
}

func (r *runtime) close(ctx context.Context) error {
	_ = r.logger.Sync()
	if r.provider != nil {
		return r.provider.Shutdown(ctx)
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "grimoire",
	Short: "Grimoire runs small functional-programming demos",
	Long: `Grimoire demonstrates closures, higher-order functions, memoization,
type-based dispatch and composable call decorators. Each subcommand runs
one set of demos and prints the results.`,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
}

func init() {
	// finalizers run even when a command fails, unlike PersistentPostRunE
	cobra.OnFinalize(closeRuntime)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (YAML); GRIMOIRE_* env vars override it")

	rootCmd.AddCommand(closuresCmd)
	rootCmd.AddCommand(higherCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(decoratorsCmd)
}

// closeRuntime flushes the logger and shuts the tracer provider down.
func closeRuntime() {
	if env == nil {
		return
	}
	if err := env.close(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "close runtime:", err)
	}
	env = nil
}

// initRuntime loads config and builds the logger and optional tracer.
func initRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := log.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	r := &runtime{cfg: cfg, logger: logger, out: cmd.OutOrStdout()}
	if cfg.Tracing.Enabled {
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(cmd.ErrOrStderr()),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("build trace exporter: %w", err)
		}
		r.provider = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		r.tracer = r.provider.Tracer(tracerName)
	}

	env = r
	return nil
}

func (r *runtime) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
