package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raoulx24/dirwatcher/internal/config"
	"github.com/raoulx24/dirwatcher/internal/logging"
	"github.com/raoulx24/dirwatcher/internal/report"
	"github.com/raoulx24/dirwatcher/internal/watcher"
)

type options struct {
	configPath string
	ext        string
	interval   float64
	mode       string
	logLevel   string
	logFormat  string
	report     string
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&options{})
}

func buildRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirwatcher [flags] <path> <magic>",
		Short: "Watch a directory tree for magic text in appended lines",
		Long: "dirwatcher polls a directory recursively for files ending in an extension,\n" +
			"reads the lines appended since the last poll and logs those containing the magic text.",
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, args)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	f.StringVarP(&opts.ext, "ext", "e", config.DefaultExtension, "Text file extension to watch")
	f.Float64VarP(&opts.interval, "interval", "i", config.DefaultInterval.Seconds(), "Number of seconds between polling")
	f.StringVar(&opts.mode, "mode", config.ModePoll, "Wake-up mode: poll, fsnotify or auto")
	f.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	f.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")
	f.StringVar(&opts.report, "report", "", "Cron schedule for status reports, e.g. \"@every 1m\"")

	return cmd
}

// resolveConfig layers defaults, the optional config file, positional
// arguments and explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, opts *options, args []string) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Watch.Root = args[0]
	}
	if len(args) > 1 {
		cfg.Watch.MagicText = args[1]
	}

	f := cmd.Flags()
	if f.Changed("ext") {
		cfg.Watch.Extension = opts.ext
	}
	if f.Changed("interval") {
		cfg.Watch.PollInterval = config.Seconds(opts.interval)
	}
	if f.Changed("mode") {
		cfg.Watch.Mode = opts.mode
	}
	if f.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if f.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}
	if f.Changed("report") {
		cfg.Report.Cron = opts.report
	}

	if cfg.Watch.MagicText == "" && len(args) < 2 {
		return nil, errors.New("magic text is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	log := logging.New(cfg.Logging, cmd.ErrOrStderr())

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			log.Warn("received signal", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	w := watcher.New(cfg.Watch, log)

	if cfg.Report.Cron != "" {
		rep, err := report.New(cfg.Report.Cron, w, log)
		if err != nil {
			return err
		}
		rep.Start()
		defer rep.Stop()
	}

	w.Run(ctx)
	return nil
}
