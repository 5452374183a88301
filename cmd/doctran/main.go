package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/nuttapol-k/doctran/internal/batch"
	"github.com/nuttapol-k/doctran/internal/config"
	"github.com/nuttapol-k/doctran/pkg/log"
)

func main() {
	// Optional .env file; environment variables win over nothing here,
	// flags win over everything.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, err := config.NewFromEnv()
	if err != nil {
		// Defaults are valid, so this only happens with a broken
		// environment. Fall back and surface the problem at startup.
		cfg = &config.Config{}
		log.Warn("Invalid environment configuration: %v", err)
	}

	var noProgress bool

	root := &cobra.Command{
		Use:   "doctran",
		Short: "Batch-translate documents from one language to another",
		Long: `doctran mirrors a directory of documents (Excel, Word, PDF, CSV, plain
text) into a target directory, translating text content through an online
provider. Translations are cached on disk so repeated runs only pay for
new text, and already-translated files are skipped entirely.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noProgress {
				cfg.Progress = false
			}
			return initLogging(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cfg)
			if err != nil {
				return err
			}
			return runner.Run(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfg.SourceDir, "source", "s", cfg.SourceDir, "source directory holding the documents to translate")
	flags.StringVarP(&cfg.TargetDir, "target", "t", cfg.TargetDir, "target directory receiving the translated mirror")
	flags.StringVar(&cfg.SourceLang, "from", cfg.SourceLang, "source language code")
	flags.StringVar(&cfg.TargetLang, "to", cfg.TargetLang, "target language code")
	flags.StringVar(&cfg.CacheFile, "cache", cfg.CacheFile, "translation cache file (default: translation_cache.json inside the target directory)")
	flags.BoolVarP(&cfg.Recursive, "recursive", "r", cfg.Recursive, "walk the source tree recursively")
	flags.StringSliceVar(&cfg.Extensions, "ext", cfg.Extensions, "file extensions to process")
	flags.DurationVar(&cfg.RequestDelay, "delay", cfg.RequestDelay, "pause after each translation request")
	flags.StringVar(&cfg.SourceScript, "script", cfg.SourceScript, "Unicode script name overriding the source language's script")
	flags.BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error, fatal)")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stdout")

	_ = root.MarkPersistentFlagRequired("source")
	_ = root.MarkPersistentFlagRequired("target")

	root.AddCommand(newWatchCmd(cfg))
	return root
}

func newWatchCmd(cfg *config.Config) *cobra.Command {
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Run the batch on a cron schedule",
		Long: `watch keeps the process alive and re-runs the batch on a cron schedule.
Runs are idempotent: files whose translated counterpart already exists are
skipped, so each fire only processes documents added since the last one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(cfg)
			if err != nil {
				return err
			}

			c := cron.New()
			service := batch.NewWatchService(runner, c, cfg.CronExpr)
			if err := service.Schedule(cmd.Context()); err != nil {
				return fmt.Errorf("invalid cron expression %q: %w", cfg.CronExpr, err)
			}

			// First run immediately, then follow the schedule.
			if err := runner.Run(cmd.Context()); err != nil {
				log.Error("Initial batch run failed: %v", err)
			}
			c.Run()
			return nil
		},
	}
	watch.Flags().StringVar(&cfg.CronExpr, "cron", cfg.CronExpr, "cron expression for scheduled runs")
	return watch
}

func newRunner(cfg *config.Config) (*batch.Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return batch.NewRunner(batch.Options{
		SourceDir:  cfg.SourceDir,
		TargetDir:  cfg.TargetDir,
		SourceLang: cfg.SourceLang,
		TargetLang: cfg.TargetLang,
		CachePath:  cfg.CacheFile,
		Recursive:  cfg.Recursive,
		Extensions: cfg.Extensions,
		Delay:      cfg.RequestDelay,
		Script:     cfg.SourceScript,
		Progress:   cfg.Progress,
	})
}

func initLogging(cfg *config.Config) error {
	level := log.ParseLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		if _, err := log.InitFileLogger(cfg.LogFile, level); err != nil {
			return fmt.Errorf("failed to initialize file logging: %w", err)
		}
		return nil
	}
	log.InitLogger(level)
	return nil
}
