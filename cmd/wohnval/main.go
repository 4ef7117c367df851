package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mkellner/wohnval/internal/calculation"
	"github.com/mkellner/wohnval/internal/config"
	"github.com/mkellner/wohnval/internal/region"
	"github.com/mkellner/wohnval/internal/regulatory"
	"github.com/mkellner/wohnval/internal/report"
	"github.com/mkellner/wohnval/internal/server"
	"github.com/mkellner/wohnval/internal/store"
	"github.com/mkellner/wohnval/internal/tui"
)

// zapCLILogger adapts a zap sugared logger to calculation.Logger.
type zapCLILogger struct {
	s *zap.SugaredLogger
}

func (l zapCLILogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l zapCLILogger) Infof(format string, args ...any)  { l.s.Infof(format, args...) }
func (l zapCLILogger) Warnf(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l zapCLILogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagLogLevel string
	flagFormat   string
)

var rootCmd = &cobra.Command{
	Use:   "wohnval",
	Short: "Housing subsidy application validator",
	Long:  "Validates housing subsidy applications: income eligibility, loan ceilings and cross-form consistency",
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level override (debug, info, warn, error)")

	checkCmd.Flags().StringVar(&flagFormat, "format", "console", "output format (console, json, yaml)")
	validateCmd.Flags().StringVar(&flagFormat, "format", "console", "output format (console, json, yaml)")

	rootCmd.AddCommand(checkCmd, validateCmd, importCmd, serveCmd, tuiCmd, versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by all commands.
func setup() (*config.Configuration, *zap.Logger, error) {
	cfg, err := config.LoadConfiguration(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.InitializeLogger(cfg.Logging, flagLogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// buildEngine assembles a validation engine from config: stores, statutory
// tables and region lookup, with optional override files.
func buildEngine(cfg *config.Configuration, st store.FormStore, logger *zap.Logger) (*calculation.ValidationEngine, error) {
	engine := calculation.NewValidationEngine(st)
	engine.SetLogger(zapCLILogger{s: logger.Sugar()})

	if cfg.RegulatoryFile != "" {
		reg, err := regulatory.LoadFile(cfg.RegulatoryFile)
		if err != nil {
			return nil, fmt.Errorf("loading regulatory overrides: %w", err)
		}
		engine.Regulatory = reg
	}
	if cfg.RegionTableFile != "" {
		lookup, err := region.LoadTable(cfg.RegionTableFile)
		if err != nil {
			return nil, fmt.Errorf("loading region table: %w", err)
		}
		engine.Regions = lookup
	}
	return engine, nil
}

var checkCmd = &cobra.Command{
	Use:   "check [application-file]",
	Short: "Validate an application file offline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		app, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		ms, err := store.FromApplicationFile(app)
		if err != nil {
			return err
		}
		engine, err := buildEngine(cfg, ms, logger)
		if err != nil {
			return err
		}

		res, err := engine.Run(cmd.Context(), app.SubjectID)
		if err != nil {
			return err
		}
		rep := report.Build(res)
		if err := report.Write(os.Stdout, rep, flagFormat); err != nil {
			return err
		}
		if !rep.OK() {
			os.Exit(2)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [subject-id]",
	Short: "Validate a stored application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		engine, err := buildEngine(cfg, db, logger)
		if err != nil {
			return err
		}

		res, err := engine.Run(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		rep := report.Build(res)
		if err := report.Write(os.Stdout, rep, flagFormat); err != nil {
			return err
		}
		if !rep.OK() {
			os.Exit(2)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [application-file...]",
	Short: "Import application files into the snapshot store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		parser := config.NewInputParser()
		for _, path := range args {
			app, err := parser.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := db.ImportApplication(context.Background(), app); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Info("application imported",
				zap.String("file", path),
				zap.String("subject_id", app.SubjectID))
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the validation HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		engine, err := buildEngine(cfg, db, logger)
		if err != nil {
			return err
		}
		return server.New(engine, logger).ListenAndServe(cfg.ListenAddr)
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui [subject-id]",
	Short: "Browse a validation report interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		engine, err := buildEngine(cfg, db, logger)
		if err != nil {
			return err
		}
		return tui.Run(engine, args[0])
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "wohnval %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, "go:", bi.GoVersion)
			}
		},
	}
}
