// Package main provides the entry point for the walk-forward validation CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/walkforward/internal/backtest"
	"github.com/yourusername/walkforward/internal/config"
	"github.com/yourusername/walkforward/internal/database"
	"github.com/yourusername/walkforward/internal/logger"
	"github.com/yourusername/walkforward/internal/models"
	"github.com/yourusername/walkforward/internal/repository"
	"github.com/yourusername/walkforward/internal/scheduler"
	"github.com/yourusername/walkforward/internal/walkforward"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile    string
	startOverride string
	endOverride   string
	outputPath    string
	appLog        *logrus.Logger
	cfg           *config.Config
	db            *database.DB
	repos         *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&startOverride, "start-date", "", "Override start date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&endOverride, "end-date", "", "Override end date (YYYY-MM-DD)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Override JSON output path")
	rootCmd.AddCommand(latestCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "walkforward",
	Short: "Walk-forward validation of trading strategies",
	Long:  `Runs walk-forward validation over rolling train/validate windows to detect strategy overfitting through performance degradation analysis.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runValidation()
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recent validation runs",
	Run: func(cmd *cobra.Command, args []string) {
		showLatestRuns(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("walkforward %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg = loaded

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	return nil
}

func buildAdapter() (backtest.Adapter, error) {
	var (
		adapter backtest.Adapter
		err     error
	)
	switch cfg.Backtest.Adapter {
	case "remote":
		adapter, err = backtest.NewRemoteAdapter(&cfg.Backtest, appLog)
	default:
		adapter, err = backtest.NewLocalAdapter(repos.Trade, appLog)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Backtest.CacheEnabled {
		adapter = backtest.NewCachedAdapter(
			adapter,
			time.Duration(cfg.Backtest.CacheTTLSeconds)*time.Second,
			cfg.Backtest.CacheMaxSize,
			appLog,
		)
	}
	return adapter, nil
}

func buildRunConfig() (walkforward.Config, error) {
	runCfg, err := walkforward.FromConfig(&cfg.WalkForward)
	if err != nil {
		return walkforward.Config{}, err
	}
	if startOverride != "" {
		parsed, err := time.Parse("2006-01-02", startOverride)
		if err != nil {
			return walkforward.Config{}, fmt.Errorf("invalid start date: %w", err)
		}
		runCfg.StartDate = parsed
	}
	if endOverride != "" {
		parsed, err := time.Parse("2006-01-02", endOverride)
		if err != nil {
			return walkforward.Config{}, fmt.Errorf("invalid end date: %w", err)
		}
		runCfg.EndDate = parsed
	}
	return runCfg, runCfg.Validate()
}

func runValidation() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		appLog.WithField("signal", sig).Info("Shutdown signal received, cancelling run")
		cancel()
	}()

	adapter, err := buildAdapter()
	if err != nil {
		appLog.WithError(err).Fatal("Failed to build backtest adapter")
	}

	runCfg, err := buildRunConfig()
	if err != nil {
		appLog.WithError(err).Fatal("Invalid walk-forward configuration")
	}

	engine, err := walkforward.NewEngine(runCfg, adapter, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create validation engine")
	}

	if cfg.Scheduler.Enabled {
		runScheduled(ctx, engine)
		return
	}

	if err := executeRun(ctx, engine); err != nil {
		appLog.WithError(err).Fatal("Walk-forward validation failed")
	}
}

func executeRun(ctx context.Context, engine *walkforward.Engine) error {
	result, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(walkforward.GenerateConsoleReport(result))

	exportPath := cfg.WalkForward.OutputPath
	if outputPath != "" {
		exportPath = outputPath
	}
	if exportPath != "" {
		if err := walkforward.ExportToJSON(result, exportPath); err != nil {
			return fmt.Errorf("failed to export result: %w", err)
		}
		appLog.WithField("path", exportPath).Info("Result exported")
	}

	return persistRun(ctx, result)
}

func persistRun(ctx context.Context, result *walkforward.Result) error {
	full, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	run := &models.ValidationRun{
		ID:                    result.RunID,
		RunDate:               result.StartedAt,
		Symbols:               result.Config.Symbols,
		StartDate:             result.Config.StartDate,
		EndDate:               result.Config.EndDate,
		TrainMonths:           result.Config.TrainMonths,
		ValidateMonths:        result.Config.ValidateMonths,
		WindowCount:           result.Summary.WindowCount,
		FailedWindows:         result.Summary.FailedWindows,
		DegradationPercentage: result.Degradation.Percentage,
		Partial:               result.Partial,
		FullResults:           full,
		CreatedAt:             time.Now().UTC(),
	}
	if err := repos.ValidationRun.Save(ctx, run); err != nil {
		return fmt.Errorf("failed to persist validation run: %w", err)
	}
	appLog.WithField("run_id", run.ID).Info("Validation run persisted")
	return nil
}

func runScheduled(ctx context.Context, engine *walkforward.Engine) {
	sched := scheduler.NewScheduler(appLog)
	err := sched.ScheduleRevalidation(cfg.Scheduler.CronExpression, 0, func(jobCtx context.Context) error {
		return executeRun(jobCtx, engine)
	})
	if err != nil {
		appLog.WithError(err).Fatal("Failed to schedule revalidation")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	appLog.WithField("next_run", sched.GetNextRun()).Info("Scheduler running, waiting for shutdown signal")
	<-ctx.Done()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error stopping scheduler")
	}
}

func showLatestRuns(ctx context.Context) {
	runs, err := repos.ValidationRun.GetLatest(ctx, 10)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to load validation runs")
	}
	if len(runs) == 0 {
		fmt.Println("No validation runs recorded")
		return
	}

	fmt.Println("Recent validation runs:")
	for _, run := range runs {
		status := "complete"
		if run.Partial {
			status = "partial"
		}
		fmt.Printf("  %s  %s  %s..%s  windows=%d failed=%d degraded=%.1f%%  %s\n",
			run.RunDate.Format("2006-01-02 15:04"), run.ID,
			run.StartDate.Format("2006-01-02"), run.EndDate.Format("2006-01-02"),
			run.WindowCount, run.FailedWindows, run.DegradationPercentage*100, status)
	}
}
