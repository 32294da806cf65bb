package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/carpetaciudadana/co/internal/config"
)

var (
	envFile     string
	logLevelInt int
	logLevel    zerolog.Level = 1
	// The root command of our program
	rootCmd = &cobra.Command{
		Use:   "carpeta-workflow",
		Short: "Carpeta Ciudadana folder-opening workflow stages.",
		Long: `Each subcommand runs one stage of the folder-opening choreography.
	Stages are stateless and coordinate only through queues, topics and the audit trail.`,
	}
)

// Go, go, go
func main() {
	rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Bind our args to the command
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "The env file to read.")
	rootCmd.PersistentFlags().IntVar(&logLevelInt, "log", 1, "The logging level to use.")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(registraduriaCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(minticCmd)
	rootCmd.AddCommand(emailCmd)
	rootCmd.AddCommand(localCmd)
}

func initConfig() {
	logLevel = zerolog.Level(logLevelInt)

	err := godotenv.Load(envFile)
	if err != nil {
		slog.Info("failed to load env file", "error", err.Error())
	}
}

func runStage(stage func(context.Context, *config.Config) error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zerolog.SetGlobalLevel(logLevel)

	if err := stage(ctx, config.FromEnv()); err != nil {
		log.Error().Err(err).Msg("stage failed")
	}
}
