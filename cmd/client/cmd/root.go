package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"cosmicgarden/internal/app/client"
	"cosmicgarden/internal/app/client/config"
	"cosmicgarden/internal/i18n"
	"cosmicgarden/internal/utils/logger"
)

var (
	cfg        *config.Config
	log        *slog.Logger
	app        *client.App
	locale     i18n.Locale
	debug      bool
	jsonOutput bool
	serverAddr string
	langFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "garden",
	Short: "Cosmic Garden client",
	Long: `Cosmic Garden is a shared night garden grown from messages.
Plant a wish, a memory or a goodbye and watch it bloom as a flower
alongside everyone else's.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(_ *cobra.Command, _ []string) error {
	viper.AutomaticEnv()
	cfg = config.MustLoad()

	if serverAddr != "" {
		cfg.ServerAddress = serverAddr
	}
	if langFlag != "" {
		cfg.Lang = langFlag
	}
	if debug {
		cfg.Env = "local"
	}
	locale = i18n.Parse(cfg.Lang)

	log = logger.New(cfg.Env)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	return nil
}

func init() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "garden server address (host:port)")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "interface language (en or zh)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "machine-readable JSON output")
}
