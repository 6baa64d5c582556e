package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/benlellouch/rdwm/internal/config"
	"github.com/benlellouch/rdwm/internal/manager"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "rdwm",
		Short:   "A tiling window manager for X11",
		Version: fmt.Sprintf("%s (%s, %s)", Version, Commit, BuildTime),
		Run:     runManager,
	}

	rootCmd.Flags().String("config", "", "config file (default is $HOME/.config/rdwm/rdwm.yaml)")
	rootCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().String("metrics-addr", "", "metrics server bind address (empty disables)")

	viper.BindPFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runManager(cmd *cobra.Command, args []string) {
	initConfig()
	logger := initLogger()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	wm, err := manager.New(logger, cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize window manager")
	}

	if addr := viper.GetString("metrics-addr"); addr != "" {
		startMetricsServer(logger, addr)
	}

	if err := wm.Run(context.Background()); err != nil {
		logger.WithError(err).Fatal("Window manager stopped")
	}
}

// startMetricsServer exposes the prometheus counters on a side listener.
// It shares nothing with the event loop beyond the default registry.
func startMetricsServer(logger *logrus.Logger, addr string) {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	go func() {
		logger.WithField("addr", addr).Info("Starting metrics server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Metrics server failed")
		}
	}()
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "rdwm"))
		viper.SetConfigName("rdwm")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("RDWM")
	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func initLogger() *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	})

	return logger
}
