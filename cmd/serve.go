package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/masar-app/recommender/internal/logger"
	"github.com/masar-app/recommender/internal/profile"
	"github.com/masar-app/recommender/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultListenAddr = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recommendations over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address, overrides server.listen from the config")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	engine, err := buildEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	addr := defaultListenAddr
	if config.Server != nil && config.Server.Listen != "" {
		addr = config.Server.Listen
	}
	if flagAddr := viper.GetString("server.listen"); flagAddr != "" {
		addr = flagAddr
	}

	logger.Info("starting the masar-recommender server", zap.String("version", version))

	var loadRecord server.RecordLoader
	if profileFile := config.ProfileFile; profileFile != "" {
		loadRecord = func() (map[string]any, error) {
			return profile.LoadRecord(profileFile)
		}
	}

	srv := server.New(engine, loadRecord, logger)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
