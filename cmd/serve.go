package cmd

import (
	"context"
	"log"

	"github.com/davidlpuk/cv-tailor/internal/api"
	"github.com/davidlpuk/cv-tailor/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultServeAddress = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tailoring pipeline as an HTTP service",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address (default "+defaultServeAddress+")")

	viper.BindPFlag("serve.address", serveCmd.Flags().Lookup("address"))
}

func serve(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	p, err := buildPipeline(ctx, config, logger)
	if err != nil {
		logger.Fatal("assembling the pipeline", zap.Error(err))
	}

	address := viper.GetString("serve.address")
	if address == "" {
		address = defaultServeAddress
	}

	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, p, logger)

	logger.Info("starting the cv-tailor http server",
		zap.String("version", version),
		zap.String("address", address),
	)

	if err := router.Run(address); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
