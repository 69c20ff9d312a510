package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/wirechan-dev/wirechan/internal/config"
	"github.com/wirechan-dev/wirechan/internal/logger"
	"github.com/wirechan-dev/wirechan/internal/router"
	"github.com/wirechan-dev/wirechan/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Storage.Cleanup()
	if deps.Redis != nil {
		defer deps.Redis.Close()
	}

	r := router.New(deps)

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	logger.Log.Info("server started", "port", httpPort)
	log.Fatal(http.ListenAndServe(":"+httpPort, r))
}
