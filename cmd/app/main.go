package main

import (
	"visaprep/config"
	"visaprep/di"
	"visaprep/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
