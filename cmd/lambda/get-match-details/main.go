// GetMatchDetails Lambda entry point
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"compatibility-engine/internal/config"
	"compatibility-engine/internal/handlers"
	"compatibility-engine/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	deps, err := handlers.NewDependencies(cfg)
	if err != nil {
		panic("Failed to create handler: " + err.Error())
	}
	defer deps.Close()

	handler := handlers.NewMatchDetailsHandler(deps.Matcher, cfg.RequestTimeout)

	lambda.Start(handler.Handle)
}
