// Health Check Lambda entry point
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
		// Report the outage rather than failing cold start.
		utils.GetLogger().Error("Failed to initialize dependencies", utils.Error(err))
		lambda.Start(handlers.NewHealthHandler(nil, nil, cfg.Stage).Handle)
		return
	}
	defer deps.Close()

	lambda.Start(deps.HealthHandler().Handle)
}
