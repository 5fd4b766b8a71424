//go:build gcloud

package main

import (
	"context"
	"os"

	"github.com/KasumiMercury/primind-push-dispatch/internal/config"
	"github.com/KasumiMercury/primind-push-dispatch/internal/observability"
	"github.com/KasumiMercury/primind-push-dispatch/internal/observability/logging"
)

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "push-dispatch"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	samplingRate := 0.1
	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
		SamplingRate:  samplingRate,
		LogLevel:      cfg.LogLevel,
		DefaultModule: logging.Module("push-dispatch"),
	})
}
