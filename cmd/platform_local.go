//go:build !gcloud

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

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		LogLevel:      cfg.LogLevel,
		DefaultModule: logging.Module("push-dispatch"),
	})
}
