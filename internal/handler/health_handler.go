package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
)

const healthCheckTimeout = 3 * time.Second

// Pinger : зависимость, доступность которой влияет на readiness
type Pinger interface {
	Check(ctx context.Context) error
}

// NewHealthHandler : /health/live и /health/ready, результаты проверок экспортируются в prometheus
func NewHealthHandler(registry prometheus.Registerer, dependencies map[string]Pinger) http.Handler {
	health := healthcheck.NewMetricsHandler(registry, "gateway")

	for name, dependency := range dependencies {
		health.AddReadinessCheck(name, pingCheck(dependency))
	}

	return http.StripPrefix("/health", health)
}

func pingCheck(dependency Pinger) healthcheck.Check {
	return healthcheck.Timeout(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		return dependency.Check(ctx)
	}, healthCheckTimeout+time.Second)
}
