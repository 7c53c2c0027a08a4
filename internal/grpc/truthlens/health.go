package truthlens

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// healthInterval is how often dependencies are re-checked
const healthInterval = 10 * time.Second

// Pinger is a dependency the health service watches
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterHealthServer registers the gRPC health service and keeps it in
// sync with deps until ctx is done
func RegisterHealthServer(ctx context.Context, grpcServer *grpc.Server, deps ...Pinger) *health.Server {
	healthServer := health.NewServer()
	setServing(healthServer, checkDeps(ctx, deps))

	go func() {
		ticker := time.NewTicker(healthInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				healthServer.Shutdown()
				return
			case <-ticker.C:
				setServing(healthServer, checkDeps(ctx, deps))
			}
		}
	}()

	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	return healthServer
}

func checkDeps(ctx context.Context, deps []Pinger) bool {
	for _, d := range deps {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := d.Ping(pingCtx)
		cancel()
		if err != nil {
			return false
		}
	}
	return true
}

func setServing(hs *health.Server, ok bool) {
	st := grpc_health_v1.HealthCheckResponse_SERVING
	if !ok {
		st = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	hs.SetServingStatus("", st)
	hs.SetServingStatus(ServiceName, st)
}
