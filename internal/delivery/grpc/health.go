package grpc

import (
	"net"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the service reported by the health endpoint besides the overall "" entry.
const ServiceName = "ecommerce.Service"

// HealthServer exposes grpc.health.v1.Health and server reflection.
type HealthServer struct {
	server *grpc.Server
	health *health.Server
	log    *logrus.Logger
}

func NewHealthServer(logger *logrus.Logger) *HealthServer {
	server := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)
	logger.Info("gRPC health and reflection services registered")

	return &HealthServer{
		server: server,
		health: healthServer,
		log:    logger,
	}
}

func (s *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	s.log.Infof("gRPC Handler: Health status set to %s", status)
}

// Serve blocks until the listener fails or the server is stopped.
func (s *HealthServer) Serve(lis net.Listener) error {
	if err := s.server.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

// GracefulStop reports NOT_SERVING to watchers and drains in-flight calls.
func (s *HealthServer) GracefulStop() {
	s.health.Shutdown()
	s.server.GracefulStop()
	s.log.Info("gRPC server gracefully stopped.")
}
