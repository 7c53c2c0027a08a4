package truthlens

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"truthlens/internal/detection"
	"truthlens/internal/domain/models"
	"truthlens/internal/domain/services"
	"truthlens/internal/streaming"
	"truthlens/pkg/logger"
)

// Server implements the AnalysisService gRPC server
type Server struct {
	UnimplementedAnalysisServiceServer

	analysis *services.AnalysisService
	feedback *services.FeedbackService
	events   *streaming.EventBus
	logger   *logger.Logger
}

// NewServer creates a new gRPC server. feedback and events may be nil.
func NewServer(
	analysis *services.AnalysisService,
	feedback *services.FeedbackService,
	events *streaming.EventBus,
	log *logger.Logger,
) *Server {
	return &Server{
		analysis: analysis,
		feedback: feedback,
		events:   events,
		logger:   log.WithComponent("grpc-server"),
	}
}

// Register registers the server with a gRPC server
func (s *Server) Register(grpcServer *grpc.Server) {
	RegisterAnalysisServiceServer(grpcServer, s)
}

// Analyze scores a single piece of content
func (s *Server) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, status.Error(codes.InvalidArgument, "content is required")
	}

	res, err := s.analysis.Analyze(ctx, models.AnalysisRequest{
		Content:     req.Content,
		ContentType: models.ContentType(req.ContentType),
		Language:    req.Language,
		SourceApp:   req.SourceApp,
	})
	if err != nil {
		return nil, toStatus(err)
	}

	return &AnalyzeResponse{Result: res}, nil
}

// ListPatterns returns the rule and domain catalog
func (s *Server) ListPatterns(ctx context.Context, _ *ListPatternsRequest) (*ListPatternsResponse, error) {
	return &ListPatternsResponse{Catalog: s.analysis.Patterns()}, nil
}

// GetStats returns engine counters and, when stored, feedback totals
func (s *Server) GetStats(ctx context.Context, _ *GetStatsRequest) (*GetStatsResponse, error) {
	resp := &GetStatsResponse{Engine: s.analysis.Stats()}

	if s.feedback != nil {
		stats, err := s.feedback.Stats(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to load feedback stats")
		} else {
			resp.Feedback = stats
		}
	}

	return resp, nil
}

// StreamVerdicts sends completed verdicts matching the filter until the client leaves
func (s *Server) StreamVerdicts(req *StreamVerdictsRequest, stream AnalysisService_StreamVerdictsServer) error {
	if s.events == nil {
		return status.Error(codes.Unavailable, "event stream is not enabled")
	}

	minRisk := models.RiskLevel(strings.ToLower(req.MinRisk))
	if minRisk != "" && !minRisk.IsValid() {
		return status.Errorf(codes.InvalidArgument, "unknown risk level %q", req.MinRisk)
	}

	ctx := stream.Context()
	events, unsubscribe := s.events.Subscribe(ctx, &streaming.Subscription{
		Types:      []streaming.EventType{streaming.EventTypeAnalysisCompleted},
		MinRisk:    minRisk,
		Patterns:   req.Patterns,
		SourceApps: req.SourceApps,
	})
	defer unsubscribe()

	s.logger.Info().Str("min_risk", string(minRisk)).Msg("client connected to verdict stream")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("client disconnected from verdict stream")
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.Send(event); err != nil {
				return err
			}
		}
	}
}

// UnaryLoggingInterceptor logs every unary call with its status and latency
func UnaryLoggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	log = log.WithComponent("grpc")
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		log.WithFields(map[string]any{
			"method": info.FullMethod,
			"code":   status.Code(err).String(),
		}).Info().
			Dur("duration", time.Since(start)).
			Msg("rpc completed")

		return resp, err
	}
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, detection.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "analysis failed")
	}
}
