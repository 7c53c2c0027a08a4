package truthlens

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"truthlens/internal/domain/models"
	"truthlens/internal/streaming"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "truthlens.v1.AnalysisService"

// AnalyzeRequest asks for a verdict on one piece of content
type AnalyzeRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type,omitempty"`
	Language    string `json:"language,omitempty"`
	SourceApp   string `json:"source_app,omitempty"`
}

type AnalyzeResponse struct {
	Result *models.AnalysisResult `json:"result"`
}

type ListPatternsRequest struct{}

type ListPatternsResponse struct {
	Catalog *models.PatternCatalog `json:"catalog"`
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	Engine   models.EngineStats    `json:"engine"`
	Feedback *models.FeedbackStats `json:"feedback,omitempty"`
}

// StreamVerdictsRequest filters the live verdict stream
type StreamVerdictsRequest struct {
	MinRisk    string   `json:"min_risk,omitempty"`
	Patterns   []string `json:"patterns,omitempty"`
	SourceApps []string `json:"source_apps,omitempty"`
}

// AnalysisServiceServer is the server API for truthlens.v1.AnalysisService
type AnalysisServiceServer interface {
	Analyze(context.Context, *AnalyzeRequest) (*AnalyzeResponse, error)
	ListPatterns(context.Context, *ListPatternsRequest) (*ListPatternsResponse, error)
	GetStats(context.Context, *GetStatsRequest) (*GetStatsResponse, error)
	StreamVerdicts(*StreamVerdictsRequest, AnalysisService_StreamVerdictsServer) error
	mustEmbedUnimplementedAnalysisServiceServer()
}

// UnimplementedAnalysisServiceServer provides forward-compatible default implementations
type UnimplementedAnalysisServiceServer struct{}

func (UnimplementedAnalysisServiceServer) Analyze(context.Context, *AnalyzeRequest) (*AnalyzeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Analyze not implemented")
}
func (UnimplementedAnalysisServiceServer) ListPatterns(context.Context, *ListPatternsRequest) (*ListPatternsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListPatterns not implemented")
}
func (UnimplementedAnalysisServiceServer) GetStats(context.Context, *GetStatsRequest) (*GetStatsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetStats not implemented")
}
func (UnimplementedAnalysisServiceServer) StreamVerdicts(*StreamVerdictsRequest, AnalysisService_StreamVerdictsServer) error {
	return status.Errorf(codes.Unimplemented, "method StreamVerdicts not implemented")
}
func (UnimplementedAnalysisServiceServer) mustEmbedUnimplementedAnalysisServiceServer() {}

// AnalysisService_StreamVerdictsServer is the server side of StreamVerdicts
type AnalysisService_StreamVerdictsServer interface {
	Send(*streaming.Event) error
	grpc.ServerStream
}

type analysisServiceStreamVerdictsServer struct {
	grpc.ServerStream
}

func (x *analysisServiceStreamVerdictsServer) Send(e *streaming.Event) error {
	return x.ServerStream.SendMsg(e)
}

// RegisterAnalysisServiceServer registers srv with the gRPC server
func RegisterAnalysisServiceServer(s grpc.ServiceRegistrar, srv AnalysisServiceServer) {
	s.RegisterService(&analysisServiceDesc, srv)
}

var analysisServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalysisServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Analyze", Handler: analyzeHandler},
		{MethodName: "ListPatterns", Handler: listPatternsHandler},
		{MethodName: "GetStats", Handler: getStatsHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "StreamVerdicts", Handler: streamVerdictsHandler, ServerStreams: true},
	},
}

func analyzeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AnalyzeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalysisServiceServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Analyze"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AnalysisServiceServer).Analyze(ctx, req.(*AnalyzeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listPatternsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListPatternsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalysisServiceServer).ListPatterns(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListPatterns"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AnalysisServiceServer).ListPatterns(ctx, req.(*ListPatternsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getStatsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetStatsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalysisServiceServer).GetStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetStats"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AnalysisServiceServer).GetStats(ctx, req.(*GetStatsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func streamVerdictsHandler(srv any, stream grpc.ServerStream) error {
	in := new(StreamVerdictsRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(AnalysisServiceServer).StreamVerdicts(in, &analysisServiceStreamVerdictsServer{stream})
}
