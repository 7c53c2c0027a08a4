package truthlens

import (
	"context"

	"google.golang.org/grpc"

	"truthlens/internal/streaming"
)

// Client calls AnalysisService over a connection. Calls use the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Analyze(ctx context.Context, in *AnalyzeRequest, opts ...grpc.CallOption) (*AnalyzeResponse, error) {
	out := new(AnalyzeResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Analyze", in, out, c.opts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPatterns(ctx context.Context, in *ListPatternsRequest, opts ...grpc.CallOption) (*ListPatternsResponse, error) {
	out := new(ListPatternsResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ListPatterns", in, out, c.opts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*GetStatsResponse, error) {
	out := new(GetStatsResponse)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetStats", in, out, c.opts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// VerdictStream receives events from StreamVerdicts
type VerdictStream struct {
	grpc.ClientStream
}

func (x *VerdictStream) Recv() (*streaming.Event, error) {
	m := new(streaming.Event)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Client) StreamVerdicts(ctx context.Context, in *StreamVerdictsRequest, opts ...grpc.CallOption) (*VerdictStream, error) {
	stream, err := c.cc.NewStream(ctx, &analysisServiceDesc.Streams[0], "/"+ServiceName+"/StreamVerdicts", c.opts(opts)...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &VerdictStream{stream}, nil
}

func (c *Client) opts(extra []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, extra...)
}
