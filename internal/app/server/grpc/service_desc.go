package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Full method names of the sentiment service. Requests and responses are
// google.protobuf.Struct values shaped like the HTTP JSON bodies.
const (
	ServiceName   = "sentiment.v1.SentimentService"
	AnalyzeMethod = "/" + ServiceName + "/Analyze"
	BatchMethod   = "/" + ServiceName + "/Batch"
)

// SentimentServer is the server API of the sentiment service.
type SentimentServer interface {
	Analyze(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Batch(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterSentimentServer registers srv on s.
func RegisterSentimentServer(s grpc.ServiceRegistrar, srv SentimentServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the sentiment service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SentimentServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Analyze", Handler: analyzeHandler},
		{MethodName: "Batch", Handler: batchHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sentiment/v1/sentiment.proto",
}

func analyzeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SentimentServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AnalyzeMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SentimentServer).Analyze(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func batchHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SentimentServer).Batch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BatchMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SentimentServer).Batch(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls the sentiment service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Analyze(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AnalyzeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Batch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, BatchMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
