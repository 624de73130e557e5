// Package grpc exposes the sentiment service over gRPC.
package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/atinyakov/go-sentiment-service/internal/app/response"
	"github.com/atinyakov/go-sentiment-service/internal/app/service"
	"github.com/atinyakov/go-sentiment-service/internal/intercepters"
	"github.com/atinyakov/go-sentiment-service/internal/models"
)

// ErrorDomain is the domain of the ErrorInfo detail attached to failures.
const ErrorDomain = "sentiment.v1"

// Server wraps the gRPC server and dependencies.
type Server struct {
	grpcServer *grpc.Server
	addr       string
	logger     *zap.Logger
}

// New creates a gRPC server listening on addr once started.
func New(addr string, logger *zap.Logger, svc service.SentimentServiceIface) *Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			intercepters.RequestIDInterceptor,
			logging.UnaryServerInterceptor(intercepters.InterceptorLogger(logger)),
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(func(p any) error {
				logger.Error("panic in gRPC handler", zap.Any("panic", p))
				return status.Error(codes.Internal, "Internal server error")
			})),
		),
	)

	RegisterSentimentServer(s, NewSentimentServer(svc, logger))

	return &Server{
		grpcServer: s,
		addr:       addr,
		logger:     logger,
	}
}

// Start listens on the configured address and serves until stopped.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.logger.Error("gRPC server failed to listen", zap.Error(err))
		return err
	}
	return s.Serve(lis)
}

// Serve accepts connections on lis.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	return s.grpcServer.Serve(lis)
}

// GracefulStop shuts down the server gracefully.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// SentimentServerImpl serves the sentiment API on top of the service.
type SentimentServerImpl struct {
	Service  service.SentimentServiceIface
	Composer *response.Composer
	Logger   *zap.Logger
}

func NewSentimentServer(svc service.SentimentServiceIface, logger *zap.Logger) *SentimentServerImpl {
	return &SentimentServerImpl{
		Service:  svc,
		Composer: response.NewComposer(svc.Model()),
		Logger:   logger,
	}
}

// Analyze takes {"text": ...} and returns the analyze envelope.
func (s *SentimentServerImpl) Analyze(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	obj, err := decodeStruct(req)
	if err != nil {
		s.Logger.Error("error in Analyze", zap.Error(err))
		return nil, codeError(response.AnalysisError, response.AnalysisError.Message())
	}

	text, err := models.TextField(obj)
	if err != nil {
		s.Logger.Error("error in Analyze", zap.Error(err))
		return nil, codeError(response.AnalysisError, response.AnalysisError.Message())
	}

	result, err := s.Service.Analyze(ctx, text)
	if err != nil {
		code := response.AnalyzeCode(err)
		if code == response.AnalysisError {
			s.Logger.Error("error in Analyze", zap.Error(err))
		}
		return nil, codeError(code, code.Message())
	}

	return s.envelope(ctx, response.AnalyzeData(*text, result))
}

// Batch takes {"texts": [...]} and returns the batch envelope.
func (s *SentimentServerImpl) Batch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	obj, err := decodeStruct(req)
	if err != nil {
		return nil, codeError(response.InvalidFormat, response.Failure(response.InvalidFormat).Error)
	}

	items, err := models.TextsField(obj)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFormat) {
			return nil, codeError(response.InvalidFormat, response.BatchFormatFailure().Error)
		}
		code := response.BatchCode(err)
		return nil, codeError(code, code.Message())
	}

	outcome, err := s.Service.AnalyzeBatch(ctx, items)
	if err != nil {
		code := response.BatchCode(err)
		if code == response.BatchError {
			s.Logger.Error("error in Batch", zap.Error(err))
		}
		return nil, codeError(code, code.Message())
	}

	return s.envelope(ctx, response.BatchData(outcome))
}

func (s *SentimentServerImpl) envelope(ctx context.Context, data any) (*structpb.Struct, error) {
	env := s.Composer.Success(data, intercepters.RequestID(ctx))

	b, err := json.Marshal(env)
	if err != nil {
		return nil, status.Error(codes.Internal, "Internal server error")
	}

	out := new(structpb.Struct)
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Error(codes.Internal, "Internal server error")
	}
	return out, nil
}

func decodeStruct(req *structpb.Struct) (map[string]json.RawMessage, error) {
	if req == nil {
		return nil, nil
	}
	b, err := protojson.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidFormat, err)
	}
	return models.DecodeObject(b)
}

// codeError converts a failure code to a gRPC status carrying the code as
// ErrorInfo reason.
func codeError(code response.Code, msg string) error {
	c := codes.Internal
	if code.Status() < 500 {
		c = codes.InvalidArgument
	}

	st := status.New(c, msg)
	if detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason: string(code),
		Domain: ErrorDomain,
	}); err == nil {
		st = detailed
	}
	return st.Err()
}

// ReasonOf returns the failure code attached to a gRPC error, or "".
func ReasonOf(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return info.GetReason()
		}
	}
	return ""
}
