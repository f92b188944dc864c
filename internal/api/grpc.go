package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// SimulateMethod is the full gRPC method name.
const SimulateMethod = "/legendsim.v1.Simulator/Simulate"

// SimulatorServer takes and returns google.protobuf.Struct messages:
//
//	request:  {win_rate, runs?, start_stars?, seed?}
//	response: {request_id, win_rate, runs, mean, games, capped}
type SimulatorServer interface {
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func _Simulator_Simulate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulatorServer).Simulate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SimulateMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SimulatorServer).Simulate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var Simulator_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "legendsim.v1.Simulator",
	HandlerType: (*SimulatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Simulate",
			Handler:    _Simulator_Simulate_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "legendsim/v1/simulator.proto",
}

func RegisterSimulatorServer(s grpc.ServiceRegistrar, srv SimulatorServer) {
	s.RegisterService(&Simulator_ServiceDesc, srv)
}

// SimulatorClient calls the Simulator service.
type SimulatorClient struct {
	cc grpc.ClientConnInterface
}

func NewSimulatorClient(cc grpc.ClientConnInterface) *SimulatorClient {
	return &SimulatorClient{cc: cc}
}

func (c *SimulatorClient) Simulate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SimulateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type grpcServer struct {
	svc *Service
}

// NewGRPCServer returns a server with the Simulator service registered.
func NewGRPCServer(svc *Service, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(logUnary))
	s := grpc.NewServer(opts...)
	RegisterSimulatorServer(s, &grpcServer{svc: svc})
	return s
}

func (g *grpcServer) Simulate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := requestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := g.svc.Simulate(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]interface{}{
		"request_id": res.RequestID,
		"win_rate":   res.WinRate,
		"runs":       res.Runs,
		"mean":       res.Mean,
		"games":      res.Games,
		"capped":     res.Capped,
	})
}

func toStatus(err error) error {
	switch {
	case isBadRequest(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func requestFromStruct(in *structpb.Struct) (Request, error) {
	var req Request
	fields := in.GetFields()

	wr, ok, err := number(fields, "win_rate")
	if err != nil {
		return Request{}, err
	}
	if !ok {
		return Request{}, errors.New("missing win_rate")
	}
	req.WinRate = wr

	if v, ok, err := integer(fields, "runs"); err != nil {
		return Request{}, err
	} else if ok {
		if v < 0 || v > MaxRuns {
			return Request{}, ErrInvalidRuns
		}
		req.Runs = int(v)
	}
	if v, ok, err := integer(fields, "start_stars"); err != nil {
		return Request{}, err
	} else if ok {
		if v < 0 || v > math.MaxInt32 {
			return Request{}, ErrInvalidStartStars
		}
		n := int(v)
		req.StartStars = &n
	}
	if v, ok, err := integer(fields, "seed"); err != nil {
		return Request{}, err
	} else if ok {
		// every float64 below 2^64 converts exactly
		if v < 0 || v >= 1<<64 {
			return Request{}, errors.New("invalid seed")
		}
		seed := uint64(v)
		req.Seed = &seed
	}
	return req, nil
}

func number(fields map[string]*structpb.Value, key string) (float64, bool, error) {
	v, ok := fields[key]
	if !ok {
		return 0, false, nil
	}
	n, isNum := v.GetKind().(*structpb.Value_NumberValue)
	if !isNum {
		return 0, false, fmt.Errorf("invalid %s: not a number", key)
	}
	return n.NumberValue, true, nil
}

func integer(fields map[string]*structpb.Value, key string) (float64, bool, error) {
	v, ok, err := number(fields, key)
	if err != nil || !ok {
		return 0, ok, err
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("invalid %s: not an integer", key)
	}
	return v, true, nil
}

func logUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.Printf("grpc %s code=%s took=%s", info.FullMethod, status.Code(err), time.Since(start))
	return resp, err
}
