// Package rpc describes the talent gRPC service. Messages are protobuf
// well-known types, so no generated code is needed: builds travel as
// StringValue and results as Struct holding the JSON form of the record or
// diff.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "talent.v1.TalentService"

	ParseMethod = "/" + ServiceName + "/Parse"
	DiffMethod  = "/" + ServiceName + "/Diff"

	// field names of the Diff request struct
	BaselineField  = "baseline"
	CandidateField = "candidate"
)

type TalentServiceServer interface {
	Parse(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error)
	Diff(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

func RegisterTalentServiceServer(s grpc.ServiceRegistrar, srv TalentServiceServer) {
	s.RegisterService(&TalentServiceDesc, srv)
}

var TalentServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TalentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Parse", Handler: parseHandler},
		{MethodName: "Diff", Handler: diffHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func parseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TalentServiceServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ParseMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TalentServiceServer).Parse(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func diffHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TalentServiceServer).Diff(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DiffMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TalentServiceServer).Diff(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
