// Package directory は directory.v1.DirectoryService の gRPC サービス定義です。
// メッセージには protobuf の Well-Known Types を使い、専用の .proto を持ちません。
package directory

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "directory.v1.DirectoryService"

	ListEmployeesMethod    = "/" + ServiceName + "/ListEmployees"
	CreateEmployeeMethod   = "/" + ServiceName + "/CreateEmployee"
	DeleteEmployeeMethod   = "/" + ServiceName + "/DeleteEmployee"
	ValidateEmployeeMethod = "/" + ServiceName + "/ValidateEmployee"
)

// DirectoryServiceServer はサーバー側の実装が満たすインターフェースです。
type DirectoryServiceServer interface {
	ListEmployees(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	CreateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteEmployee(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
	ValidateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedDirectoryServiceServer は未実装のメソッドに Unimplemented を返します。
type UnimplementedDirectoryServiceServer struct{}

func (UnimplementedDirectoryServiceServer) ListEmployees(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEmployees not implemented")
}

func (UnimplementedDirectoryServiceServer) CreateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateEmployee not implemented")
}

func (UnimplementedDirectoryServiceServer) DeleteEmployee(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteEmployee not implemented")
}

func (UnimplementedDirectoryServiceServer) ValidateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ValidateEmployee not implemented")
}

// RegisterDirectoryServiceServer はサービスを登録します。
func RegisterDirectoryServiceServer(s grpc.ServiceRegistrar, srv DirectoryServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc は DirectoryService の grpc.ServiceDesc です。
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DirectoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListEmployees", Handler: listEmployeesHandler},
		{MethodName: "CreateEmployee", Handler: createEmployeeHandler},
		{MethodName: "DeleteEmployee", Handler: deleteEmployeeHandler},
		{MethodName: "ValidateEmployee", Handler: validateEmployeeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "directory/v1/directory.proto",
}

func listEmployeesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectoryServiceServer).ListEmployees(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListEmployeesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DirectoryServiceServer).ListEmployees(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func createEmployeeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectoryServiceServer).CreateEmployee(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CreateEmployeeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DirectoryServiceServer).CreateEmployee(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func deleteEmployeeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectoryServiceServer).DeleteEmployee(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DeleteEmployeeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DirectoryServiceServer).DeleteEmployee(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func validateEmployeeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectoryServiceServer).ValidateEmployee(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ValidateEmployeeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DirectoryServiceServer).ValidateEmployee(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// DirectoryServiceClient は DirectoryService のクライアントです。
type DirectoryServiceClient interface {
	ListEmployees(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteEmployee(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ValidateEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type directoryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDirectoryServiceClient はクライアントを生成します。
func NewDirectoryServiceClient(cc grpc.ClientConnInterface) DirectoryServiceClient {
	return &directoryServiceClient{cc: cc}
}

func (c *directoryServiceClient) ListEmployees(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ListEmployeesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryServiceClient) CreateEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CreateEmployeeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryServiceClient) DeleteEmployee(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DeleteEmployeeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryServiceClient) ValidateEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ValidateEmployeeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
