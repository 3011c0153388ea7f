package handler

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/ogurasousui/employee-directory/internal/adapters/grpc/directory"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// FetchFailedMessage はリモート名簿の取得失敗時に表示する固定文言です。
const FetchFailedMessage = "Failed to fetch employees"

// DirectoryGrpcHandler は DirectoryService の gRPC 実装です。
type DirectoryGrpcHandler struct {
	svc employee.UseCase
	directory.UnimplementedDirectoryServiceServer
}

// NewDirectoryGrpcHandler は DirectoryGrpcHandler を生成します。
func NewDirectoryGrpcHandler(svc employee.UseCase) *DirectoryGrpcHandler {
	return &DirectoryGrpcHandler{svc: svc}
}

// ListEmployees は統合済み名簿とリモート読み込み状態を返します。
func (h *DirectoryGrpcHandler) ListEmployees(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	result, err := h.svc.ListEmployees(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	rows := make([]any, 0, len(result.Employees))
	for _, e := range result.Employees {
		rows = append(rows, employeeFields(e))
	}

	remote := map[string]any{"status": string(result.Remote.Status)}
	if result.Remote.Status == employee.RemoteError {
		remote["error"] = FetchFailedMessage
	}

	resp, err := structpb.NewStruct(map[string]any{
		"employees": rows,
		"remote":    remote,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// CreateEmployee は入力を検証して社員を追加します。
func (h *DirectoryGrpcHandler) CreateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in, err := toInput(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	created, err := h.svc.CreateEmployee(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp, err := structpb.NewStruct(employeeFields(created))
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// DeleteEmployee はローカル社員を削除します。
func (h *DirectoryGrpcHandler) DeleteEmployee(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.GetValue() > math.MaxInt32 {
		return nil, status.Error(codes.InvalidArgument, "id is out of range")
	}

	if err := h.svc.DeleteEmployee(ctx, int(req.GetValue())); err != nil {
		return nil, toStatusError(err)
	}
	return &emptypb.Empty{}, nil
}

// ValidateEmployee はフォーム入力の検証結果を返します。
func (h *DirectoryGrpcHandler) ValidateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in, err := toInput(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	errs := h.svc.ValidateEmployee(ctx, in)
	reasons := make(map[string]any, len(errs))
	messages := make(map[string]any, len(errs))
	for _, f := range errs.Fields() {
		reasons[string(f)] = string(errs[f])
		messages[string(f)] = errs.Message(f)
	}

	resp, err := structpb.NewStruct(map[string]any{
		"valid":    len(errs) == 0,
		"errors":   reasons,
		"messages": messages,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func employeeFields(e *employee.Employee) map[string]any {
	fields := map[string]any{
		"id":        e.ID,
		"source":    string(e.Source),
		"name":      e.Name,
		"email":     e.Email,
		"deletable": e.Deletable(),
	}
	if e.Designation != nil {
		fields["designation"] = *e.Designation
	}
	if e.Location != nil {
		fields["location"] = *e.Location
	}
	if e.Salary != nil {
		fields["salary"] = *e.Salary
	}
	return fields
}

func toInput(req *structpb.Struct) (employee.Input, error) {
	var in employee.Input
	var err error

	if in.Name, err = stringField(req, "name"); err != nil {
		return employee.Input{}, err
	}
	if in.Designation, err = stringField(req, "designation"); err != nil {
		return employee.Input{}, err
	}
	if in.Location, err = stringField(req, "location"); err != nil {
		return employee.Input{}, err
	}
	if in.Salary, err = stringField(req, "salary"); err != nil {
		return employee.Input{}, err
	}
	return in, nil
}

// stringField は文字列項目を取り出します。数値はフォームと同様に文字列として扱います。
func stringField(req *structpb.Struct, key string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok || v == nil {
		return "", nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, nil
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64), nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", fmt.Errorf("%s: expected string", key)
	}
}
