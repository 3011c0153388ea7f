package handler

import (
	"context"
	"errors"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	var verrs employee.ValidationErrors

	switch {
	case err == nil:
		return nil
	case errors.As(err, &verrs):
		return validationStatus(verrs)
	case errors.Is(err, employee.ErrInvalidID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, employee.ErrFetch):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// validationStatus は項目ごとの違反を BadRequest の詳細として付与します。
func validationStatus(verrs employee.ValidationErrors) error {
	st := status.New(codes.InvalidArgument, verrs.Error())

	violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(verrs))
	for _, f := range verrs.Fields() {
		violations = append(violations, &errdetails.BadRequest_FieldViolation{
			Field:       string(f),
			Description: string(verrs[f]) + ": " + verrs.Message(f),
		})
	}

	detailed, err := st.WithDetails(&errdetails.BadRequest{FieldViolations: violations})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
