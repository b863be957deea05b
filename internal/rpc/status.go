package rpc

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
)

const errorDomain = "faceid"

// toStatus converts a pipeline error into a gRPC status. AppErrors carry
// their code as an ErrorInfo reason so clients can branch on it.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if appErr.GRPCCode != codes.Internal && appErr.Err != nil {
			msg = appErr.Error()
		}
		st := status.New(appErr.GRPCCode, msg)
		if detailed, derr := st.WithDetails(&errdetails.ErrorInfo{Reason: appErr.Code, Domain: errorDomain}); derr == nil {
			st = detailed
		}
		return st.Err()
	}

	if st, ok := status.FromError(err); ok {
		return st.Err()
	}

	return status.Error(codes.Internal, domain.ErrInternal.Message)
}

// ErrorCode returns the AppError code attached to a status error, or "".
func ErrorCode(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == errorDomain {
			return info.GetReason()
		}
	}
	return ""
}
