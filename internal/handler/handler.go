package handler

import (
	"context"
	"errors"
	"slices"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	hospitalv1 "medpulse/api/hospital/v1"
	"medpulse/internal/auth"
	"medpulse/internal/ledger"
	"medpulse/internal/middleware"
	"medpulse/internal/model"
	"medpulse/pkg/logging"
)

type Handler struct {
	hospitalv1.UnimplementedHospitalServiceServer
	ledger *ledger.Ledger
	auth   *auth.Authenticator
	logger *logging.Logger
}

func New(l *ledger.Ledger, a *auth.Authenticator, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{ledger: l, auth: a, logger: logger}
}

// caller returns the authenticated account if its role is one of roles.
func caller(ctx context.Context, roles ...model.Role) (model.AccountRef, error) {
	ref, ok := middleware.Caller(ctx)
	if !ok {
		return model.AccountRef{}, status.Error(codes.Unauthenticated, "not logged in")
	}
	if len(roles) > 0 && !slices.Contains(roles, ref.Role) {
		return model.AccountRef{}, status.Errorf(codes.PermissionDenied, "%s accounts cannot do this", ref.Role)
	}
	return ref, nil
}

// toStatus maps ledger errors onto gRPC codes. Anything unrecognised is
// logged and reported as a bare internal error.
func (h *Handler) toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ledger.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalidTransition), errors.Is(err, ledger.ErrInUse):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, ledger.ErrCapacityExceeded):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, ledger.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ledger.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	}
	h.logger.Error("request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}
