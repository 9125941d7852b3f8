package handler

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	hospitalv1 "medpulse/api/hospital/v1"
	"medpulse/internal/auth"
	"medpulse/internal/ledger"
	"medpulse/internal/model"
)

func (h *Handler) Login(ctx context.Context, req *hospitalv1.LoginRequest) (*hospitalv1.LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, status.Error(codes.InvalidArgument, "email required")
	}

	acct, err := h.auth.Authenticate(req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return nil, status.Error(codes.Unauthenticated, "invalid email or password")
	}
	if err != nil {
		return nil, h.toStatus(err)
	}
	return h.startSession(ctx, acct)
}

// Signup registers a patient and logs them in. The ledger refuses an
// email that already belongs to an account.
func (h *Handler) Signup(ctx context.Context, req *hospitalv1.SignupRequest) (*hospitalv1.LoginResponse, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, status.Error(codes.InvalidArgument, "name and email required")
	}
	in := ledger.SignupInput{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, status.Error(codes.Internal, "internal error")
		}
		in.PasswordHash = hash
	}
	p, err := h.ledger.Signup(ctx, in)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return h.startSession(ctx, &p)
}

func (h *Handler) startSession(ctx context.Context, acct model.Account) (*hospitalv1.LoginResponse, error) {
	ref := model.RefOf(acct)
	if err := h.ledger.SetCurrentUser(ctx, &ref); err != nil {
		return nil, h.toStatus(err)
	}
	tok, err := h.auth.Issue(acct)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	h.logger.Info("login", "role", ref.Role, "account_id", ref.ID)
	return &hospitalv1.LoginResponse{Token: tok, Account: toAccount(acct)}, nil
}

func (h *Handler) Logout(ctx context.Context, _ *hospitalv1.Empty) (*hospitalv1.Empty, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}
	if err := h.ledger.SetCurrentUser(ctx, nil); err != nil {
		return nil, h.toStatus(err)
	}
	return &hospitalv1.Empty{}, nil
}
