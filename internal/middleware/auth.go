package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	hospitalv1 "medpulse/api/hospital/v1"
	"medpulse/internal/auth"
	"medpulse/internal/model"
)

type ctxKey string

const (
	UserIDKey ctxKey = "uid"
	RoleKey   ctxKey = "role"
)

// skip auth for these
var open = map[string]bool{
	hospitalv1.FullMethod("Login"):  true,
	hospitalv1.FullMethod("Signup"): true,
}

// WithCaller stores the authenticated account on the context.
func WithCaller(ctx context.Context, ref model.AccountRef) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, ref.ID)
	return context.WithValue(ctx, RoleKey, ref.Role)
}

// Caller returns the account the auth interceptor attached.
func Caller(ctx context.Context) (model.AccountRef, bool) {
	id, _ := ctx.Value(UserIDKey).(string)
	role, _ := ctx.Value(RoleKey).(model.Role)
	if id == "" || role == "" {
		return model.AccountRef{}, false
	}
	return model.AccountRef{Role: role, ID: id}, true
}

// BearerToken pulls the raw token out of an Authorization value.
func BearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

func Auth(v TokenVerifier) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		raw := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = BearerToken(vals[0])
		}
		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "no token")
		}

		claims, err := v.Verify(raw)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}
		return next(WithCaller(ctx, claims.Ref()), req)
	}
}
