package middleware

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	hospitalv1 "medpulse/api/hospital/v1"
	"medpulse/internal/auth"
	"medpulse/internal/model"
)

const secret = "test-secret"

var verifier = auth.NewAuthenticator(nil, secret)

func info(method string) *grpc.UnaryServerInfo {
	return &grpc.UnaryServerInfo{FullMethod: hospitalv1.FullMethod(method)}
}

func withToken(t *testing.T, ref model.AccountRef) context.Context {
	t.Helper()
	tok, err := auth.MakeToken(ref, secret)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	md := metadata.New(map[string]string{"authorization": "Bearer " + tok})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestAuthAttachesCaller(t *testing.T) {
	want := model.AccountRef{Role: model.RoleDoctor, ID: "d3"}
	var got model.AccountRef
	_, err := Auth(verifier)(withToken(t, want), nil, info("ListDoctorVisits"), func(ctx context.Context, _ any) (any, error) {
		got, _ = Caller(ctx)
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAuthRejects(t *testing.T) {
	noop := func(context.Context, any) (any, error) { return nil, nil }
	badMD := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{"authorization": "Bearer nope"}))

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"no metadata", context.Background()},
		{"no token", metadata.NewIncomingContext(context.Background(), metadata.MD{})},
		{"bad token", badMD},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Auth(verifier)(tt.ctx, nil, info("GetStats"), noop)
			if status.Code(err) != codes.Unauthenticated {
				t.Errorf("expected Unauthenticated, got %v", err)
			}
		})
	}
}

func TestAuthSkipsOpenMethods(t *testing.T) {
	called := false
	_, err := Auth(verifier)(context.Background(), nil, info("Login"), func(context.Context, any) (any, error) {
		called = true
		return nil, nil
	})
	if err != nil || !called {
		t.Fatalf("login should pass without a token: called=%v err=%v", called, err)
	}
}

func TestRateLimitCredentialEndpoints(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Close()
	ic := RateLimit(rl)
	noop := func(context.Context, any) (any, error) { return nil, nil }
	ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 4000}})

	for i := 0; i < 2; i++ {
		if _, err := ic(ctx, nil, info("Login"), noop); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if _, err := ic(ctx, nil, info("Signup"), noop); status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("expected ResourceExhausted, got %v", err)
	}
	// other methods are not limited
	if _, err := ic(ctx, nil, info("ListDoctors"), noop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// a different peer has its own bucket
	other := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 2), Port: 4000}})
	if _, err := ic(other, nil, info("Login"), noop); err != nil {
		t.Fatalf("second peer: %v", err)
	}
}

func TestLatency(t *testing.T) {
	noop := func(context.Context, any) (any, error) { return "ok", nil }

	start := time.Now()
	if _, err := Latency(20*time.Millisecond)(context.Background(), nil, info("ListDoctors"), noop); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("handler ran before the delay elapsed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	_, err := Latency(time.Second)(ctx, nil, info("ApproveBooking"), func(context.Context, any) (any, error) {
		called = true
		return nil, nil
	})
	if status.Code(err) != codes.Canceled || called {
		t.Errorf("cancelled call should not reach the handler: called=%v err=%v", called, err)
	}

	if out, _ := Latency(0)(context.Background(), nil, info("ListDoctors"), noop); out != "ok" {
		t.Error("zero latency should pass through")
	}
}

func TestClientKey(t *testing.T) {
	tcp := func(ip string, port int) net.Addr { return &net.TCPAddr{IP: net.ParseIP(ip), Port: port} }
	fwd := func(v string) metadata.MD { return metadata.Pairs(ForwardedForKey, v) }

	tests := []struct {
		name string
		addr net.Addr
		md   metadata.MD
		want string
	}{
		{"port dropped", tcp("10.0.0.1", 4000), nil, "10.0.0.1"},
		{"remote peer cannot forward", tcp("10.0.0.1", 4001), fwd("203.0.113.1"), "10.0.0.1"},
		{"loopback forwards", tcp("127.0.0.1", 5000), fwd("203.0.113.1"), "203.0.113.1"},
		{"first hop only", tcp("::1", 5000), fwd("203.0.113.1, 10.1.1.1"), "203.0.113.1"},
		{"loopback without header", tcp("127.0.0.1", 5000), nil, "127.0.0.1"},
		{"unix socket forwards", &net.UnixAddr{Name: "/tmp/grpc.sock", Net: "unix"}, fwd("198.51.100.7"), "198.51.100.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: tt.addr})
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}
			if got := clientKey(ctx); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
	if got := clientKey(context.Background()); got != "unknown" {
		t.Errorf("no peer: got %q", got)
	}
}

func TestRateLimitIgnoresReconnects(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	defer rl.Close()
	ic := RateLimit(rl)
	noop := func(context.Context, any) (any, error) { return nil, nil }

	for i, port := range []int{4000, 4001} {
		ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 9), Port: port}})
		_, err := ic(ctx, nil, info("Login"), noop)
		if i == 0 && err != nil {
			t.Fatalf("first call: %v", err)
		}
		if i == 1 && status.Code(err) != codes.ResourceExhausted {
			t.Fatalf("new port should share the bucket, got %v", err)
		}
	}
}
