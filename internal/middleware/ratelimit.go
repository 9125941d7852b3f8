package middleware

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	hospitalv1 "medpulse/api/hospital/v1"
)

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// ForwardedForKey carries the browser's address on calls relayed by the
// grpc-web bridge.
const ForwardedForKey = "x-forwarded-for"

// RateLimiter hands out one token bucket per client host.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
	done    chan struct{}
	once    sync.Once
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}
	go rl.sweep(time.Minute, 3*time.Minute)
	return rl
}

// sweep drops peers idle for longer than ttl.
func (rl *RateLimiter) sweep(every, ttl time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-t.C:
			rl.mu.Lock()
			for addr, c := range rl.clients {
				if time.Since(c.seen) > ttl {
					delete(rl.clients, addr)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) get(addr string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if c, ok := rl.clients[addr]; ok {
		c.seen = time.Now()
		return c.lim
	}
	l := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[addr] = &client{lim: l, seen: time.Now()}
	return l
}

// credential endpoints only
var limited = map[string]bool{
	hospitalv1.FullMethod("Login"):  true,
	hospitalv1.FullMethod("Signup"): true,
}

func RateLimit(rl *RateLimiter) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if !limited[info.FullMethod] {
			return next(ctx, req)
		}
		if !rl.get(clientKey(ctx)).Allow() {
			return nil, status.Error(codes.ResourceExhausted, "too many requests")
		}
		return next(ctx, req)
	}
}

// clientKey names the caller by host, without the port. Calls from a local
// peer (the grpc-web bridge) are keyed by the forwarded browser address.
func clientKey(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host := p.Addr.String()
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if local(p.Addr, host) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if fwd := md.Get(ForwardedForKey); len(fwd) > 0 {
				first, _, _ := strings.Cut(fwd[0], ",")
				if first = strings.TrimSpace(first); first != "" {
					return first
				}
			}
		}
	}
	return host
}

// local reports loopback TCP peers and in-process or unix-socket ones.
func local(addr net.Addr, host string) bool {
	switch addr.Network() {
	case "tcp", "tcp4", "tcp6", "udp":
		ip := net.ParseIP(host)
		return ip != nil && ip.IsLoopback()
	}
	return true
}
