package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/fakedata/internal/core"
)

// withRequestMetadata adds the client IP and User-Agent for the activity log.
// RemoteAddr has already been resolved by TrustedRealIP.
func withRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return core.ContextWithClient(ctx, ip, r.UserAgent())
}
