// Package remoteip stashes the caller's IP address into the request
// context so handlers behind huma can hand it to the geolocation
// lookup.
package remoteip

import (
	"context"
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

type contextKey struct{}

// Middleware records the client IP, preferring X-Forwarded-For when a
// proxy sits in front of the server.
func Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		ip := clientIP(ctx.Header("X-Forwarded-For"), ctx.RemoteAddr())
		next(huma.WithValue(ctx, contextKey{}, ip))
	}
}

// FromContext returns the client IP recorded by Middleware, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

func clientIP(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		// First hop is the original client.
		if first, _, ok := strings.Cut(forwardedFor, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwardedFor)
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
