package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/abfall50/freelance-dashboard/internal/service"
)

// ExtractRequestMeta builds the client metadata recorded on session
// rows. RealIP middleware has already rewritten RemoteAddr when a
// trusted forwarding header was present.
func ExtractRequestMeta(r *http.Request) service.RequestMeta {
	return service.RequestMeta{
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
