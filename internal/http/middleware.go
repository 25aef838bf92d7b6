package http

import (
	"net"
	"net/http"
	"strings"

	"blogapi/internal/auth"
	"blogapi/internal/http/handlers"
	rl "blogapi/internal/http/rate_limiter"
)

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization := r.Header.Get("Authorization")
		if !strings.HasPrefix(authorization, "Bearer ") {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authorization, "Bearer ")
		claims, err := auth.TokenClaims(tokenStr)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		username, _ := claims["username"].(string)

		ctx := handlers.ContextWithUser(r.Context(), int(sub), username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RateLimitMiddleware throttles per client IP. Applied to the credential
// endpoints to slow down guessing.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
