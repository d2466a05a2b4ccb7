package controller

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/meetsync/meetsync/internal/service"
)

type ctxKey string

const (
	userIDKey    ctxKey = "uid"
	userEmailKey ctxKey = "email"
)

// userID returns the authenticated user's id from the request context.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// userEmail returns the authenticated user's email from the request context.
func userEmail(r *http.Request) string {
	email, _ := r.Context().Value(userEmailKey).(string)
	return email
}

// authMiddleware validates the bearer token and injects uid and email into
// the request context.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
			ctx = context.WithValue(ctx, userEmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type rateClient struct {
	lim  *rate.Limiter
	seen time.Time
}

// ipRateLimiter throttles per client IP. Used on the auth endpoints to slow
// down credential stuffing.
type ipRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateClient
	r       rate.Limit
	burst   int
}

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	rl := &ipRateLimiter{
		clients: make(map[string]*rateClient),
		r:       rate.Limit(rps),
		burst:   burst,
	}
	// drop stale entries so the map does not grow without bound
	go func() {
		for {
			time.Sleep(time.Minute)
			rl.mu.Lock()
			for ip, c := range rl.clients {
				if time.Since(c.seen) > 3*time.Minute {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

func (rl *ipRateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if c, ok := rl.clients[ip]; ok {
		c.seen = time.Now()
		return c.lim
	}
	lim := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[ip] = &rateClient{lim: lim, seen: time.Now()}
	return lim
}

func (rl *ipRateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.get(ip).Allow() {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
