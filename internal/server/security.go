package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the hardening middleware applied to every
// HTTP endpoint.
type SecurityConfig struct {
	// EnableCORS toggles cross-origin response headers.
	EnableCORS bool
	// AllowedOrigins lists origins permitted to read the API. The
	// entry "*" allows any origin.
	AllowedOrigins []string
	// AllowedMethods lists the methods advertised in CORS responses.
	AllowedMethods []string
}

// DefaultSecurityConfig returns the hardening applied to the watcher's
// read-only API: CORS open to any origin, GET and OPTIONS only.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}
}

// SecurityMiddleware sets security response headers, answers CORS
// preflight requests, and passes everything else to next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			applyCORSHeaders(config, w, r)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// applyCORSHeaders sets the CORS response headers when the request
// origin is allowed by the configuration.
func applyCORSHeaders(config SecurityConfig, w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	allowed := ""
	for _, candidate := range config.AllowedOrigins {
		if candidate == "*" {
			allowed = "*"
			break
		}
		if origin != "" && candidate == origin {
			allowed = origin
			break
		}
	}
	if allowed == "" {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", allowed)
	w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "86400")
}
