package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"innkeep/shared"
	"innkeep/shared/constant"
	"innkeep/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit counts requests per client in fixed windows. The counter lives in
// redis so every instance shares it; when redis is unreachable requests pass.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			settings := a.config.App.RateLimiter
			if !settings.Enable || settings.MaxRequests <= 0 {
				next.ServeHTTP(w, r)

				return
			}

			window := time.Duration(max(settings.WindowSeconds, 1)) * time.Second
			key := shared.CacheKey(cacheKeyRateLimit, clientIP(r), r.Header.Get(constant.RequestHeaderHolderID))

			count, err := a.cache.Increment(r.Context(), key, window)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Rate limiter unavailable, letting request through")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(settings.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(settings.MaxRequests)-count), 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(int(window.Seconds())))

			if count > int64(settings.MaxRequests) {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. Proxy headers are already folded
// into RemoteAddr by chi's RealIP middleware.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
