// Package middleware contains shared Gin middleware used by the HTTP layer.
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Catalog clients put free-form text in the filter query parameter, so the
// access log must assume any query string or header value can carry personal
// data. Patterns are compiled once at package init.
//
// The phone pattern is digits-only; a hex-tolerant one would eat pieces of
// UUIDs, which is also why identifiers are scrubbed before phone numbers.
var (
	scrubUUID  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	scrubEmail = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	scrubPhone = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// scrub replaces identifiers, email addresses and phone numbers in s with
// typed placeholders. Order matters: phone is the loosest pattern and must
// run last.
func scrub(s string) string {
	if s == "" {
		return s
	}
	s = scrubUUID.ReplaceAllString(s, "[REDACTED:id]")
	s = scrubEmail.ReplaceAllString(s, "[REDACTED:email]")
	return scrubPhone.ReplaceAllString(s, "[REDACTED:phone]")
}

// RedactOptions configures RedactingLogger.
//
// MaskHeaders names extra headers whose values are replaced wholesale with
// "[REDACTED]". Names are matched case-insensitively and merged with the
// always-masked set (Authorization, Cookie, Set-Cookie).
type RedactOptions struct {
	MaskHeaders []string
}

// RedactingLogger returns a Gin access logger that scrubs request metadata
// before it reaches the log stream. It records method, route path, query,
// status, response size, latency and request headers; bodies are never
// logged. Entries go out as zerolog JSON at info, warn for 4xx, error for
// 5xx, under the message "http_request". The request id is taken from the
// X-Request-ID response header when present, falling back to the request
// header.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	masked := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			masked[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			// Unmatched route, log the raw path instead of an empty pattern.
			path = c.Request.URL.Path
		}
		safeQuery := scrub(c.Request.URL.RawQuery)

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := masked[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = scrub(strings.Join(vv, ", "))
		}

		c.Next()

		status := c.Writer.Status()
		reqID := c.Writer.Header().Get("X-Request-ID")
		if reqID == "" {
			reqID = c.GetHeader("X-Request-ID")
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}

		ev.
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", safeQuery).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
