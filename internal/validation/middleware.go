package validation

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"itemtrail/internal/config"
)

// ContextKey is where the gate stores the validated payload for handlers.
const ContextKey = "validated_json"

// Gate intercepts requests matched by the configured validation rules,
// validates and sanitizes the JSON body, and rewrites the body so every
// downstream consumer observes only the sanitized value. Configuration is
// re-read per request; operators may swap it at runtime.
func Gate(provider *config.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := provider.Current()

		if !Matches(cfg.ValidationRules, c.Request.URL.Path, c.Request.Method) {
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil {
			b, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid JSON body"})
				return
			}
			body = b
		}

		v, verr := ValidateBody(body, cfg.ForbiddenWords)
		if verr != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": verr.Detail})
			return
		}

		// Replace the effective body with the sanitized payload so nothing
		// downstream re-parses the raw input.
		clean, err := json.Marshal(v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid JSON body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(clean))
		c.Request.ContentLength = int64(len(clean))
		c.Set(ContextKey, v)

		c.Next()
	}
}

// FromContext returns the payload the gate validated for this request, if it
// ran. Handlers must fall back to validating themselves when absent.
func FromContext(c *gin.Context) (Validated, bool) {
	raw, ok := c.Get(ContextKey)
	if !ok {
		return Validated{}, false
	}
	v, ok := raw.(Validated)
	return v, ok
}
