package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"itemtrail/internal/audit"
	"itemtrail/internal/config"
	"itemtrail/internal/items"
	"itemtrail/internal/validation"
)

// RequestIDKey is the gin context key the request-id middleware fills.
const RequestIDKey = "request_id"

// ItemRead is the client-facing item shape.
type ItemRead struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func ListItems(repo *items.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out := make([]ItemRead, 0, len(all))
		for _, it := range all {
			out = append(out, ItemRead{ID: it.ID, Name: it.Name})
		}
		c.JSON(http.StatusOK, out)
	}
}

// CreateItem persists a new item and records a best-effort audit row. It
// trusts the payload the validation gate stored on the context; when the
// gate did not run (disabled or reconfigured) it performs the same
// parse-and-sanitize steps itself, exactly once.
func CreateItem(repo *items.Repository, provider *config.Provider, auditor *audit.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := provider.Current()

		v, gated := validation.FromContext(c)
		if !gated {
			var body []byte
			if c.Request.Body != nil {
				b, err := io.ReadAll(c.Request.Body)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid JSON body"})
					return
				}
				body = b
			}
			var verr *validation.Error
			v, verr = validation.ValidateBody(body, cfg.ForbiddenWords)
			if verr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"detail": verr.Detail})
				return
			}
		}

		item, err := repo.Create(c.Request.Context(), v.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not create item"})
			return
		}

		// Audit after the primary commit; its outcome never changes the
		// response.
		if cfg.AuditEnabled {
			meta := audit.Extract(c.Request)
			payload := meta.Payload(item.Name, c.GetString(RequestIDKey))
			auditor.Insert(c.Request.Context(), item.ID, payload)
		}

		c.JSON(http.StatusCreated, ItemRead{ID: item.ID, Name: item.Name})
	}
}
