package audit

import (
	"net"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Metadata holds the request facts recorded alongside a mutation. An empty
// string means the field could not be determined; it is then omitted from
// the audit payload entirely.
type Metadata struct {
	UserID      string
	IP          string
	UserAgent   string
	RequestPath string
	Method      string
}

// Extract never fails; any field it cannot determine is left empty.
// The user id comes from the X-User-ID header, else from the subject claim
// of a bearer token. The token is not verified: this is attribution for the
// audit trail, not authentication.
func Extract(r *http.Request) Metadata {
	m := Metadata{Method: r.Method}
	if r.URL != nil {
		m.RequestPath = r.URL.Path
	}
	m.UserAgent = r.Header.Get("User-Agent")

	m.UserID = r.Header.Get("X-User-ID")
	if m.UserID == "" {
		m.UserID = bearerSubject(r.Header.Get("Authorization"))
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		m.IP = strings.TrimSpace(strings.Split(xff, ",")[0])
	} else if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			m.IP = host
		} else {
			m.IP = r.RemoteAddr
		}
	}

	return m
}

func bearerSubject(header string) string {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	token, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(raw), jwt.MapClaims{})
	if err != nil {
		return ""
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// Payload builds the authoritative metadata snapshot stored in the audit
// payload column. Absent fields are omitted rather than written as nulls.
func (m Metadata) Payload(name, requestID string) map[string]interface{} {
	p := map[string]interface{}{"name": name}
	set := func(key, val string) {
		if val != "" {
			p[key] = val
		}
	}
	set("user_id", m.UserID)
	set("ip", m.IP)
	set("user_agent", m.UserAgent)
	set("request_path", m.RequestPath)
	set("method", m.Method)
	set("request_id", requestID)
	return p
}
