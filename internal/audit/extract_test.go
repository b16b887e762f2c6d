package audit

import (
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHeaders(t *testing.T) {
	req := httptest.NewRequest("POST", "/items", nil)
	req.Header.Set("X-User-ID", "alice")
	req.Header.Set("User-Agent", "test-agent/1.0")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	m := Extract(req)

	assert.Equal(t, "alice", m.UserID)
	assert.Equal(t, "203.0.113.7", m.IP)
	assert.Equal(t, "test-agent/1.0", m.UserAgent)
	assert.Equal(t, "/items", m.RequestPath)
	assert.Equal(t, "POST", m.Method)
}

func TestExtractPeerAddressFallback(t *testing.T) {
	req := httptest.NewRequest("GET", "/items", nil)
	req.RemoteAddr = "192.0.2.9:4455"

	m := Extract(req)

	assert.Equal(t, "192.0.2.9", m.IP)
}

func TestExtractBearerSubjectFallback(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-42"}).
		SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/items", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	m := Extract(req)
	assert.Equal(t, "user-42", m.UserID)
}

func TestExtractHeaderWinsOverBearer(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-42"}).
		SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/items", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-User-ID", "alice")

	m := Extract(req)
	assert.Equal(t, "alice", m.UserID)
}

func TestExtractGarbageBearerIgnored(t *testing.T) {
	req := httptest.NewRequest("POST", "/items", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	m := Extract(req)
	assert.Empty(t, m.UserID)
}

func TestPayloadOmitsAbsentFields(t *testing.T) {
	m := Metadata{Method: "POST", RequestPath: "/items"}

	p := m.Payload("hello", "")

	assert.Equal(t, "hello", p["name"])
	assert.Equal(t, "POST", p["method"])
	assert.Equal(t, "/items", p["request_path"])
	assert.NotContains(t, p, "user_id")
	assert.NotContains(t, p, "ip")
	assert.NotContains(t, p, "user_agent")
	assert.NotContains(t, p, "request_id")
}
