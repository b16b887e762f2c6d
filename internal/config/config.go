package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
)

// Rule selects requests the validation gate applies to. A PathPattern ending
// in "*" matches by prefix, otherwise the path must match exactly. Method
// comparison is case-insensitive.
type Rule struct {
	PathPattern string
	Method      string
}

type Config struct {
	ProjectName     string
	AppPort         string
	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	LogLevel        string
	AllowedOrigins  []string
	ForceHTTPS      bool
	ForbiddenWords  []string
	ValidationRules []Rule
	AuditEnabled    bool
	AuditTable      string
	SeedItems       bool
}

func Load() Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	} else {
		log.Println("✅ .env file loaded successfully!")
	}

	cfg := Config{
		ProjectName:     envDefault("PROJECT_NAME", "itemtrail"),
		AppPort:         envDefault("APP_PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 5),
		LogLevel:        envDefault("LOG_LEVEL", "INFO"),
		AllowedOrigins:  splitList(os.Getenv("ALLOWED_ORIGINS")),
		ForceHTTPS:      envBool("FORCE_HTTPS", false),
		ForbiddenWords:  splitList(os.Getenv("FORBIDDEN_WORDS")),
		ValidationRules: ParseRules(os.Getenv("VALIDATION_RULES")),
		AuditEnabled:    envBool("AUDIT_ENABLED", true),
		AuditTable:      envDefault("AUDIT_TABLE", "item_audit"),
		SeedItems:       envBool("SEED_ITEMS", false),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("❌ DATABASE_URL not set in environment")
	}

	return cfg
}

// ParseRules parses "path:METHOD;path:METHOD" into validation rules.
// Malformed entries are skipped.
func ParseRules(raw string) []Rule {
	var rules []Rule
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		path, method, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		path = strings.TrimSpace(path)
		method = strings.ToUpper(strings.TrimSpace(method))
		if path == "" || method == "" {
			continue
		}
		rules = append(rules, Rule{PathPattern: path, Method: method})
	}
	return rules
}

func envDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ %s=%q is not a number, using %d", name, v, def)
		return def
	}
	return n
}

func envBool(name string, def bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Provider hands out configuration snapshots. Forbidden words and validation
// rules may be swapped at runtime, so per-request readers must call Current
// each time instead of caching at startup.
type Provider struct {
	current atomic.Pointer[Config]
}

func NewProvider(cfg Config) *Provider {
	p := &Provider{}
	p.current.Store(&cfg)
	return p
}

// Current returns the active configuration snapshot.
func (p *Provider) Current() Config {
	return *p.current.Load()
}

// Swap atomically replaces the active configuration. In-flight requests keep
// the snapshot they already read.
func (p *Provider) Swap(cfg Config) {
	p.current.Store(&cfg)
}
