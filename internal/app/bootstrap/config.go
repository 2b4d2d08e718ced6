// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/rolehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for rolehub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: ROLEHUB_MONGO_URI, ROLEHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "rolehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "rolehub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Bearer tokens
	{Name: "jwt_secret", Default: "", Desc: "HS256 secret for bearer tokens (blank disables bearer auth)"},
	{Name: "jwt_issuer", Default: "rolehub", Desc: "Expected issuer claim of bearer tokens"},

	{Name: "cors_origins", Default: "", Desc: "Comma-separated list of allowed CORS origins"},

	// Audit logging settings
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "resolve_concurrency", Default: 8, Desc: "Max concurrent role type lookups per list (0 = unbounded)"},

	// Timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Deadline for health pings"},
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for list queries and membership changes"},
	{Name: "timeout_resolve", Default: "15s", Desc: "Deadline for resolving every role type of a list"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// ROLEHUB_* environment variables and flags (flags > env > files > defaults).
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ROLEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),

		JWTSecret: appValues.String("jwt_secret"),
		JWTIssuer: appValues.String("jwt_issuer"),

		CORSOrigins: splitList(appValues.String("cors_origins")),

		AuditLogAdmin: appValues.String("audit_log_admin"),

		ResolveConcurrency: appValues.Int("resolve_concurrency"),

		TimeoutPing:    appValues.Duration("timeout_ping", timeouts.DefaultPing),
		TimeoutShort:   appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium:  appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutResolve: appValues.Duration("timeout_resolve", timeouts.DefaultResolve),
	}

	return coreCfg, appCfg, nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI format is checked before any connection attempt. In
// production the development session key is refused.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database must not be empty")
	}

	switch appCfg.AuditLogAdmin {
	case "all", "db", "log", "off":
	default:
		return fmt.Errorf("audit_log_admin must be one of all, db, log, off (got %q)", appCfg.AuditLogAdmin)
	}

	if appCfg.ResolveConcurrency < 0 {
		return fmt.Errorf("resolve_concurrency must not be negative (got %d)", appCfg.ResolveConcurrency)
	}

	for name, d := range map[string]time.Duration{
		"timeout_ping":    appCfg.TimeoutPing,
		"timeout_short":   appCfg.TimeoutShort,
		"timeout_medium":  appCfg.TimeoutMedium,
		"timeout_resolve": appCfg.TimeoutResolve,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative (got %s)", name, d)
		}
	}

	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.SessionKey == devSessionKey {
			return errors.New("session_key must be changed from the development default in production")
		}
		if appCfg.JWTSecret != "" && len(appCfg.JWTSecret) < 32 {
			return errors.New("jwt_secret must be at least 32 bytes in production")
		}
	}

	return nil
}
