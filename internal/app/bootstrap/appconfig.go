// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for rolehub.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level, body limits).
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session cookie identity source
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: rolehub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Bearer token identity source (HS256). Empty secret disables bearer tokens.
	JWTSecret string
	JWTIssuer string

	// Allowed CORS origins. Empty disables the CORS middleware.
	CORSOrigins []string

	// Audit logging: "all", "db", "log", or "off"
	AuditLogAdmin string

	// Upper bound on concurrent role type lookups in a ListByID call.
	ResolveConcurrency int

	// Request deadlines
	TimeoutPing    time.Duration
	TimeoutShort   time.Duration
	TimeoutMedium  time.Duration
	TimeoutResolve time.Duration
}
