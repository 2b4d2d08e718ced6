// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/rolehub/internal/app/system/metrics"
	"github.com/dalemusser/rolehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	metrics.SetLogger(logger.Named("store"))
	timeouts.Configure(timeoutConfig(appCfg))
	t := timeouts.Current()
	logger.Info("request timeouts configured",
		zap.Duration("ping", t.Ping),
		zap.Duration("short", t.Short),
		zap.Duration("medium", t.Medium),
		zap.Duration("resolve", t.Resolve))

	if appCfg.JWTSecret == "" {
		logger.Info("bearer tokens disabled (jwt_secret not set); session cookies only")
	}
	if coreCfg != nil && coreCfg.Env != "prod" && appCfg.SessionKey == devSessionKey {
		logger.Warn("using development session key")
	}
	return nil
}

func timeoutConfig(appCfg AppConfig) timeouts.Config {
	return timeouts.Config{
		Ping:    appCfg.TimeoutPing,
		Short:   appCfg.TimeoutShort,
		Medium:  appCfg.TimeoutMedium,
		Resolve: appCfg.TimeoutResolve,
	}
}
