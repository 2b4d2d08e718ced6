// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogfeature "github.com/dalemusser/rolehub/internal/app/features/auditlog"
	groupcategoriesfeature "github.com/dalemusser/rolehub/internal/app/features/groupcategories"
	healthfeature "github.com/dalemusser/rolehub/internal/app/features/health"
	rolelistsfeature "github.com/dalemusser/rolehub/internal/app/features/rolelists"
	roletypesfeature "github.com/dalemusser/rolehub/internal/app/features/roletypes"
	sessionfeature "github.com/dalemusser/rolehub/internal/app/features/session"
	rolelistsvc "github.com/dalemusser/rolehub/internal/app/service/rolelists"
	"github.com/dalemusser/rolehub/internal/app/store/audit"
	groupcategorystore "github.com/dalemusser/rolehub/internal/app/store/groupcategories"
	rolemembershipstore "github.com/dalemusser/rolehub/internal/app/store/rolememberships"
	roletypeliststore "github.com/dalemusser/rolehub/internal/app/store/roletypelists"
	roletypestore "github.com/dalemusser/rolehub/internal/app/store/roletypes"
	"github.com/dalemusser/rolehub/internal/app/system/auditlog"
	"github.com/dalemusser/rolehub/internal/app/system/auth"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for rolehub.
//
// Every store and the membership service are built here once and handed to
// the feature handlers. There is no global registry; handlers only see what
// they are given. The acting user is resolved per request by auth.Loader.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	loader := &auth.Loader{Sessions: sessionMgr, Log: logger}
	if appCfg.JWTSecret != "" {
		loader.Tokens = auth.NewTokenVerifier(appCfg.JWTSecret, appCfg.JWTIssuer)
	}

	db := deps.MongoDatabase
	errLog := httpapi.NewErrorLogger(logger)

	auditStore := audit.New(db)
	auditLog := auditlog.New(auditStore, logger, auditlog.Config{Admin: appCfg.AuditLogAdmin})

	listStore := roletypeliststore.New(db)
	typeStore := roletypestore.New(db)
	membershipStore := rolemembershipstore.New(db)
	categoryStore := groupcategorystore.New(db)

	svc := rolelistsvc.New(membershipStore, typeStore, logger,
		rolelistsvc.WithResolveConcurrency(appCfg.ResolveConcurrency))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if len(appCfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   appCfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Loads the caller's identity into context if one is presented.
	r.Use(loader.LoadIdentity)

	// Ops endpoints
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(db, logger)))
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/session", sessionfeature.Routes(sessionfeature.NewHandler(sessionMgr, logger)))

	listsHandler := rolelistsfeature.NewHandler(listStore, svc, auditLog, errLog, logger)
	r.Mount("/role-type-lists", rolelistsfeature.Routes(listsHandler))

	typesHandler := roletypesfeature.NewHandler(typeStore, membershipStore, auditLog, errLog, logger)
	r.Mount("/role-types", roletypesfeature.Routes(typesHandler))

	categoriesHandler := groupcategoriesfeature.NewHandler(categoryStore, auditLog, errLog, logger)
	r.Mount("/group-categories", groupcategoriesfeature.Routes(categoriesHandler))

	auditHandler := auditlogfeature.NewHandler(auditStore, errLog, logger)
	r.Mount("/audit-events", auditlogfeature.Routes(auditHandler))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpapi.WriteNotFound(w, "route not found")
	})

	return r, nil
}
