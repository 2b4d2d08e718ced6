// internal/app/features/auditlog/handler.go
package auditlog

import (
	"github.com/dalemusser/rolehub/internal/app/store/audit"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
	"go.uber.org/zap"
)

type Handler struct {
	Store  *audit.Store
	Log    *zap.Logger
	ErrLog *httpapi.ErrorLogger
}

// NewHandler constructs the audit log feature handler over the audit store.
func NewHandler(store *audit.Store, errLog *httpapi.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Log:    logger,
		ErrLog: errLog,
	}
}
