// internal/app/features/groupcategories/handler.go
package groupcategories

import (
	groupcategorystore "github.com/dalemusser/rolehub/internal/app/store/groupcategories"
	"github.com/dalemusser/rolehub/internal/app/system/auditlog"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
	"go.uber.org/zap"
)

// Handler serves CRUD for group categories.
type Handler struct {
	Store  *groupcategorystore.Store
	Audit  *auditlog.Logger
	ErrLog *httpapi.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store *groupcategorystore.Store, audit *auditlog.Logger, errLog *httpapi.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Audit:  audit,
		ErrLog: errLog,
		Log:    logger,
	}
}
