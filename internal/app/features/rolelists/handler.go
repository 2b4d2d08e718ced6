// internal/app/features/rolelists/handler.go
package rolelists

import (
	rolelistsvc "github.com/dalemusser/rolehub/internal/app/service/rolelists"
	roletypeliststore "github.com/dalemusser/rolehub/internal/app/store/roletypelists"
	"github.com/dalemusser/rolehub/internal/app/system/auditlog"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
	"go.uber.org/zap"
)

// Handler serves role type lists and their memberships.
type Handler struct {
	Lists   *roletypeliststore.Store
	Service *rolelistsvc.Service
	Audit   *auditlog.Logger
	ErrLog  *httpapi.ErrorLogger
	Log     *zap.Logger
}

// NewHandler is called from bootstrap.BuildHandler with the shared
// stores and the membership service.
func NewHandler(lists *roletypeliststore.Store, svc *rolelistsvc.Service, audit *auditlog.Logger, errLog *httpapi.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Lists:   lists,
		Service: svc,
		Audit:   audit,
		ErrLog:  errLog,
		Log:     logger,
	}
}
