// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net"
	"net/http"

	"github.com/dalemusser/rolehub/internal/app/store/audit"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Admin controls logging for admin action events (membership changes,
	// role type and category CRUD).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// clientIP is the host part of r.RemoteAddr. chi's RealIP middleware has
// already replaced RemoteAddr with the proxy-reported address.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.TargetID != "" {
		fields = append(fields, zap.String("target_id", event.TargetID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event according to the mode configured for its
// category ("all", "db", "log", "off"). Unknown categories use "all".
// A nil Logger is a no-op so handlers can run without auditing.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	mode := "all"
	if event.Category == audit.CategoryAdmin {
		mode = l.config.Admin
	}

	switch mode {
	case "all":
		l.logToZap(event)
		l.persist(ctx, event)
	case "log":
		l.logToZap(event)
	case "db":
		l.persist(ctx, event)
	}
}

func (l *Logger) persist(ctx context.Context, event audit.Event) {
	if l.store == nil {
		return
	}
	if err := l.store.Log(ctx, event); err != nil {
		l.zapLog.Error("failed to store audit event",
			zap.Error(err),
			zap.String("event_type", event.EventType))
	}
}

// --- Membership Events ---

// RoleTypeAddedToList logs an add attempt. msg is the operation result
// ("ok" or "fail"); a "fail" is recorded as an unsuccessful event.
func (l *Logger) RoleTypeAddedToList(ctx context.Context, r *http.Request, actorID, listID, typeID, msg string) {
	l.membershipEvent(ctx, r, audit.EventRoleTypeAddedToList, actorID, listID, typeID, msg, "already a member or rejected by store")
}

// RoleTypeRemovedFromList logs a remove attempt.
func (l *Logger) RoleTypeRemovedFromList(ctx context.Context, r *http.Request, actorID, listID, typeID, msg string) {
	l.membershipEvent(ctx, r, audit.EventRoleTypeRemovedFromList, actorID, listID, typeID, msg, "not a member")
}

func (l *Logger) membershipEvent(ctx context.Context, r *http.Request, eventType, actorID, listID, typeID, msg, reason string) {
	event := audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   actorID,
		TargetID:  listID,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   msg == "ok",
		Details: map[string]string{
			"type_id": typeID,
		},
	}
	if !event.Success {
		event.FailureReason = reason
	}
	l.Log(ctx, event)
}

// --- Admin Events ---

// RoleTypeCreated logs the creation of a role type.
func (l *Logger) RoleTypeCreated(ctx context.Context, r *http.Request, actorID, typeID, name string) {
	l.adminEvent(ctx, r, audit.EventRoleTypeCreated, actorID, typeID, map[string]string{"name": name})
}

// RoleTypeListCreated logs the creation of a role type list.
func (l *Logger) RoleTypeListCreated(ctx context.Context, r *http.Request, actorID, listID, name string) {
	l.adminEvent(ctx, r, audit.EventRoleTypeListCreated, actorID, listID, map[string]string{"name": name})
}

// GroupCategoryCreated logs the creation of a group category.
func (l *Logger) GroupCategoryCreated(ctx context.Context, r *http.Request, actorID, categoryID, name string) {
	l.adminEvent(ctx, r, audit.EventGroupCategoryCreated, actorID, categoryID, map[string]string{"name": name})
}

// GroupCategoryUpdated logs a change to a group category.
func (l *Logger) GroupCategoryUpdated(ctx context.Context, r *http.Request, actorID, categoryID, fieldsChanged string) {
	l.adminEvent(ctx, r, audit.EventGroupCategoryUpdated, actorID, categoryID, map[string]string{"fields_changed": fieldsChanged})
}

// GroupCategoryDeleted logs the deletion of a group category.
func (l *Logger) GroupCategoryDeleted(ctx context.Context, r *http.Request, actorID, categoryID string) {
	l.adminEvent(ctx, r, audit.EventGroupCategoryDeleted, actorID, categoryID, nil)
}

func (l *Logger) adminEvent(ctx context.Context, r *http.Request, eventType, actorID, targetID string, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   actorID,
		TargetID:  targetID,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}
