package health

import (
	"net/http"

	metricsstore "github.com/dalemusser/rolehub/internal/app/store/metrics"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
	"github.com/dalemusser/rolehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo database and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string               `json:"status"`
	Database string               `json:"database"`
	Message  string               `json:"message,omitempty"`
	Error    string               `json:"error,omitempty"`
	Counts   *metricsstore.Counts `json:"counts,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected" }
//
// With ?verbose=1 the document counts per collection are included.
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Ping(), h.Log, "health ping")
	defer cancel()

	if err := h.DB.Client().Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		httpapi.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "error",
			Database: "disconnected",
			Message:  "Database unavailable",
			Error:    err.Error(),
		})
		return
	}

	resp := healthResponse{Status: "ok", Database: "connected"}
	if r.URL.Query().Get("verbose") != "" {
		counts := metricsstore.FetchCounts(ctx, h.DB)
		resp.Counts = &counts
	}
	httpapi.WriteJSON(w, http.StatusOK, resp)
}
