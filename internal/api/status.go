package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/promptvault/pkg/handlers"
)

const statusTimeout = 5 * time.Second

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the body of the root status endpoint.
type Status struct {
	Status             string `json:"status"`
	DatabaseConnection string `json:"database_connection"`
	Error              string `json:"error,omitempty"`
}

// StatusHandler reports whether the service can reach its database.
// An unreachable database yields 500 with the connection error.
func StatusHandler(db Pinger, logger *slog.Logger) http.HandlerFunc {
	logger = logger.With("handler", "status")

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), statusTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("database check failed", "error", err)
			handlers.RespondJSON(w, http.StatusInternalServerError, Status{
				Status:             "running",
				DatabaseConnection: "failed",
				Error:              err.Error(),
			})
			return
		}

		handlers.RespondJSON(w, http.StatusOK, Status{
			Status:             "running",
			DatabaseConnection: "successful",
		})
	}
}
