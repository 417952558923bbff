package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"trivia-party/internal/app"
)

// NewMux wires health, subject listing and the game socket.
func NewMux(service *app.GameService, logger *zap.Logger, opts ...WSOption) *http.ServeMux {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/subjects", SubjectsHandler(service, logger))
	mux.HandleFunc("/ws", NewWSHandler(service, logger, opts...).ServeWS)
	return mux
}

// SubjectsHandler lists the catalog with question counts.
func SubjectsHandler(service *app.GameService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		subjects, err := service.Subjects(r.Context())
		if err != nil {
			logger.Error("list subjects", zap.Error(err))
			http.Error(w, "cannot list subjects", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(subjects); err != nil {
			logger.Debug("write subjects", zap.Error(err))
		}
	}
}
