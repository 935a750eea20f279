package health

import (
	"encoding/json"
	"net/http"
)

type statusChecker interface {
	IsHealthy() bool
}

// Handler serves {"status":"UP"} with 200 or {"status":"DOWN"} with 503.
func Handler(h statusChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		status, code := "UP", http.StatusOK
		if !h.IsHealthy() {
			status, code = "DOWN", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
