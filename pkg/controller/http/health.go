package http

import (
	"net/http"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, &model.HealthStatus{
		Status:  "healthy",
		Service: types.ServiceName,
		Version: types.Version,
	})
}
