package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	controller "github.com/e-minguez/suse-edge-support-matrix/pkg/controller/http"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/types"
)

func TestHealthEndpoint(t *testing.T) {
	server, err := controller.NewServer(context.Background(), nil, controller.WithAddr("localhost:0"))
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Value(t, w.Code).Equal(http.StatusOK)

	var status model.HealthStatus
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	gt.Value(t, status.Status).Equal("healthy")
	gt.Value(t, status.Service).Equal(types.ServiceName)
	gt.Value(t, status.Version).NotEqual("")
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	gt.NoError(t, writeFile(dir, "3.2.1.json", `{"Version":"3.2.1"}`))

	t.Run("serves generated files", func(t *testing.T) {
		server, err := controller.NewServer(context.Background(), nil, controller.WithOutputDir(dir))
		gt.NoError(t, err)

		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/3.2.1.json", nil))
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.String(t, w.Body.String()).Contains(`"3.2.1"`)

		w = httptest.NewRecorder()
		server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/9.9.9.json", nil))
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("no output dir", func(t *testing.T) {
		server, err := controller.NewServer(context.Background(), nil)
		gt.NoError(t, err)

		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/3.2.1.json", nil))
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}
