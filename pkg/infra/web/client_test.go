package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/infra/web"
)

func TestClient_Fetch_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	client := web.NewClient(web.WithUserAgent("edge-matrix-test"))
	body, err := client.Fetch(context.Background(), server.URL+"/page.html")
	gt.NoError(t, err)
	gt.String(t, string(body)).Contains("ok")
	gt.Value(t, gotUA).Equal("edge-matrix-test")
}

func TestClient_Fetch_ErrorStatusIsSingleAttempt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := web.NewClient()
	body, err := client.Fetch(context.Background(), server.URL)
	gt.Error(t, err)
	gt.Value(t, body).Nil()
	gt.True(t, model.HasTag(err, model.ErrTagFetch))
	gt.Value(t, atomic.LoadInt32(&calls)).Equal(int32(1))
}

func TestClient_Fetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := web.NewClient(web.WithTimeout(20 * time.Millisecond))
	_, err := client.Fetch(context.Background(), server.URL)
	gt.Error(t, err)
	gt.True(t, model.HasTag(err, model.ErrTagFetch))
}
