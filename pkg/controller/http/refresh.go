package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/interfaces"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/utils/async"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body, optionally
// prefixed with "sha256="
const SignatureHeader = "X-Hub-Signature-256"

// RefreshHandler regenerates all outputs in the background when called with
// a valid signature. Only one regeneration runs at a time.
type RefreshHandler struct {
	secret     string
	generateUC interfaces.GenerateUseCase
	running    sync.Mutex
}

// NewRefreshHandler creates a new RefreshHandler
func NewRefreshHandler(secret string, generateUC interfaces.GenerateUseCase) *RefreshHandler {
	return &RefreshHandler{
		secret:     secret,
		generateUC: generateUC,
	}
}

// Handle processes refresh requests
func (h *RefreshHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, r, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !h.verifySignature(body, r.Header.Get(SignatureHeader)) {
		logger.Warn("Invalid refresh signature")
		writeError(w, r, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	if !h.running.TryLock() {
		logger.Info("Refresh requested while another one is running")
		writeError(w, r, goerr.New("regeneration already in progress"), http.StatusConflict)
		return
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		result, err := h.generateUC.Generate(ctx)
		if err != nil {
			return goerr.Wrap(err, "refresh failed")
		}
		ctxlog.From(ctx).Info("Refresh completed",
			"releases", len(result.Releases),
			"failed", result.Failed,
		)
		return nil
	}, h.running.Unlock)

	writeJSON(w, r, http.StatusAccepted, map[string]string{
		"status": "accepted",
	})
}

// verifySignature verifies the request signature
func (h *RefreshHandler) verifySignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}

	signature = strings.TrimPrefix(signature, "sha256=")

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expectedMAC))
}
