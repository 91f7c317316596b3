package telegram

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Receiver decodes webhook updates and hands them to a handler. It
// always answers 200: Telegram retries non-2xx deliveries, so a poison
// update must not wedge the webhook queue. Problems are logged instead.
type Receiver struct {
	secret  string
	handler func(*http.Request, *Update)
	logger  *slog.Logger
}

// NewReceiver builds a webhook receiver. secret, when non-empty, must
// match the secret_token configured via setWebhook.
func NewReceiver(secret string, handler func(*http.Request, *Update), logger *slog.Logger) *Receiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Receiver{secret: secret, handler: handler, logger: logger}
}

func (rc *Receiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer writeOK(w)

	if rc.secret != "" {
		token := r.Header.Get(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(rc.secret), []byte(token)) != 1 {
			rc.logger.Warn("webhook: invalid secret token")
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		rc.logger.Warn("webhook: read body", "error", err)
		return
	}

	var update Update
	if err := json.Unmarshal(body, &update); err != nil {
		rc.logger.Warn("webhook: invalid update JSON", "error", err)
		return
	}

	rc.handler(r, &update)
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(`{"ok":true}`))
}
