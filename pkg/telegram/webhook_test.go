package telegram

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postUpdate(t *testing.T, rc *Receiver, secret, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	if secret != "" {
		req.Header.Set(secretTokenHeader, secret)
	}
	w := httptest.NewRecorder()
	rc.ServeHTTP(w, req)
	return w
}

func TestReceiverDispatchesUpdate(t *testing.T) {
	var got *Update
	rc := NewReceiver("shh", func(_ *http.Request, u *Update) { got = u }, nil)

	w := postUpdate(t, rc, "shh",
		`{"update_id":7,"message":{"message_id":1,"chat":{"id":42,"type":"private"},"text":"municipio Pachuca"}}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got == nil || got.UpdateID != 7 || got.Message == nil || got.Message.Chat.ID != 42 {
		t.Fatalf("handler got %+v", got)
	}
	if got.Message.Text != "municipio Pachuca" {
		t.Errorf("text = %q", got.Message.Text)
	}
}

func TestReceiverRejectsBadSecret(t *testing.T) {
	called := false
	rc := NewReceiver("shh", func(*http.Request, *Update) { called = true }, nil)

	w := postUpdate(t, rc, "wrong", `{"update_id":1}`)

	// Telegram still gets a 200 so it stops retrying, but the update
	// never reaches the handler.
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if called {
		t.Error("handler called despite invalid secret")
	}
}

func TestReceiverIgnoresMalformedJSON(t *testing.T) {
	called := false
	rc := NewReceiver("", func(*http.Request, *Update) { called = true }, nil)

	w := postUpdate(t, rc, "", `{not json`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if called {
		t.Error("handler called for malformed body")
	}
}
