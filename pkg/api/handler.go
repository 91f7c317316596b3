// Package api exposes the bot's operational surface: the Telegram
// webhook, health/status, cache refresh and admin registration
// endpoints, over HTTP and MCP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mark3labs/mcp-go/server"

	"github.com/hidalgodigital/pedbot/pkg/kit"
	"github.com/hidalgodigital/pedbot/pkg/municipio"
	"github.com/hidalgodigital/pedbot/pkg/sheets"
	"github.com/hidalgodigital/pedbot/pkg/store"
)

// Services are the core collaborators the API routes over.
type Services struct {
	Matcher *municipio.Matcher
	Counts  *sheets.Cache
	Chats   *store.Store
	Logger  *slog.Logger
}

// NewRouter returns an http.Handler with all routes. webhook handles
// POST /webhook (nil disables it, e.g. in tests); mcpSrv, when
// non-nil, is mounted at /mcp over the streamable HTTP transport.
func NewRouter(s Services, webhook http.Handler, mcpSrv *server.MCPServer) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	h := &handler{
		resolve:   kit.Chain(kit.Logging(s.Logger, "resolve"))(resolveEndpoint(s.Matcher, s.Counts)),
		refresh:   kit.Chain(kit.Logging(s.Logger, "refresh"))(refreshEndpoint(s.Counts)),
		snapshot:  kit.Chain(kit.Logging(s.Logger, "snapshot"))(snapshotEndpoint(s.Counts)),
		chatGet:   kit.Chain(kit.Logging(s.Logger, "chat_get"))(chatGetEndpoint(s.Chats)),
		chatReset: kit.Chain(kit.Logging(s.Logger, "chat_reset"))(chatResetEndpoint(s.Chats)),
		svc:       s,
	}

	mux := http.NewServeMux()
	if webhook != nil {
		mux.Handle("POST /webhook", webhook)
	}
	mux.HandleFunc("GET /{$}", h.handleStatus)
	mux.HandleFunc("GET /v1/health", h.handleHealth)
	mux.HandleFunc("GET /v1/resolve/{term}", h.handleResolve)
	mux.HandleFunc("GET /v1/counts", h.handleSnapshot)
	mux.HandleFunc("POST /v1/refresh", h.handleRefresh)
	mux.HandleFunc("GET /v1/admin/chats/{chat_id}", h.handleChatGet)
	mux.HandleFunc("POST /v1/admin/chats/{chat_id}/reset", h.handleChatReset)
	if mcpSrv != nil {
		mux.Handle("/mcp", server.NewStreamableHTTPServer(mcpSrv))
	}

	return cors(mux)
}

type handler struct {
	resolve   kit.Endpoint
	refresh   kit.Endpoint
	snapshot  kit.Endpoint
	chatGet   kit.Endpoint
	chatReset kit.Endpoint
	svc       Services
}

// --- status / health ---

type statusResponse struct {
	Status          string   `json:"status"`
	Municipios      int      `json:"municipios"`
	RegisteredChats int      `json:"registered_chats"`
	CacheAgeSec     *float64 `json:"cache_age_sec"`
}

func (h *handler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{
		Status:     "ok",
		Municipios: h.svc.Matcher.Len(),
	}
	if n, err := h.svc.Chats.Count(); err == nil {
		resp.RegisteredChats = n
	}
	if age, ok := h.svc.Counts.Age(); ok {
		sec := age.Seconds()
		resp.CacheAgeSec = &sec
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- resolve ---

func (h *handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	term := r.PathValue("term")
	if term == "" {
		writeError(w, http.StatusBadRequest, "missing term")
		return
	}
	resp, err := h.resolve(r.Context(), &resolveReq{Text: term})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- counts ---

func (h *handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	resp, err := h.snapshot(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	resp, err := h.refresh(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- admin: chat registrations ---

func (h *handler) handleChatGet(w http.ResponseWriter, r *http.Request) {
	chatID, ok := chatIDParam(w, r)
	if !ok {
		return
	}
	resp, err := h.chatGet(r.Context(), &chatReq{ChatID: chatID})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleChatReset(w http.ResponseWriter, r *http.Request) {
	chatID, ok := chatIDParam(w, r)
	if !ok {
		return
	}
	resp, err := h.chatReset(r.Context(), &chatReq{ChatID: chatID})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func chatIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("chat_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chat_id")
		return 0, false
	}
	return id, true
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based admin clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
