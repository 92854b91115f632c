package http

import (
	"net/http"
	"time"

	"github.com/cipware/securepay/internal/bank/store"
	"github.com/cipware/securepay/pkg/httpx"
)

type healthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database,omitempty"`
}

type LivezHandler struct {
	BuildVersion string
	StartTime    time.Time
}

// ServeHTTP is the liveness probe; it answers 200 whenever the process is up.
//
//	@Summary		Liveness probe
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	healthResponse	"status, uptime, version"
//	@Router			/livez [get].
func (h *LivezHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Uptime:  time.Since(h.StartTime).String(),
		Version: h.BuildVersion,
	})
}

type ReadyzHandler struct {
	Store store.Store
}

// ServeHTTP is the readiness probe; it checks database connectivity.
//
//	@Summary		Readiness probe
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	healthResponse	"ready"
//	@Failure		503	{object}	healthResponse	"database unreachable"
//	@Router			/readyz [get].
func (h *ReadyzHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: "ok"}
	code := http.StatusOK

	if err := h.Store.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "error: " + err.Error()
		code = http.StatusServiceUnavailable
	}

	httpx.WriteJSON(w, code, resp)
}
