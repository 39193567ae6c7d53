// Package http provides http transport for biometrics
package http

import (
	"encoding/json"
	stdhttp "net/http"
	"sync"
	"time"

	"fingerprintd/internal/modkit/httpkit"
	pnet "fingerprintd/internal/platform/net"
	"fingerprintd/internal/platform/net/http/bind"

	"fingerprintd/internal/services/api/biometrics/domain"
	svc "fingerprintd/internal/services/api/biometrics/service"
)

var tagOnce sync.Once

// registerTags installs the fptemplate validation tag once per process
func registerTags() {
	tagOnce.Do(func() {
		_ = bind.RegisterTag("fptemplate", func(fl bind.FieldLevel) bool {
			_, err := domain.DecodeTemplate(fl.Field().String())
			return err == nil
		}, "{0} must be a base64 template of at most 2048 bytes")
	})
}

// tolerant bodies: unknown fields are ignored and an empty body means no input
var tolerant = httpkit.JSONOptions{AllowEmptyBody: true}

// Register mounts biometrics endpoints on the given router
func Register(r httpkit.Router, s svc.Service, now func() time.Time) {
	registerTags()
	h := &handlers{svc: s, now: now}

	httpkit.Get(r, "/ping", h.ping)
	httpkit.Post(r, "/device/open", h.open)
	httpkit.Post(r, "/device/close", h.close)
	httpkit.Post(r, "/enroll", h.enroll)
	httpkit.PostJSON(r, "/verify", h.verify, tolerant)
	httpkit.PostJSON(r, "/identify", h.identify, tolerant)
	httpkit.Get(r, "/debug/selftest", h.selftest)
	httpkit.Get(r, "/debug/info", h.info)
}

type handlers struct {
	svc svc.Service
	now func() time.Time
}

// @Summary Liveness probe with server time
// @Tags Biometrics
// @Produce json
// @Success 200 {object} domain.PingResponse
// @Router /ping [get]
func (h *handlers) ping(_ *stdhttp.Request) (any, error) {
	return domain.PingResponse{Ack: pnet.Done, TS: h.now().UTC().Format(time.RFC3339Nano)}, nil
}

// @Summary Open the sensor session
// @Tags Device
// @Produce json
// @Success 200 {object} net.Ack
// @Router /device/open [post]
func (h *handlers) open(r *stdhttp.Request) (any, error) {
	return nil, h.svc.Open(r.Context())
}

// @Summary Close the sensor session
// @Tags Device
// @Produce json
// @Success 200 {object} net.Ack
// @Router /device/close [post]
func (h *handlers) close(r *stdhttp.Request) (any, error) {
	return nil, h.svc.Close(r.Context())
}

// @Summary Enroll one finger from three captures
// @Tags Biometrics
// @Produce json
// @Success 200 {object} domain.EnrollResponse
// @Router /enroll [post]
func (h *handlers) enroll(r *stdhttp.Request) (any, error) {
	tpl, err := h.svc.Enroll(r.Context())
	if err != nil {
		return nil, err
	}
	return domain.EnrollResponse{Ack: pnet.Done, Template: domain.EncodeTemplate(tpl)}, nil
}

// @Summary Verify a live capture against a stored template
// @Tags Biometrics
// @Accept json
// @Produce json
// @Param payload body domain.VerifyInput true "Stored template"
// @Success 200 {object} domain.MatchResponse
// @Router /verify [post]
func (h *handlers) verify(r *stdhttp.Request, in domain.VerifyInput) (any, error) {
	res, err := h.svc.Verify(r.Context(), in.Template)
	if err != nil {
		return nil, err
	}
	return domain.MatchResponse{Ack: pnet.Done, Match: res.Matched, Score: res.Score}, nil
}

// @Summary Identify a live capture among candidates
// @Tags Biometrics
// @Accept json
// @Produce json
// @Param payload body domain.IdentifyInput true "Candidates"
// @Success 200 {object} domain.IdentifyResponse
// @Router /identify [post]
func (h *handlers) identify(r *stdhttp.Request, in domain.IdentifyInput) (any, error) {
	entries := make([]domain.Entry, 0, len(in.Entries))
	for _, e := range in.Entries {
		raw := e.ID
		if len(raw) == 0 {
			raw = e.IDEmpleado
		}
		entries = append(entries, domain.Entry{ID: parseID(raw), Template: e.TemplateBase64})
	}
	res, err := h.svc.Identify(r.Context(), entries)
	if err != nil {
		return nil, err
	}
	return domain.IdentifyResponse{
		MatchResponse: domain.MatchResponse{Ack: pnet.Done, Match: res.Matched, Score: res.Score},
		ID:            res.ID,
		IDEmpleado:    res.ID,
	}, nil
}

// parseID reads an integer id, bare or quoted ("12"); anything else becomes -1 so the entry is skipped
func parseID(raw json.RawMessage) int64 {
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return -1
	}
	v, err := n.Int64()
	if err != nil {
		return -1
	}
	return v
}

// @Summary Capture twice and score the pair
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} domain.SelfTestResponse
// @Router /debug/selftest [get]
func (h *handlers) selftest(r *stdhttp.Request) (any, error) {
	st, err := h.svc.SelfTest(r.Context())
	if err != nil {
		return nil, err
	}
	return domain.SelfTestResponse{Ack: pnet.Done, ABytes: st.ABytes, BBytes: st.BBytes, Score: st.Score}, nil
}

// @Summary Session readiness and image geometry
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} domain.InfoResponse
// @Router /debug/info [get]
func (h *handlers) info(r *stdhttp.Request) (any, error) {
	in := h.svc.Info(r.Context())
	return domain.InfoResponse{Ack: pnet.Done, Ready: in.Ready, Width: in.Width, Height: in.Height}, nil
}
