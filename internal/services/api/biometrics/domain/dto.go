package domain

import (
	"encoding/json"

	pnet "fingerprintd/internal/platform/net"
)

// PingResponse is the liveness payload
type PingResponse struct {
	pnet.Ack
	TS string `json:"ts" example:"2026-10-15T09:30:00.123456789Z"`
}

// EnrollResponse carries the fused template
type EnrollResponse struct {
	pnet.Ack
	Template string `json:"template" example:"U0lNVA..."`
}

// VerifyInput is the verify body. An absent or empty template is a non-match
type VerifyInput struct {
	Template string `json:"template" validate:"omitempty,fptemplate" example:"U0lNVA..."`
}

// IdentifyEntryInput is one candidate. idEmpleado is accepted for older clients.
// Ids stay raw so one malformed entry is skipped instead of failing the body
type IdentifyEntryInput struct {
	ID             json.RawMessage `json:"id,omitempty" swaggertype:"integer" example:"1001"`
	IDEmpleado     json.RawMessage `json:"idEmpleado,omitempty" swaggertype:"integer"`
	TemplateBase64 string          `json:"templateBase64" example:"U0lNVA..."`
}

// IdentifyInput is the identify body
type IdentifyInput struct {
	Entries []IdentifyEntryInput `json:"entries"`
}

// MatchResponse is the verify and identify payload, id is only sent by identify
type MatchResponse struct {
	pnet.Ack
	Match bool `json:"match"`
	Score int  `json:"score"`
}

// IdentifyResponse adds the matched candidate, null when none.
// idEmpleado mirrors id for older clients
type IdentifyResponse struct {
	MatchResponse
	ID         *uint32 `json:"id"`
	IDEmpleado *uint32 `json:"idEmpleado"`
}

// SelfTestResponse is the selftest payload
type SelfTestResponse struct {
	pnet.Ack
	ABytes int `json:"charA_bytes" example:"1024"`
	BBytes int `json:"charB_bytes" example:"1024"`
	Score  int `json:"match_score_A_vs_B" example:"92"`
}

// InfoResponse is the debug info payload
type InfoResponse struct {
	pnet.Ack
	Ready  bool `json:"ready"`
	Width  int  `json:"imgW" example:"300"`
	Height int  `json:"imgH" example:"400"`
}
