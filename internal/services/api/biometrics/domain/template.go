package domain

import (
	"encoding/base64"
	"strings"

	perr "fingerprintd/internal/platform/errors"
)

// DecodeTemplate turns the wire form of a template into bytes.
// Padded and unpadded standard base64 are accepted
func DecodeTemplate(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(s)
	}
	switch {
	case err != nil:
		return nil, perr.InvalidArgf("template is not valid base64")
	case len(raw) == 0:
		return nil, perr.InvalidArgf("template is empty")
	case len(raw) > MaxTemplateBytes:
		return nil, perr.InvalidArgf("template is %d bytes, limit is %d", len(raw), MaxTemplateBytes)
	}
	return raw, nil
}

// EncodeTemplate is the wire form of a template
func EncodeTemplate(b []byte) string { return base64.StdEncoding.EncodeToString(b) }
