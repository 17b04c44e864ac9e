package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const previewLength = 20

// Info summarises what can be learned from a bearer token without verifying
// it. Opaque tokens only report Length and Preview.
type Info struct {
	Length    int        `json:"length"`
	Preview   string     `json:"preview"`
	JWT       bool       `json:"jwt"`
	Issuer    string     `json:"issuer,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Expired   bool       `json:"expired"`
}

// DocuSignIssued reports whether the issuer points at a DocuSign account
// server rather than the CLM API.
func (i Info) DocuSignIssued() bool {
	return strings.Contains(i.Issuer, "docusign.com")
}

// Inspect decodes raw as a JWT when it looks like one. The signature is never
// checked; the result only feeds diagnostics.
func Inspect(raw string, now time.Time) Info {
	raw = strings.TrimSpace(raw)
	info := Info{Length: len(raw), Preview: Preview(raw)}
	if strings.Count(raw, ".") != 2 {
		return info
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return info
	}
	info.JWT = true
	info.Issuer, _ = claims.GetIssuer()
	info.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expires := exp.Time.UTC()
		info.ExpiresAt = &expires
		info.Expired = expires.Before(now)
	}
	return info
}

// Preview returns the first characters of raw for log output.
func Preview(raw string) string {
	if raw == "" {
		return ""
	}
	if len(raw) <= previewLength {
		return raw[:min(len(raw), 4)] + "..."
	}
	return raw[:previewLength] + "..."
}
