package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/goliatone/go-clmform/pkg/testsupport"
	"github.com/goliatone/go-clmform/pkg/token"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return raw
}

func TestInspect_ExpiredJWT(t *testing.T) {
	now := testsupport.ReferenceTime
	raw := signed(t, jwt.MapClaims{
		"iss": "https://account-d.docusign.com",
		"sub": "user-1",
		"exp": now.Add(-time.Minute).Unix(),
	})

	info := token.Inspect(raw, now)
	if !info.JWT || !info.Expired {
		t.Fatalf("expected expired JWT, got %#v", info)
	}
	if info.Issuer != "https://account-d.docusign.com" || !info.DocuSignIssued() {
		t.Fatalf("unexpected issuer %q", info.Issuer)
	}
	if info.Subject != "user-1" {
		t.Fatalf("unexpected subject %q", info.Subject)
	}
	if info.ExpiresAt == nil || !info.ExpiresAt.Equal(now.Add(-time.Minute)) {
		t.Fatalf("unexpected expiry %v", info.ExpiresAt)
	}
}

func TestInspect_ValidJWT(t *testing.T) {
	now := testsupport.ReferenceTime
	info := token.Inspect(signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), now)
	if !info.JWT || info.Expired {
		t.Fatalf("expected unexpired JWT, got %#v", info)
	}
	if info.DocuSignIssued() {
		t.Fatalf("token without issuer must not be flagged")
	}
}

func TestInspect_OpaqueToken(t *testing.T) {
	info := token.Inspect("opaque-token-value-that-is-long", testsupport.ReferenceTime)
	if info.JWT || info.Expired || info.ExpiresAt != nil {
		t.Fatalf("opaque token must not decode, got %#v", info)
	}
	if info.Preview != "opaque-token-value-t..." {
		t.Fatalf("unexpected preview %q", info.Preview)
	}

	if token.Inspect("a.b.c", testsupport.ReferenceTime).JWT {
		t.Fatalf("malformed segments must not decode")
	}
}

func TestPreview_ShortToken(t *testing.T) {
	if got := token.Preview("abcdefgh"); got != "abcd..." {
		t.Fatalf("unexpected preview %q", got)
	}
	if got := token.Preview(""); got != "" {
		t.Fatalf("unexpected preview %q", got)
	}
}
