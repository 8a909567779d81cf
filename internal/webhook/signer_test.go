package webhook

import (
	"crypto/hmac"
	"encoding/hex"
	"strings"
	"testing"
)

func TestSignWithTimestampIsDeterministic(t *testing.T) {
	s := NewSigner()
	payload := []byte(`{"id":"plevt_000001"}`)

	h1 := s.SignWithTimestamp(payload, "whsec_test", 1700000000)
	h2 := s.SignWithTimestamp(payload, "whsec_test", 1700000000)

	if h1["Paylater-Signature"] != h2["Paylater-Signature"] {
		t.Error("expected identical signatures for identical inputs")
	}
	if !strings.HasPrefix(h1["Paylater-Signature"], "t=1700000000,v1=") {
		t.Errorf("unexpected header format: %s", h1["Paylater-Signature"])
	}
}

func TestComputeSignatureVerifiable(t *testing.T) {
	payload := []byte(`{"type":"agreement.created"}`)
	sig := ComputeSignature(1700000000, payload, "whsec_test")

	raw, err := hex.DecodeString(sig)
	if err != nil {
		t.Fatalf("signature is not hex: %v", err)
	}
	expected, _ := hex.DecodeString(ComputeSignature(1700000000, payload, "whsec_test"))
	if !hmac.Equal(raw, expected) {
		t.Error("signature does not verify against itself")
	}

	if ComputeSignature(1700000000, payload, "other_secret") == sig {
		t.Error("different secrets must produce different signatures")
	}
	if ComputeSignature(1700000001, payload, "whsec_test") == sig {
		t.Error("different timestamps must produce different signatures")
	}
}
