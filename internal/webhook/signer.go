// Package webhook implements the paylater webhook signature scheme:
// HMAC-SHA256 over "{timestamp}.{payload}", delivered as
//
//	Paylater-Signature: t={timestamp},v1={signature}
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Signer signs paylater webhook payloads.
type Signer struct{}

// NewSigner creates a Signer.
func NewSigner() *Signer {
	return &Signer{}
}

// Sign produces the Paylater-Signature header. Implements pkg/webhook.Signer.
func (s *Signer) Sign(payload []byte, secret string) map[string]string {
	return s.SignWithTimestamp(payload, secret, time.Now().Unix())
}

// SignWithTimestamp signs with a fixed timestamp, for tests.
func (s *Signer) SignWithTimestamp(payload []byte, secret string, timestamp int64) map[string]string {
	sig := ComputeSignature(timestamp, payload, secret)
	return map[string]string{
		"Paylater-Signature": fmt.Sprintf("t=%d,v1=%s", timestamp, sig),
	}
}

// ComputeSignature computes the v1 HMAC-SHA256 signature.
func ComputeSignature(timestamp int64, payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
