// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-todo-sync/models"
)

const testHashKey = "test-secret-key"

func TestHasher_HashDeterministic(t *testing.T) {
	h := NewHasher(testHashKey)

	data := []byte("test-data")

	sum1 := h.Hash(data)
	sum2 := h.Hash(data)

	if len(sum1) == 0 {
		t.Fatal("hash result is empty")
	}

	if !bytes.Equal(sum1, sum2) {
		t.Fatal("hash must be deterministic for the same input")
	}

	// verify against direct HMAC computation
	mac := hmac.New(sha256.New, []byte(testHashKey))
	mac.Write(data)
	expected := mac.Sum(nil)

	if !bytes.Equal(sum1, expected) {
		t.Fatalf("unexpected hash value\nwant: %x\ngot:  %x", expected, sum1)
	}
}

func TestHasher_SignAndVerifyBatchBody(t *testing.T) {
	h := NewHasher(testHashKey)

	body, err := json.Marshal(models.BatchRequest{
		Items: []models.QueueEntry{{ID: "e1", RecordID: "r1", Operation: models.OperationCreate}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	sig := h.Sign(body)
	if sig != HashString(string(body), testHashKey) {
		t.Fatal("Sign must match HashString for the same key")
	}

	if !h.Verify(body, sig) {
		t.Fatal("expected signature to verify")
	}

	tampered := append([]byte{}, body...)
	tampered[len(tampered)-2] = 'X'
	if h.Verify(tampered, sig) {
		t.Fatal("tampered body must not verify")
	}
}

func TestHasher_DifferentKeys(t *testing.T) {
	data := []byte("payload")

	a := NewHasher("key-a").Sign(data)
	b := NewHasher("key-b").Sign(data)

	if a == b {
		t.Fatal("different keys must produce different signatures")
	}
}

func TestHasher_Disabled(t *testing.T) {
	h := NewHasher("")

	if h.Enabled() {
		t.Fatal("hasher with empty key must be disabled")
	}
	if sig := h.Sign([]byte("x")); sig != "" {
		t.Fatalf("expected empty signature, got %s", sig)
	}

	var nilHasher *Hasher
	if nilHasher.Enabled() {
		t.Fatal("nil hasher must be disabled")
	}
}

func TestHasher_VerifyRejectsNonHex(t *testing.T) {
	h := NewHasher(testHashKey)

	if h.Verify([]byte("x"), "not-hex") {
		t.Fatal("non-hex signature must not verify")
	}
}

func TestHashString_HexEncoded(t *testing.T) {
	sig := HashString("data", testHashKey)

	if _, err := hex.DecodeString(sig); err != nil {
		t.Fatalf("expected hex output, got %s", sig)
	}
	if len(sig) != sha256.Size*2 {
		t.Fatalf("expected %d hex chars, got %d", sha256.Size*2, len(sig))
	}
}
