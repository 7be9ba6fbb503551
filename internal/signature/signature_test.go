package signature

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/chowbot/chowbot-go/internal/errors"
)

func TestVerify_ValidSignature(t *testing.T) {
	v := NewVerifier("app_secret")
	body := []byte(`{"object":"page","entry":[]}`)

	for _, method := range []string{"sha1", "sha256"} {
		header, err := v.Sign(body, method)
		if err != nil {
			t.Fatalf("Sign(%s) failed: %v", method, err)
		}
		if err := v.Verify(body, header); err != nil {
			t.Errorf("Verify(%s) failed for valid signature: %v", method, err)
		}
	}
}

func TestVerify_HexCaseInsensitive(t *testing.T) {
	v := NewVerifier("app_secret")
	body := []byte("payload bytes")

	header, err := v.Sign(body, "sha1")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	method, digest, _ := strings.Cut(header, "=")
	upper := method + "=" + strings.ToUpper(digest)
	if err := v.Verify(body, upper); err != nil {
		t.Errorf("Verify rejected uppercase hex digest: %v", err)
	}
}

func TestVerify_SingleByteMutationInvalidates(t *testing.T) {
	v := NewVerifier("app_secret")
	body := []byte(`{"object":"page","entry":[{"id":"1"}]}`)

	header, err := v.Sign(body, "sha1")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	for i := range body {
		mutated := append([]byte(nil), body...)
		mutated[i] ^= 0x01
		if err := v.Verify(mutated, header); !errors.Is(err, apperrors.ErrSignatureInvalid) {
			t.Fatalf("Verify accepted body mutated at byte %d", i)
		}
	}
}

func TestVerify_MissingHeader(t *testing.T) {
	v := NewVerifier("app_secret")
	if err := v.Verify([]byte("body"), ""); !errors.Is(err, apperrors.ErrSignatureMissing) {
		t.Errorf("Expected ErrSignatureMissing, got %v", err)
	}
}

func TestVerify_BadHeaders(t *testing.T) {
	v := NewVerifier("app_secret")
	body := []byte("body")

	tests := []struct {
		name   string
		header string
	}{
		{"no method prefix", "deadbeef"},
		{"unsupported method", "md5=deadbeef"},
		{"digest not hex", "sha1=zzzz"},
		{"wrong digest", "sha1=deadbeefdeadbeefdeadbeefdeadbeefdeadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.Verify(body, tt.header); !errors.Is(err, apperrors.ErrSignatureInvalid) {
				t.Errorf("Expected ErrSignatureInvalid, got %v", err)
			}
		})
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	body := []byte("body")
	header, err := NewVerifier("secret_a").Sign(body, "sha256")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if err := NewVerifier("secret_b").Verify(body, header); !errors.Is(err, apperrors.ErrSignatureInvalid) {
		t.Errorf("Expected ErrSignatureInvalid across secrets, got %v", err)
	}
}
