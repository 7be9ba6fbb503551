// Package signature verifies webhook payload signatures.
//
// The platform signs every callback by computing an HMAC of the raw request
// body with the shared app secret and sending it as a header of the form
// "sha1=<hexdigest>". Verification must run on the exact bytes received,
// before any JSON decoding, because re-serialization is not byte-stable.
package signature

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // Algorithm is dictated by the platform header scheme.
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	apperrors "github.com/chowbot/chowbot-go/internal/errors"
)

// Verifier validates webhook signatures against a shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for the given shared app secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks the signature header against the raw request body.
//
// The header value must be "<method>=<hexdigest>" where method names the
// digest algorithm (sha1 or sha256). Hex digits are compared after decoding,
// so digest case does not matter. Returns ErrSignatureMissing for an empty
// header and ErrSignatureInvalid for anything that does not match.
func (v *Verifier) Verify(body []byte, header string) error {
	if header == "" {
		return apperrors.ErrSignatureMissing
	}

	method, hexDigest, ok := strings.Cut(header, "=")
	if !ok {
		return fmt.Errorf("%w: header %q has no method prefix", apperrors.ErrSignatureInvalid, header)
	}

	var mac hash.Hash
	switch strings.ToLower(method) {
	case "sha1":
		mac = hmac.New(sha1.New, v.secret)
	case "sha256":
		mac = hmac.New(sha256.New, v.secret)
	default:
		return fmt.Errorf("%w: unsupported digest method %q", apperrors.ErrSignatureInvalid, method)
	}

	supplied, err := hex.DecodeString(strings.TrimSpace(hexDigest))
	if err != nil {
		return fmt.Errorf("%w: digest is not valid hex", apperrors.ErrSignatureInvalid)
	}

	mac.Write(body)
	expected := mac.Sum(nil)

	if !hmac.Equal(expected, supplied) {
		return apperrors.ErrSignatureInvalid
	}
	return nil
}

// Sign computes the signature header value for a body using the given
// method. Exposed for tests and local tooling.
func (v *Verifier) Sign(body []byte, method string) (string, error) {
	var mac hash.Hash
	switch strings.ToLower(method) {
	case "sha1":
		mac = hmac.New(sha1.New, v.secret)
	case "sha256":
		mac = hmac.New(sha256.New, v.secret)
	default:
		return "", fmt.Errorf("unsupported digest method %q", method)
	}
	mac.Write(body)
	return strings.ToLower(method) + "=" + hex.EncodeToString(mac.Sum(nil)), nil
}
