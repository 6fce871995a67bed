package identity

import (
	"encoding/hex"
	"strings"

	"github.com/parceldesk/backend/internal/domain/shared"
	"golang.org/x/crypto/blake2b"
)

// fieldSeparator keeps email and phone contributions to the hash distinct,
// so ("ab", "c") and ("a", "bc") can never produce the same fingerprint.
const fieldSeparator = "\x1f"

// NormalizeEmail lower-cases and trims an email address. No further
// canonicalization (gmail dots, plus-addressing) is attempted.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips all non-digit characters and rewrites a leading
// international dialing prefix ("00") to a "+" marker. It performs no
// locale-aware canonicalization: "017612345678" and "+4917612345678" are
// distinct values. This is a documented limitation, not a defect.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "00") {
		return "+" + digits[2:]
	}
	return digits
}

// Normalize applies both identifier normalizations.
func Normalize(email, phone string) (normalizedEmail, normalizedPhone string) {
	return NormalizeEmail(email), NormalizePhone(phone)
}

// Fingerprinter derives one-way contact fingerprints. The pepper is a
// server-side secret mixed into the hash so fingerprints cannot be guessed
// offline even when the inputs are known. It is injected at construction,
// never read from global state, so tests can supply their own.
type Fingerprinter struct {
	pepper []byte
}

// NewFingerprinter creates a Fingerprinter with the given pepper.
// The pepper must be non-empty and at most 64 bytes (BLAKE2b key limit).
func NewFingerprinter(pepper string) (*Fingerprinter, error) {
	if pepper == "" {
		return nil, shared.NewDomainError("INVALID_PEPPER", "Identity pepper cannot be empty")
	}
	if len(pepper) > 64 {
		return nil, shared.NewDomainError("INVALID_PEPPER", "Identity pepper cannot exceed 64 bytes")
	}
	return &Fingerprinter{pepper: []byte(pepper)}, nil
}

// Fingerprint computes the deterministic keyed hash of already-normalized
// identifiers. Identical inputs always yield identical output.
func (f *Fingerprinter) Fingerprint(normalizedEmail, normalizedPhone string) string {
	// Key length is validated at construction, New256 cannot fail here.
	h, _ := blake2b.New256(f.pepper)
	h.Write([]byte(normalizedEmail))
	h.Write([]byte(fieldSeparator))
	h.Write([]byte(normalizedPhone))
	return hex.EncodeToString(h.Sum(nil))
}

// FingerprintContact normalizes raw identifiers and fingerprints them in
// one step.
func (f *Fingerprinter) FingerprintContact(email, phone string) string {
	normalizedEmail, normalizedPhone := Normalize(email, phone)
	return f.Fingerprint(normalizedEmail, normalizedPhone)
}
