// Package keys parses and formats the textual cipher key.
//
// A key reads D<d_rounds>P<p_rounds>R<coefficient>, for example D4P5R3.99,
// optionally followed by S<seed>. Without an S field the seed is derived from
// the other three fields, so the short form alone is enough to decrypt.
package keys

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/crypto/hkdf"

	"github.com/Danishprabhu04/image-encrypt/chaos"
	"github.com/Danishprabhu04/image-encrypt/models"
)

// MaxRounds bounds both round counts.
const MaxRounds = 64

var (
	keyPattern = regexp.MustCompile(`^D(\d+)P(\d+)R([\d.]+)(?:S([\d.]+))?$`)

	seedSalt = []byte("dnacipher/seed/v1")
	seedInfo = []byte("logistic initial condition")
)

// Parse reads a textual key and validates every field.
func Parse(s string) (models.Key, error) {
	m := keyPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return models.Key{}, fmt.Errorf("%w: %q does not match D#P#R#[S#]", models.ErrInvalidKey, s)
	}

	d, err := strconv.Atoi(m[1])
	if err != nil {
		return models.Key{}, fmt.Errorf("%w: d_rounds %q: %v", models.ErrInvalidKey, m[1], err)
	}
	p, err := strconv.Atoi(m[2])
	if err != nil {
		return models.Key{}, fmt.Errorf("%w: p_rounds %q: %v", models.ErrInvalidKey, m[2], err)
	}
	r, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return models.Key{}, fmt.Errorf("%w: coefficient %q: %v", models.ErrInvalidKey, m[3], err)
	}

	if m[4] == "" {
		return New(d, p, r)
	}
	seed, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return models.Key{}, fmt.Errorf("%w: seed %q: %v", models.ErrInvalidKey, m[4], err)
	}
	key := models.Key{DRounds: d, PRounds: p, R: r, Seed: seed}
	return key, Validate(key)
}

// Format renders key in the textual form accepted by Parse. The seed is
// written only when it differs from the derived one.
func Format(key models.Key) string {
	s := canonical(key.DRounds, key.PRounds, key.R)
	if key.Seed != DeriveSeed(key.DRounds, key.PRounds, key.R) {
		s += "S" + strconv.FormatFloat(key.Seed, 'f', -1, 64)
	}
	return s
}

// Validate checks the round counts and the chaos parameters.
func Validate(key models.Key) error {
	if key.DRounds < 1 || key.DRounds > MaxRounds {
		return fmt.Errorf("%w: d_rounds %d outside [1,%d]", models.ErrInvalidKey, key.DRounds, MaxRounds)
	}
	if key.PRounds < 1 || key.PRounds > MaxRounds {
		return fmt.Errorf("%w: p_rounds %d outside [1,%d]", models.ErrInvalidKey, key.PRounds, MaxRounds)
	}
	return chaos.ValidateParams(key.Seed, key.R)
}

// New builds a key whose seed is derived from d, p and r.
func New(d, p int, r float64) (models.Key, error) {
	key := models.Key{DRounds: d, PRounds: p, R: r}
	// validate before deriving so a bad key never reaches the KDF
	key.Seed = 0.5
	if err := Validate(key); err != nil {
		return models.Key{}, err
	}
	key.Seed = DeriveSeed(d, p, r)
	return key, nil
}

// NewRandom builds a key with a seed read from crypto/rand. Its Format always
// carries the S field.
func NewRandom(d, p int, r float64) (models.Key, error) {
	var buf [8]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		return models.Key{}, fmt.Errorf("failed to read random seed: %v", err)
	}
	key := models.Key{DRounds: d, PRounds: p, R: r, Seed: unitInterval(buf)}
	if err := Validate(key); err != nil {
		return models.Key{}, err
	}
	return key, nil
}

// DeriveSeed maps the canonical D#P#R# string into (0,1) with HKDF-SHA256
// under a fixed salt.
func DeriveSeed(d, p int, r float64) float64 {
	kdf := hkdf.New(sha256.New, []byte(canonical(d, p, r)), seedSalt, seedInfo)
	var buf [8]byte
	// an HKDF reader only fails after 255 hash blocks
	_, _ = io.ReadFull(kdf, buf[:])
	return unitInterval(buf)
}

func canonical(d, p int, r float64) string {
	return fmt.Sprintf("D%dP%dR%s", d, p, strconv.FormatFloat(r, 'f', -1, 64))
}

// unitInterval keeps the top 52 bits and centres them in their bucket. With
// 52 bits v+0.5 is exact, so the result is never 0 or 1.
func unitInterval(buf [8]byte) float64 {
	v := binary.BigEndian.Uint64(buf[:]) >> 12
	return (float64(v) + 0.5) / (1 << 52)
}
