// Package otp generates and checks the one-time codes used by registration and login.
package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"time"
)

// Digits is the length of every generated code.
const Digits = 6

// DefaultTTL is used when Engine is created with a non-positive TTL.
const DefaultTTL = 5 * time.Minute

var codeSpace = big.NewInt(1_000_000)

// Result is the outcome of Verify.
type Result int

const (
	Valid Result = iota
	Expired
	Mismatch
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case Expired:
		return "expired"
	case Mismatch:
		return "mismatch"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Engine generates codes and evaluates submitted codes against stored hashes.
type Engine struct {
	ttl    time.Duration
	random io.Reader
}

// NewEngine returns an Engine whose codes live for ttl.
func NewEngine(ttl time.Duration) *Engine {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Engine{ttl: ttl, random: rand.Reader}
}

// TTL returns the lifetime of a generated code.
func (e *Engine) TTL() time.Duration {
	return e.ttl
}

// Generate returns a uniformly distributed 6-digit numeric code, e.g. "042917".
func (e *Engine) Generate() (string, error) {
	n, err := rand.Int(e.random, codeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", Digits, n.Int64()), nil
}

// Expiry returns the absolute expiry for a code issued at now.
func (e *Engine) Expiry(now time.Time) time.Time {
	return now.Add(e.ttl)
}

// Hash returns the hex SHA-256 digest stored in place of the code.
func Hash(code string) string {
	h := sha256.Sum256([]byte(code))
	return hex.EncodeToString(h[:])
}

// Verify checks supplied against the stored hash and expiry.
// Expiry is evaluated on its own: a matching code at or after storedExpiry is Expired.
func Verify(storedHash string, storedExpiry time.Time, supplied string, now time.Time) Result {
	if !now.Before(storedExpiry) {
		return Expired
	}
	if subtle.ConstantTimeCompare([]byte(Hash(supplied)), []byte(storedHash)) != 1 {
		return Mismatch
	}
	return Valid
}
