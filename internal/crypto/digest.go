package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/blake2s"
)

const (
	// DigestLen is the blake2s-256 output length in bytes.
	DigestLen = blake2s.Size

	// NonceHexWidth is the full hex width of a 256-bit value. Emitted
	// nonces and parsed difficulty strings are padded to this width.
	NonceHexWidth = 2 * DigestLen
)

// AppendMessage assembles prefix || nonceHex || suffix into buf and
// returns the extended slice. Callers pass buf[:0] to reuse the backing
// array across candidates in the hot path.
func AppendMessage(buf, prefix []byte, nonceHex string, suffix []byte) []byte {
	buf = append(buf, prefix...)
	buf = append(buf, nonceHex...)
	return append(buf, suffix...)
}

// HashMessage returns the blake2s-256 digest of msg.
func HashMessage(msg []byte) [DigestLen]byte {
	return blake2s.Sum256(msg)
}

// DigestBelow reports whether the digest, read as a big-endian unsigned
// 256-bit integer, is strictly below target.
func DigestBelow(digest *[DigestLen]byte, target *uint256.Int) bool {
	var d uint256.Int
	d.SetBytes32(digest[:])
	return d.Cmp(target) < 0
}

// ParseTarget parses a difficulty string into the 256-bit threshold a
// digest must fall below. The string is left-justified and padded on the
// right with zeros to 64 hex digits, so "abc" becomes 0xabc000...0.
// A leading 0x is accepted and stripped.
func ParseTarget(difficulty string) (*uint256.Int, error) {
	d := strings.TrimSpace(difficulty)
	if len(d) >= 2 && (d[0:2] == "0x" || d[0:2] == "0X") {
		d = d[2:]
	}
	if d == "" {
		return nil, fmt.Errorf("empty difficulty string")
	}
	if len(d) > NonceHexWidth {
		return nil, fmt.Errorf("difficulty %q longer than %d hex digits", difficulty, NonceHexWidth)
	}

	padded := d + strings.Repeat("0", NonceHexWidth-len(d))
	raw, err := hex.DecodeString(padded)
	if err != nil {
		return nil, fmt.Errorf("invalid difficulty %q: %w", difficulty, err)
	}
	return new(uint256.Int).SetBytes32(raw), nil
}

// FormatNonce renders n as lowercase hex, left-zero-padded to the full
// 64-digit width used for the final printed answer.
func FormatNonce(n *big.Int) string {
	return fmt.Sprintf("%0*x", NonceHexWidth, n)
}

var seedOffset = new(big.Int).Lsh(big.NewInt(1), 255)

// RandomSeed returns random(255 bits) + 2^255. Forcing the top bit keeps
// every candidate derived from the seed in the upper half of the 256-bit
// range, so its natural hex form already spans the full width.
// The seed only distinguishes independent runs; it carries no security
// requirement.
func RandomSeed() (*big.Int, error) {
	r, err := rand.Int(rand.Reader, seedOffset)
	if err != nil {
		return nil, err
	}
	return r.Add(r, seedOffset), nil
}
