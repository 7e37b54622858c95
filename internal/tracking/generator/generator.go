package generator

import (
	"crypto/rand"
	"math/big"
	"time"
)

const (
	// Alphabet is the symbol set of a tracking number, in digit order.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// TimeLength and RandomLength are the widths of the two fields.
	TimeLength   = 8
	RandomLength = 8
	// Length is the total tracking number length.
	Length = TimeLength + RandomLength

	timeMask = 0xFF_FFFF_FFFF // lower 40 bits
)

// RandomSource yields symbol indexes drawn uniformly from [0, alphabetSize).
type RandomSource interface {
	NextSymbol(alphabetSize int) int
}

// Generator produces candidate tracking numbers. It holds no mutable state
// and is safe for concurrent use when its RandomSource is.
type Generator struct {
	random RandomSource
}

// New returns a Generator drawing from src, or from SecureRandom when src is nil.
func New(src RandomSource) *Generator {
	if src == nil {
		src = SecureRandom{}
	}
	return &Generator{random: src}
}

// Generate returns the candidate for the instant now.
func (g *Generator) Generate(now time.Time) string {
	var buf [Length]byte
	EncodeTime(buf[:TimeLength], now)
	for i := TimeLength; i < Length; i++ {
		buf[i] = Alphabet[g.random.NextSymbol(len(Alphabet))]
	}
	return string(buf[:])
}

// EncodeTime writes the time field for now into dst, which must hold TimeLength bytes.
func EncodeTime(dst []byte, now time.Time) {
	v := uint64(now.UnixMilli()) & timeMask
	base := uint64(len(Alphabet))
	for i := 0; i < TimeLength; i++ {
		dst[i] = Alphabet[v%base]
		v /= base
	}
}

// TimeField returns the time field for now.
func TimeField(now time.Time) string {
	var buf [TimeLength]byte
	EncodeTime(buf[:], now)
	return string(buf[:])
}

// Valid reports whether s has the shape of a tracking number.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// SecureRandom draws symbols from crypto/rand.
type SecureRandom struct{}

// NextSymbol returns a uniform index in [0, alphabetSize). It panics if the
// system random source fails, which leaves the process unable to issue ids.
func (SecureRandom) NextSymbol(alphabetSize int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(alphabetSize)))
	if err != nil {
		panic("generator: secure random source failed: " + err.Error())
	}
	return int(n.Int64())
}
