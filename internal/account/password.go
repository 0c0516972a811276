package account

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

const (
	PasswordLength = 12

	lowerChars   = "abcdefghijkmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars   = "23456789"
	specialChars = "!@#$%&*?"
)

// RandomSource picks uniformly from [0, n).
type RandomSource interface {
	Intn(n int) (int, error)
}

type cryptoSource struct{}

func (cryptoSource) Intn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// CryptoSource reads from crypto/rand.
func CryptoSource() RandomSource { return cryptoSource{} }

type seededSource struct {
	r *mrand.Rand
}

func (s seededSource) Intn(n int) (int, error) { return s.r.Intn(n), nil }

// SeededSource is deterministic for a given seed. Use it in tests only.
func SeededSource(seed int64) RandomSource {
	return seededSource{r: mrand.New(mrand.NewSource(seed))}
}

// GeneratePassword returns a PasswordLength password holding at least one
// lower-case letter, upper-case letter, digit and symbol. Look-alike
// characters (l, I, O, 0, 1) are left out.
func GeneratePassword(src RandomSource) (string, error) {
	classes := []string{lowerChars, upperChars, digitChars, specialChars}
	all := lowerChars + upperChars + digitChars + specialChars

	out := make([]byte, 0, PasswordLength)
	pick := func(set string) error {
		i, err := src.Intn(len(set))
		if err != nil {
			return err
		}
		out = append(out, set[i])
		return nil
	}

	for _, set := range classes {
		if err := pick(set); err != nil {
			return "", err
		}
	}
	for len(out) < PasswordLength {
		if err := pick(all); err != nil {
			return "", err
		}
	}

	// Fisher-Yates so the guaranteed characters are not always up front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := src.Intn(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}
