package security

import (
	"crypto/rand"
	"errors"
	"io"

	"agency_quotes/internal/usecase/interfaces"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultPasswordLength = 12
	// Ambiguous glyphs (0/O, 1/l/I) are left out so the password can be read aloud.
	passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"
)

// BcryptIssuer generates one-time passwords and their bcrypt hashes.
type BcryptIssuer struct {
	length int
	cost   int
	random io.Reader
}

var _ interfaces.ICredentialIssuer = (*BcryptIssuer)(nil)

func NewBcryptIssuer() *BcryptIssuer {
	return &BcryptIssuer{length: DefaultPasswordLength, cost: bcrypt.DefaultCost, random: rand.Reader}
}

func (i *BcryptIssuer) Issue() (string, string, error) {
	plain, err := randomString(i.random, i.length)
	if err != nil {
		return "", "", err
	}
	hash, err := HashPassword(plain, i.cost)
	if err != nil {
		return "", "", err
	}
	return plain, string(hash), nil
}

func HashPassword(s string, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(s), cost)
}

func ComparePassword(hashed string, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// randomString draws uniformly from passwordAlphabet using rejection sampling.
func randomString(r io.Reader, n int) (string, error) {
	if n <= 0 {
		return "", errors.New("password length must be positive")
	}
	const alphabetLen = len(passwordAlphabet)
	limit := 256 - 256%alphabetLen

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, passwordAlphabet[int(b)%alphabetLen])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
