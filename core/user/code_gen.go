package user

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/bunjo05/volunteer-faster/core"
)

const codeDigits = 6

var codeSalt = []byte("volunteer-faster.core.user.code_gen")

// GenerateVerificationCode returns a random zero-padded 6-digit code.
func GenerateVerificationCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}

// HashVerificationCode binds a code to an email address so a stored hash
// cannot be replayed for another recipient.
func HashVerificationCode(email, code string) []byte {
	key := sha256.Sum256(append(codeSalt, core.Conf.SecretKey...))
	h := hmac.New(sha256.New, key[:])
	h.Write([]byte(email))
	h.Write([]byte{0})
	h.Write([]byte(code))
	return h.Sum(nil)
}
