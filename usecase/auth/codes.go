package auth

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet omits look-alike characters (0/O, 1/I/l) since users retype
// these codes from an email.
const (
	codeAlphabet = "23456789abcdefghjkmnpqrstuvwxyz"
	codeLength   = 7
)

// CodeGenerator produces the single-use activation and reset codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// RandomCodeGenerator draws fixed-entropy codes from crypto/rand.
type RandomCodeGenerator struct{}

func (RandomCodeGenerator) Generate() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generating code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
