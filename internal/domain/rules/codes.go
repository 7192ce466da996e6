package rules

import (
	"crypto/rand"

	"github.com/bootyhunt/server/pkg/fault"
)

// CodeLen is the length of a signal fire redemption code.
const CodeLen = 8

// codeAlphabet excludes visually confusable characters (0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCode draws a CodeLen-character code uniformly from the restricted
// alphabet. The 32-symbol alphabet makes each random byte map onto it
// without modulo bias.
func GenerateCode() (string, error) {
	buf := make([]byte, CodeLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fault.Wrap(fault.Internal, err, "generate code")
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
