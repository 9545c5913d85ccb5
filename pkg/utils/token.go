package utils

import (
	"crypto/rand"
	"fmt"
)

// Ambiguous characters (0/O, 1/I) are left out: invite codes get typed by
// hand.
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewInviteCode generates a random invite code of n characters (minimum 6).
func NewInviteCode(n int) (string, error) {
	if n < 6 {
		n = 6
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	for i := range b {
		b[i] = inviteCodeAlphabet[int(b[i])%len(inviteCodeAlphabet)]
	}
	return string(b), nil
}
