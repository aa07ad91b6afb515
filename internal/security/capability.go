package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"hireflow-backend/internal/domain"
)

// capabilityBytes gives 256 bits of entropy per token.
const capabilityBytes = 32

// MintCapability returns an opaque, unguessable token. It carries no
// meaning of its own; holders are resolved through the interview store.
func MintCapability() (string, error) {
	buf := make([]byte, capabilityBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func NewResponsibleToken() (domain.ResponsibleToken, error) {
	tok, err := MintCapability()
	return domain.ResponsibleToken(tok), err
}

func NewCandidateToken() (domain.CandidateToken, error) {
	tok, err := MintCapability()
	return domain.CandidateToken(tok), err
}
