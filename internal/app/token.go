package app

import (
	"fmt"

	"github.com/quantmind-br/repo2txt-go/internal/domain"
)

// ResolveToken returns the credential for this run. A token given on the
// command line replaces the stored one, and an empty one clears it.
// Otherwise the stored token is used.
func ResolveToken(store domain.TokenStore, flag string, changed bool) (string, error) {
	if store == nil {
		return flag, nil
	}
	if changed {
		if err := store.Save(flag); err != nil {
			return flag, fmt.Errorf("failed to store token: %w", err)
		}
		return flag, nil
	}
	token, err := store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load stored token: %w", err)
	}
	return token, nil
}
