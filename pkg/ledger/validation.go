package ledger

import (
	"fmt"
	"strings"
)

// NormalizeAccountID trims and validates an account identifier.
func NormalizeAccountID(account AccountID) (AccountID, error) {
	trimmed := AccountID(strings.TrimSpace(string(account)))
	if trimmed == "" {
		return "", NewInvalidAccountFormatError(account)
	}
	if !accountIDRegex.MatchString(string(trimmed)) {
		return "", NewInvalidAccountFormatError(account)
	}
	return trimmed, nil
}

// ValidateDescriptor validates and normalizes asset descriptor fields.
func ValidateDescriptor(name string, symbol string, decimals uint8) (AssetDescriptor, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" || len(trimmedName) > MaxNameLength {
		return AssetDescriptor{}, NewInvalidAssetDescriptorError(
			"name",
			fmt.Sprintf("name is required and must be <= %d characters", MaxNameLength),
		)
	}

	trimmedSymbol := strings.TrimSpace(symbol)
	if trimmedSymbol == "" || len(trimmedSymbol) > MaxSymbolLength {
		return AssetDescriptor{}, NewInvalidAssetDescriptorError(
			"symbol",
			fmt.Sprintf("symbol is required and must be <= %d characters", MaxSymbolLength),
		)
	}

	return AssetDescriptor{
		Name:     trimmedName,
		Symbol:   trimmedSymbol,
		Decimals: decimals,
	}, nil
}
