// Package wallet normalises caller identities that are EVM wallet addresses.
package wallet

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsAddress reports whether s is a 0x-prefixed 20-byte hex address in any letter case.
func IsAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	return common.IsHexAddress(s)
}

// Checksum returns the EIP-55 mixed-case form of a wallet address.
func Checksum(address string) string {
	return common.HexToAddress(address).Hex()
}

// Normalize maps every spelling of the same wallet to one identity.
// Identities that are not wallet addresses are only trimmed.
func Normalize(identity string) string {
	identity = strings.TrimSpace(identity)
	if IsAddress(identity) {
		return Checksum(identity)
	}
	return identity
}
