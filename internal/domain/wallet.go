package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type WalletRole string

const (
	WalletRolePrimarySigner   WalletRole = "primary-signer"
	WalletRolePrimaryMultisig WalletRole = "primary-multisig"
	WalletRoleAgentSigner     WalletRole = "agent-signer"
	WalletRoleAgentMultisig   WalletRole = "agent-multisig"
)

func (r WalletRole) Valid() bool {
	switch r {
	case WalletRolePrimarySigner, WalletRolePrimaryMultisig, WalletRoleAgentSigner, WalletRoleAgentMultisig:
		return true
	default:
		return false
	}
}

type WalletRef struct {
	Address common.Address
	Role    WalletRole
	Network Network
}

func FindWallet(wallets []WalletRef, role WalletRole, network Network) (WalletRef, bool) {
	for _, wallet := range wallets {
		if wallet.Role == role && wallet.Network == network {
			return wallet, true
		}
	}

	return WalletRef{}, false
}

func ParseAddress(raw string) (common.Address, error) {
	trimmed := strings.TrimSpace(raw)
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, fmt.Errorf("invalid address %q", raw)
	}

	address := common.HexToAddress(trimmed)
	if address == (common.Address{}) {
		return common.Address{}, fmt.Errorf("zero address is not allowed")
	}

	return address, nil
}
