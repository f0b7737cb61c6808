package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Token string

const TokenOLAS Token = "OLAS"

type BalanceSnapshot struct {
	Wallet  WalletRef
	Network Network
	Token   Token
	Amount  decimal.Decimal
	Native  bool
	// Staked marks funds bonded or deposited in the service and staking
	// contracts rather than held liquid in the wallet.
	Staked     bool
	ObservedAt time.Time
}

func (b BalanceSnapshot) Validate() error {
	if b.Token == "" {
		return fmt.Errorf("token is required")
	}
	if b.Network == "" {
		return fmt.Errorf("network is required")
	}
	if b.Amount.IsNegative() {
		return fmt.Errorf("negative %s balance %s for %s", b.Token, b.Amount, b.Wallet.Address.Hex())
	}

	return nil
}

// BalanceSet is the full result of one balance poll. A token with no entry is
// unknown, which is not the same as a zero balance.
type BalanceSet struct {
	entries []BalanceSnapshot
}

func NewBalanceSet(entries []BalanceSnapshot) (BalanceSet, error) {
	copied := make([]BalanceSnapshot, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return BalanceSet{}, err
		}
		copied = append(copied, entry)
	}

	return BalanceSet{entries: copied}, nil
}

func (s BalanceSet) Entries() []BalanceSnapshot {
	out := make([]BalanceSnapshot, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s BalanceSet) Len() int {
	return len(s.entries)
}

func (s BalanceSet) Has(network Network, token Token) bool {
	for _, entry := range s.entries {
		if entry.Network == network && entry.Token == token {
			return true
		}
	}

	return false
}

func (s BalanceSet) Available(network Network, token Token) decimal.Decimal {
	return s.sum(network, token, func(entry BalanceSnapshot) bool { return !entry.Staked })
}

func (s BalanceSet) Staked(network Network, token Token) decimal.Decimal {
	return s.sum(network, token, func(entry BalanceSnapshot) bool { return entry.Staked })
}

func (s BalanceSet) Total(network Network, token Token) decimal.Decimal {
	return s.Available(network, token).Add(s.Staked(network, token))
}

// IsLow reports a known liquid balance strictly below threshold. Unknown
// balances are never reported as low.
func (s BalanceSet) IsLow(network Network, token Token, threshold decimal.Decimal) bool {
	if !s.Has(network, token) {
		return false
	}

	return s.Available(network, token).LessThan(threshold)
}

// NativeToken returns the token flagged as native on network, if any entry
// carries it.
func (s BalanceSet) NativeToken(network Network) (Token, bool) {
	for _, entry := range s.entries {
		if entry.Network == network && entry.Native {
			return entry.Token, true
		}
	}

	return "", false
}

func (s BalanceSet) sum(network Network, token Token, include func(BalanceSnapshot) bool) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range s.entries {
		if entry.Network != network || entry.Token != token || !include(entry) {
			continue
		}
		total = total.Add(entry.Amount)
	}

	return total
}
