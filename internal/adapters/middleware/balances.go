package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/bnema/agentctl/internal/domain"
)

type balanceDTO struct {
	Address string          `json:"address"`
	Chain   string          `json:"chain"`
	Token   string          `json:"token"`
	Amount  decimal.Decimal `json:"amount"`
	Native  bool            `json:"native"`
	Staked  bool            `json:"staked"`
}

func (c *Client) GetBalances(ctx context.Context, wallets []domain.WalletRef) ([]domain.BalanceSnapshot, error) {
	request := struct {
		Wallets []walletDTO `json:"wallets"`
	}{Wallets: make([]walletDTO, 0, len(wallets))}
	for _, wallet := range wallets {
		request.Wallets = append(request.Wallets, walletDTO{
			Address: wallet.Address.Hex(),
			Role:    string(wallet.Role),
			Chain:   string(wallet.Network),
		})
	}

	var payload []balanceDTO
	if err := c.do(ctx, http.MethodPost, "/api/v2/balances", request, &payload); err != nil {
		return nil, err
	}

	snapshots := make([]domain.BalanceSnapshot, 0, len(payload))
	for _, item := range payload {
		address, err := domain.ParseAddress(item.Address)
		if err != nil {
			return nil, fmt.Errorf("decode balance: %w", err)
		}

		wallet := domain.WalletRef{Address: address, Network: domain.Network(item.Chain)}
		for _, known := range wallets {
			if known.Address == address && known.Network == wallet.Network {
				wallet = known
				break
			}
		}

		snapshots = append(snapshots, domain.BalanceSnapshot{
			Wallet:  wallet,
			Network: domain.Network(item.Chain),
			Token:   domain.Token(item.Token),
			Amount:  item.Amount,
			Native:  item.Native,
			Staked:  item.Staked,
		})
	}
	return snapshots, nil
}
