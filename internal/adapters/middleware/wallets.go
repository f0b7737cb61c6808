package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bnema/agentctl/internal/domain"
)

type walletDTO struct {
	Address string `json:"address"`
	Role    string `json:"role"`
	Chain   string `json:"chain"`
}

func (w walletDTO) toDomain() (domain.WalletRef, error) {
	address, err := domain.ParseAddress(w.Address)
	if err != nil {
		return domain.WalletRef{}, err
	}
	role := domain.WalletRole(w.Role)
	if !role.Valid() {
		return domain.WalletRef{}, fmt.Errorf("unknown wallet role %q", w.Role)
	}

	return domain.WalletRef{Address: address, Role: role, Network: domain.Network(w.Chain)}, nil
}

func (c *Client) GetWallets(ctx context.Context) ([]domain.WalletRef, error) {
	var payload []walletDTO
	if err := c.do(ctx, http.MethodGet, "/api/wallet", nil, &payload); err != nil {
		return nil, err
	}

	wallets := make([]domain.WalletRef, 0, len(payload))
	for _, item := range payload {
		wallet, err := item.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode wallet: %w", err)
		}
		wallets = append(wallets, wallet)
	}
	return wallets, nil
}

func (c *Client) CreateMultisig(ctx context.Context, network domain.Network) (domain.WalletRef, error) {
	var payload walletDTO
	request := map[string]string{"chain": string(network)}
	if err := c.do(ctx, http.MethodPost, "/api/wallet/safe", request, &payload); err != nil {
		return domain.WalletRef{}, err
	}

	wallet, err := payload.toDomain()
	if err != nil {
		return domain.WalletRef{}, fmt.Errorf("decode wallet: %w", err)
	}
	return wallet, nil
}
