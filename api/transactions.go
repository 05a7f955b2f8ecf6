package api

import (
	"context"

	"github.com/yieldgate/sdk-go/config"
	"github.com/yieldgate/sdk-go/transport"
)

// TransactionAPI queries indexed vault transactions.
type TransactionAPI struct {
	http transport.Requester
	cfg  config.Config
}

// NewTransactionAPI creates a TransactionAPI.
func NewTransactionAPI(http transport.Requester, cfg config.Config) *TransactionAPI {
	return &TransactionAPI{http: http, cfg: cfg}
}

// List returns transactions matching filter.
func (t *TransactionAPI) List(ctx context.Context, filter TransactionFilter) (*List[Transaction], error) {
	if filter.Wallet != "" {
		if err := validateAddress("wallet", filter.Wallet); err != nil {
			return nil, err
		}
	}
	if filter.Vault != "" {
		if err := validateAddress("vault", filter.Vault); err != nil {
			return nil, err
		}
	}

	var list List[Transaction]
	if err := t.http.Get(ctx, "/transactions", filter.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns the transaction with the given hash.
func (t *TransactionAPI) Get(ctx context.Context, hash string) (*Transaction, error) {
	if err := validateHash("hash", hash); err != nil {
		return nil, err
	}

	var tx Transaction
	if err := t.http.Get(ctx, pathf("/transactions/%s", hash), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
