package api

import (
	"context"
	"net/url"

	"github.com/yieldgate/sdk-go/config"
	"github.com/yieldgate/sdk-go/transport"
)

// PartnerAPI reports and lists transactions routed by integration partners.
type PartnerAPI struct {
	http transport.Requester
	cfg  config.Config
}

// NewPartnerAPI creates a PartnerAPI. Config.PartnerID is used when a call
// does not name a partner.
func NewPartnerAPI(http transport.Requester, cfg config.Config) *PartnerAPI {
	return &PartnerAPI{http: http, cfg: cfg}
}

// Track records tx for its partner.
func (p *PartnerAPI) Track(ctx context.Context, tx PartnerTransaction) (*TrackedTransaction, error) {
	partnerID := p.partner(tx.PartnerID)
	if err := requireValue("partner id", partnerID); err != nil {
		return nil, err
	}
	if err := validateHash("hash", tx.Hash); err != nil {
		return nil, err
	}
	if err := validateAddress("wallet", tx.Wallet); err != nil {
		return nil, err
	}
	if err := validateAddress("vault", tx.Vault); err != nil {
		return nil, err
	}

	var tracked TrackedTransaction
	if err := p.http.Post(ctx, pathf("/partners/%s/transactions", partnerID), tx, &tracked); err != nil {
		return nil, err
	}
	return &tracked, nil
}

// List returns the transactions recorded for partnerID, or for the
// configured partner when partnerID is empty.
func (p *PartnerAPI) List(ctx context.Context, partnerID string, page Page) (*List[TrackedTransaction], error) {
	partnerID = p.partner(partnerID)
	if err := requireValue("partner id", partnerID); err != nil {
		return nil, err
	}

	q := url.Values{}
	page.encode(q)

	var list List[TrackedTransaction]
	if err := p.http.Get(ctx, pathf("/partners/%s/transactions", partnerID), q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (p *PartnerAPI) partner(id string) string {
	if id != "" {
		return id
	}
	return p.cfg.PartnerID
}
