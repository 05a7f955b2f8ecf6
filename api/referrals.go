package api

import (
	"context"

	"github.com/yieldgate/sdk-go/config"
	"github.com/yieldgate/sdk-go/transport"
)

// ReferralAPI manages referral codes.
type ReferralAPI struct {
	http transport.Requester
	cfg  config.Config
}

// NewReferralAPI creates a ReferralAPI.
func NewReferralAPI(http transport.Requester, cfg config.Config) *ReferralAPI {
	return &ReferralAPI{http: http, cfg: cfg}
}

// Code returns the referral code of wallet, creating one if needed.
func (r *ReferralAPI) Code(ctx context.Context, wallet string) (*ReferralCode, error) {
	if err := validateAddress("wallet", wallet); err != nil {
		return nil, err
	}

	var code ReferralCode
	if err := r.http.Get(ctx, pathf("/referrals/%s/code", wallet), nil, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

// Apply links wallet to the referrer owning code.
func (r *ReferralAPI) Apply(ctx context.Context, wallet, code string) error {
	if err := validateAddress("wallet", wallet); err != nil {
		return err
	}
	if err := requireValue("code", code); err != nil {
		return err
	}

	body := map[string]string{"wallet": wallet, "code": code}
	return r.http.Post(ctx, "/referrals/apply", body, nil)
}

// Stats returns the referral statistics of wallet.
func (r *ReferralAPI) Stats(ctx context.Context, wallet string) (*ReferralStats, error) {
	if err := validateAddress("wallet", wallet); err != nil {
		return nil, err
	}

	var stats ReferralStats
	if err := r.http.Get(ctx, pathf("/referrals/%s/stats", wallet), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
