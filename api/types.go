package api

import (
	"net/url"
	"strconv"
	"time"
)

// Page selects a page of a list endpoint. Zero fields use the server default.
type Page struct {
	Page  int
	Limit int
}

func (p Page) encode(q url.Values) {
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
}

// List is a page of results.
type List[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Nonce is the message a wallet signs to log in.
type Nonce struct {
	Nonce     string    `json:"nonce"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// VerifyRequest submits a signed nonce message.
type VerifyRequest struct {
	Address      string `json:"address"`
	Message      string `json:"message"`
	Signature    string `json:"signature"`
	ChainID      int64  `json:"chainId,omitempty"`
	ReferralCode string `json:"referralCode,omitempty"`
}

// Session is returned by a successful login or refresh.
type Session struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         User      `json:"user"`
}

// User is the authenticated account.
type User struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Vault is a yield vault listed on the platform.
type Vault struct {
	Address   string    `json:"address"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	ChainID   int64     `json:"chainId"`
	Asset     string    `json:"asset"`
	Curator   string    `json:"curator"`
	APY       float64   `json:"apy"`
	TVL       string    `json:"tvl"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// VaultFilter narrows VaultAPI.List.
type VaultFilter struct {
	ChainID int64
	Curator string
	Asset   string
	Status  string
	Page
}

func (f VaultFilter) query() url.Values {
	q := url.Values{}
	if f.ChainID != 0 {
		q.Set("chainId", strconv.FormatInt(f.ChainID, 10))
	}
	if f.Curator != "" {
		q.Set("curator", f.Curator)
	}
	if f.Asset != "" {
		q.Set("asset", f.Asset)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	f.Page.encode(q)
	return q
}

// Position is a wallet's holding in a vault.
type Position struct {
	Vault   string `json:"vault"`
	Wallet  string `json:"wallet"`
	ChainID int64  `json:"chainId"`
	Shares  string `json:"shares"`
	Assets  string `json:"assets"`
	Earned  string `json:"earned"`
}

// TransactionType is the kind of vault interaction.
type TransactionType string

const (
	TransactionDeposit  TransactionType = "deposit"
	TransactionWithdraw TransactionType = "withdraw"
)

// Transaction is an indexed on-chain vault interaction.
type Transaction struct {
	Hash      string          `json:"hash"`
	Type      TransactionType `json:"type"`
	Wallet    string          `json:"wallet"`
	Vault     string          `json:"vault"`
	ChainID   int64           `json:"chainId"`
	Amount    string          `json:"amount"`
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
}

// TransactionFilter narrows TransactionAPI.List.
type TransactionFilter struct {
	Wallet  string
	Vault   string
	Type    TransactionType
	ChainID int64
	Page
}

func (f TransactionFilter) query() url.Values {
	q := url.Values{}
	if f.Wallet != "" {
		q.Set("wallet", f.Wallet)
	}
	if f.Vault != "" {
		q.Set("vault", f.Vault)
	}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.ChainID != 0 {
		q.Set("chainId", strconv.FormatInt(f.ChainID, 10))
	}
	f.Page.encode(q)
	return q
}

// PartnerTransaction reports a transaction a partner routed to a vault.
type PartnerTransaction struct {
	PartnerID string          `json:"-"`
	Hash      string          `json:"hash"`
	Wallet    string          `json:"wallet"`
	Vault     string          `json:"vault"`
	ChainID   int64           `json:"chainId"`
	Type      TransactionType `json:"type"`
	Amount    string          `json:"amount"`
}

// TrackedTransaction is a partner transaction as recorded by the gateway.
type TrackedTransaction struct {
	ID        string          `json:"id"`
	PartnerID string          `json:"partnerId"`
	Hash      string          `json:"hash"`
	Wallet    string          `json:"wallet"`
	Vault     string          `json:"vault"`
	ChainID   int64           `json:"chainId"`
	Type      TransactionType `json:"type"`
	Amount    string          `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ReferralCode is a wallet's shareable code.
type ReferralCode struct {
	Wallet string `json:"wallet"`
	Code   string `json:"code"`
}

// ReferralStats summarises a referrer's activity.
type ReferralStats struct {
	Wallet      string `json:"wallet"`
	Code        string `json:"code"`
	Referrals   int    `json:"referrals"`
	TotalVolume string `json:"totalVolume"`
	Rewards     string `json:"rewards"`
}

// ApplicationStatus is the review state of a curator application.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

// CuratorApplication asks to become a vault curator.
type CuratorApplication struct {
	ID          string            `json:"id,omitempty"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Website     string            `json:"website,omitempty"`
	Wallet      string            `json:"wallet"`
	Description string            `json:"description,omitempty"`
	Status      ApplicationStatus `json:"status,omitempty"`
	CreatedAt   *time.Time        `json:"createdAt,omitempty"`
}

// ApplicationPatch updates fields of a pending application. Nil fields are left unchanged.
type ApplicationPatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Website     *string `json:"website,omitempty"`
	Description *string `json:"description,omitempty"`
}

// VaultSubmission proposes a vault for listing.
type VaultSubmission struct {
	Address  string `json:"address"`
	ChainID  int64  `json:"chainId"`
	Name     string `json:"name"`
	Strategy string `json:"strategy,omitempty"`
}

// Submission is the gateway's record of a vault submission.
type Submission struct {
	ID        string            `json:"id"`
	CuratorID string            `json:"curatorId"`
	Vault     VaultSubmission   `json:"vault"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}
