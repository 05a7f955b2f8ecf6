package yieldgate

import (
	"context"

	"go.uber.org/zap"

	"github.com/yieldgate/sdk-go/api"
	"github.com/yieldgate/sdk-go/config"
	"github.com/yieldgate/sdk-go/container"
	"github.com/yieldgate/sdk-go/transport"
)

// Names under which the client registers its dependencies.
const (
	NameConfig         = "config"
	NameLogger         = "logger"
	NameTokens         = "tokens"
	NameMetrics        = "metrics"
	NameHTTPClient     = "httpClient"
	NameAuthAPI        = "authAPI"
	NameVaultAPI       = "vaultAPI"
	NameTransactionAPI = "transactionAPI"
	NamePartnerAPI     = "partnerAPI"
	NameReferralAPI    = "referralAPI"
	NameCuratorAPI     = "curatorAPI"
)

// Client is the entry point of the SDK.
type Client struct {
	container *container.Container
	cfg       config.Config
	logger    *zap.Logger
	tokens    transport.TokenSource

	http         *transport.Client
	auth         *api.AuthAPI
	vaults       *api.VaultAPI
	transactions *api.TransactionAPI
	partners     *api.PartnerAPI
	referrals    *api.ReferralAPI
	curators     *api.CuratorAPI
}

// New validates cfg, builds the transport and every API client, and returns
// a ready Client. Close it when done.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	cfg = cfg.Clone()

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
		if cfg.Debug {
			if dev, err := zap.NewDevelopment(); err == nil {
				logger = dev
			}
		}
	}

	tokens := o.tokens
	if tokens == nil {
		tokens = &transport.SessionToken{}
	}

	c := container.New(container.WithStrictDependencies())
	c.SetValue(NameConfig, cfg)
	c.SetValue(NameLogger, logger)
	c.SetValue(NameTokens, tokens)

	if o.registerer != nil {
		reg := o.registerer
		c.Register(NameMetrics, func(container.Resolver) (any, error) {
			return transport.NewMetrics(reg)
		}, container.Lazy())
	}

	if err := c.AddModules(transportModule(o), apiModule); err != nil {
		return nil, err
	}

	if err := c.Initialize(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	client := &Client{container: c, cfg: cfg, logger: logger, tokens: tokens}
	if err := client.resolveHandles(); err != nil {
		_ = c.Close()
		return nil, err
	}

	logger.Debug("yieldgate client initialized",
		zap.String("container_id", c.ID()),
		zap.String("base_url", client.http.BaseURL()),
		zap.Strings("dependencies", c.Names()),
	)

	return client, nil
}

// transportModule registers the HTTP transport. Transport construction
// failures are configuration problems.
func transportModule(o options) container.ModuleOption {
	deps := []string{NameConfig, NameLogger, NameTokens}
	if o.registerer != nil {
		deps = append(deps, NameMetrics)
	}

	return container.NewModule("transport",
		container.Provide(NameHTTPClient, func(r container.Resolver) (any, error) {
			cfg, err := container.Resolve[config.Config](r, NameConfig)
			if err != nil {
				return nil, err
			}
			logger, err := container.Resolve[*zap.Logger](r, NameLogger)
			if err != nil {
				return nil, err
			}
			tokens, err := container.Resolve[transport.TokenSource](r, NameTokens)
			if err != nil {
				return nil, err
			}

			topts := []transport.Option{
				transport.WithLogger(logger.Named("transport")),
				transport.WithTokenSource(tokens),
				transport.WithHTTPClient(o.httpClient),
			}
			if o.registerer != nil {
				metrics, err := container.Resolve[*transport.Metrics](r, NameMetrics)
				if err != nil {
					return nil, &ConfigError{Err: err}
				}
				topts = append(topts, transport.WithMetrics(metrics))
			}

			client, err := transport.New(cfg, topts...)
			if err != nil {
				return nil, &ConfigError{Err: err}
			}
			return client, nil
		}, container.DependsOn(deps...)),
	)
}

var apiModule = container.NewModule("api",
	provideAPI(NameAuthAPI, func(r container.Resolver, http transport.Requester, cfg config.Config) (any, error) {
		tokens, err := container.Resolve[transport.TokenSource](r, NameTokens)
		if err != nil {
			return nil, err
		}
		setter, _ := tokens.(api.TokenSetter)
		return api.NewAuthAPI(http, cfg, setter), nil
	}, NameTokens),
	provideAPI(NameVaultAPI, func(_ container.Resolver, http transport.Requester, cfg config.Config) (any, error) {
		return api.NewVaultAPI(http, cfg), nil
	}),
	provideAPI(NameTransactionAPI, func(_ container.Resolver, http transport.Requester, cfg config.Config) (any, error) {
		return api.NewTransactionAPI(http, cfg), nil
	}),
	provideAPI(NamePartnerAPI, func(_ container.Resolver, http transport.Requester, cfg config.Config) (any, error) {
		return api.NewPartnerAPI(http, cfg), nil
	}),
	provideAPI(NameReferralAPI, func(_ container.Resolver, http transport.Requester, cfg config.Config) (any, error) {
		return api.NewReferralAPI(http, cfg), nil
	}),
	provideAPI(NameCuratorAPI, func(_ container.Resolver, http transport.Requester, cfg config.Config) (any, error) {
		return api.NewCuratorAPI(http, cfg), nil
	}),
)

// provideAPI registers an eager singleton API client depending on the
// transport and the configuration, plus any extra names.
func provideAPI(name string, build func(container.Resolver, transport.Requester, config.Config) (any, error), extra ...string) container.ModuleOption {
	deps := append([]string{NameHTTPClient, NameConfig}, extra...)

	return container.Provide(name, func(r container.Resolver) (any, error) {
		http, err := container.Resolve[*transport.Client](r, NameHTTPClient)
		if err != nil {
			return nil, err
		}
		cfg, err := container.Resolve[config.Config](r, NameConfig)
		if err != nil {
			return nil, err
		}
		return build(r, http, cfg)
	}, container.DependsOn(deps...))
}

func (c *Client) resolveHandles() error {
	var err error
	if c.http, err = container.Resolve[*transport.Client](c.container, NameHTTPClient); err != nil {
		return err
	}
	if c.auth, err = container.Resolve[*api.AuthAPI](c.container, NameAuthAPI); err != nil {
		return err
	}
	if c.vaults, err = container.Resolve[*api.VaultAPI](c.container, NameVaultAPI); err != nil {
		return err
	}
	if c.transactions, err = container.Resolve[*api.TransactionAPI](c.container, NameTransactionAPI); err != nil {
		return err
	}
	if c.partners, err = container.Resolve[*api.PartnerAPI](c.container, NamePartnerAPI); err != nil {
		return err
	}
	if c.referrals, err = container.Resolve[*api.ReferralAPI](c.container, NameReferralAPI); err != nil {
		return err
	}
	c.curators, err = container.Resolve[*api.CuratorAPI](c.container, NameCuratorAPI)
	return err
}

// Auth returns the authentication client.
func (c *Client) Auth() *api.AuthAPI { return c.auth }

// Vaults returns the vault client.
func (c *Client) Vaults() *api.VaultAPI { return c.vaults }

// Transactions returns the transaction client.
func (c *Client) Transactions() *api.TransactionAPI { return c.transactions }

// Partners returns the partner transaction client.
func (c *Client) Partners() *api.PartnerAPI { return c.partners }

// Referrals returns the referral client.
func (c *Client) Referrals() *api.ReferralAPI { return c.referrals }

// Curators returns the curator onboarding client.
func (c *Client) Curators() *api.CuratorAPI { return c.curators }

// HTTP returns the underlying transport.
func (c *Client) HTTP() *transport.Client { return c.http }

// Config returns a copy of the configuration the client was built with.
func (c *Client) Config() config.Config { return c.cfg.Clone() }

// Tokens returns the token source attached to requests.
func (c *Client) Tokens() transport.TokenSource { return c.tokens }

// Resolver exposes the client's dependencies by name.
func (c *Client) Resolver() container.Resolver { return c.container }

// Container returns the container holding the client's dependencies.
func (c *Client) Container() *container.Container { return c.container }

// Close releases the transport's connections. The client is unusable afterwards.
func (c *Client) Close() error {
	err := c.container.Close()
	_ = c.logger.Sync()
	return err
}
