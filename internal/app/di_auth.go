package app

import (
	"context"
	"fmt"

	authHTTP "github.com/allisson/streamgate/internal/auth/http"
	authRepository "github.com/allisson/streamgate/internal/auth/repository"
	authService "github.com/allisson/streamgate/internal/auth/service"
	authUseCase "github.com/allisson/streamgate/internal/auth/usecase"
	"github.com/allisson/streamgate/internal/config"
	"github.com/allisson/streamgate/internal/metrics"
)

// TokenSigner returns the signer keyed by the stream secret.
func (c *Container) TokenSigner() (authService.TokenSigner, error) {
	var err error
	c.tokenSignerInit.Do(func() {
		c.tokenSigner, err = c.initTokenSigner()
		if err != nil {
			c.initErrors["tokenSigner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenSigner"]; exists {
		return nil, storedErr
	}
	return c.tokenSigner, nil
}

// CodeMailer returns the passcode delivery service.
func (c *Container) CodeMailer() authService.CodeMailer {
	c.codeMailerInit.Do(func() {
		includeCode := c.config.OTPDevEcho || c.config.LogLevel == "debug"
		c.codeMailer = authService.NewLogMailer(c.Logger(), includeCode)
	})
	return c.codeMailer
}

// OTPLedger returns the in-memory passcode ledger.
func (c *Container) OTPLedger() *authRepository.MemoryOTPLedger {
	c.otpLedgerInit.Do(func() {
		c.otpLedger = authRepository.NewMemoryOTPLedger(authService.NewCodeGenerator(), c.Clock())
	})
	return c.otpLedger
}

// RateLimiter returns the fixed-window rate limiter selected by RATE_LIMIT_STORE.
func (c *Container) RateLimiter() (authUseCase.RateLimiter, error) {
	var err error
	c.rateLimiterInit.Do(func() {
		c.rateLimiter, err = c.initRateLimiter()
		if err != nil {
			c.initErrors["rateLimiter"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rateLimiter"]; exists {
		return nil, storedErr
	}
	return c.rateLimiter, nil
}

// AuthorizationGateway returns the gateway, wrapped with metrics when enabled.
func (c *Container) AuthorizationGateway() (authUseCase.AuthorizationGateway, error) {
	var err error
	c.gatewayInit.Do(func() {
		c.gateway, err = c.initAuthorizationGateway()
		if err != nil {
			c.initErrors["gateway"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gateway"]; exists {
		return nil, storedErr
	}
	return c.gateway, nil
}

// PlaybackUseCase returns the playback URL use case.
func (c *Container) PlaybackUseCase() (authUseCase.PlaybackUseCase, error) {
	var err error
	c.playbackInit.Do(func() {
		c.playbackUseCase, err = c.initPlaybackUseCase()
		if err != nil {
			c.initErrors["playbackUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["playbackUseCase"]; exists {
		return nil, storedErr
	}
	return c.playbackUseCase, nil
}

// Sweeper returns the background expiry sweeper.
func (c *Container) Sweeper() (*authUseCase.Sweeper, error) {
	var err error
	c.sweeperInit.Do(func() {
		var gateway authUseCase.AuthorizationGateway
		gateway, err = c.AuthorizationGateway()
		if err != nil {
			err = fmt.Errorf("failed to get authorization gateway for sweeper: %w", err)
			c.initErrors["sweeper"] = err
			return
		}
		c.sweeper = authUseCase.NewSweeper(gateway, c.config.OTPSweepInterval, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sweeper"]; exists {
		return nil, storedErr
	}
	return c.sweeper, nil
}

// HLSAuthHandler returns the proxy subrequest handler.
func (c *Container) HLSAuthHandler() (*authHTTP.HLSAuthHandler, error) {
	var err error
	c.hlsAuthHandlerInit.Do(func() {
		var gateway authUseCase.AuthorizationGateway
		gateway, err = c.AuthorizationGateway()
		if err != nil {
			err = fmt.Errorf("failed to get authorization gateway for hls auth handler: %w", err)
			c.initErrors["hlsAuthHandler"] = err
			return
		}
		c.hlsAuthHandler = authHTTP.NewHLSAuthHandler(gateway, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["hlsAuthHandler"]; exists {
		return nil, storedErr
	}
	return c.hlsAuthHandler, nil
}

// OTPHandler returns the passcode issue/verify handler.
func (c *Container) OTPHandler() (*authHTTP.OTPHandler, error) {
	var err error
	c.otpHandlerInit.Do(func() {
		var gateway authUseCase.AuthorizationGateway
		gateway, err = c.AuthorizationGateway()
		if err != nil {
			err = fmt.Errorf("failed to get authorization gateway for otp handler: %w", err)
			c.initErrors["otpHandler"] = err
			return
		}
		c.otpHandler = authHTTP.NewOTPHandler(gateway, c.config.OTPDevEcho, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["otpHandler"]; exists {
		return nil, storedErr
	}
	return c.otpHandler, nil
}

// PlaybackHandler returns the playback signing handler.
func (c *Container) PlaybackHandler() (*authHTTP.PlaybackHandler, error) {
	var err error
	c.playbackHandlerInit.Do(func() {
		var useCase authUseCase.PlaybackUseCase
		useCase, err = c.PlaybackUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get playback use case for playback handler: %w", err)
			c.initErrors["playbackHandler"] = err
			return
		}
		c.playbackHandler = authHTTP.NewPlaybackHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["playbackHandler"]; exists {
		return nil, storedErr
	}
	return c.playbackHandler, nil
}

// initTokenSigner resolves the stream secret, decrypting it through the KMS keeper
// when one is configured.
func (c *Container) initTokenSigner() (authService.TokenSigner, error) {
	secret, err := authService.LoadSecret(context.Background(), authService.SecretSource{
		Plaintext:  c.config.StreamSecret,
		KeyURI:     c.config.StreamSecretKMSKeyURI,
		Ciphertext: c.config.StreamSecretCiphertext,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load stream secret: %w", err)
	}

	signer, err := authService.NewTokenSigner(secret, c.Clock())
	if err != nil {
		return nil, fmt.Errorf("failed to create token signer: %w", err)
	}
	return signer, nil
}

func (c *Container) initRateLimiter() (authUseCase.RateLimiter, error) {
	switch c.config.RateLimitStore {
	case config.RateLimitStoreRedis:
		store, err := authRepository.NewRedisRateLimitStore(context.Background(), authRepository.RedisConfig{
			Addr:     c.config.RedisAddr,
			Password: c.config.RedisPassword,
			DB:       c.config.RedisDB,
		}, c.Clock())
		if err != nil {
			return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
		}
		c.redisLimiter = store
		return store, nil
	case config.RateLimitStoreMemory, "":
		c.memoryLimiter = authRepository.NewMemoryRateLimitStore(c.Clock())
		return c.memoryLimiter, nil
	default:
		return nil, fmt.Errorf("unsupported rate limit store: %s", c.config.RateLimitStore)
	}
}

// initAuthorizationGateway creates the gateway with all its dependencies.
func (c *Container) initAuthorizationGateway() (authUseCase.AuthorizationGateway, error) {
	signer, err := c.TokenSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get token signer for authorization gateway: %w", err)
	}

	limiter, err := c.RateLimiter()
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limiter for authorization gateway: %w", err)
	}

	gatewayConfig := authUseCase.GatewayConfig{
		ResendWindow: c.config.OTPResendWindow,
		ResendMax:    c.config.OTPResendMax,
		IdleEviction: c.config.RateLimitIdleEviction,
	}

	baseGateway := authUseCase.NewAuthorizationGateway(
		signer,
		c.OTPLedger(),
		limiter,
		c.CodeMailer(),
		gatewayConfig,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for authorization gateway: %w", err)
		}
		if err := c.registerStoreGauges(); err != nil {
			return nil, err
		}
		return authUseCase.NewAuthorizationGatewayWithMetrics(baseGateway, businessMetrics), nil
	}

	return baseGateway, nil
}

// initPlaybackUseCase creates the playback use case with all its dependencies.
func (c *Container) initPlaybackUseCase() (authUseCase.PlaybackUseCase, error) {
	signer, err := c.TokenSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get token signer for playback use case: %w", err)
	}

	baseUseCase := authUseCase.NewPlaybackUseCase(signer, authUseCase.PlaybackConfig{
		MediaRoot:     c.config.MediaRoot,
		PublicBaseURL: c.config.PublicBaseURL,
		TTL:           c.config.PlaybackTTL,
	})

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for playback use case: %w", err)
		}
		return authUseCase.NewPlaybackUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// registerStoreGauges exposes the sizes of the in-memory stores. The redis store is
// observed on the redis side and is left out.
func (c *Container) registerStoreGauges() error {
	if c.storeGaugesSet {
		return nil
	}

	provider, err := c.MetricsProvider()
	if err != nil || provider == nil {
		return err
	}

	stores := map[string]metrics.SizeFunc{
		"otp_ledger": c.OTPLedger().Len,
	}
	if c.memoryLimiter != nil {
		stores["rate_limit"] = c.memoryLimiter.Len
	}

	if err := metrics.RegisterStoreSizeGauges(provider.MeterProvider(), c.config.MetricsNamespace, stores); err != nil {
		return fmt.Errorf("failed to register store gauges: %w", err)
	}
	c.storeGaugesSet = true
	return nil
}
