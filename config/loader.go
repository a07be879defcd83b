package config

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	chainCore "github.com/multiversx/mx-chain-core-go/core"
	"github.com/shopspring/decimal"
)

// EnvPrefix is the prefix of the environment variables overriding the TOML file
const EnvPrefix = "GASORACLE"

// ChainlinkFeedType mirrors the feed type that needs an RPC connection
const ChainlinkFeedType = "chainlink"

// EnvOverrides holds the settings that can be provided through the environment, e.g. GASORACLE_RPC_URL
type EnvOverrides struct {
	RPCURL             string `envconfig:"RPC_URL"`
	TokenFeedAddress   string `envconfig:"TOKEN_FEED_ADDRESS"`
	NativeFeedAddress  string `envconfig:"NATIVE_FEED_ADDRESS"`
	StoragePath        string `envconfig:"STORAGE_PATH"`
	UpdateThresholdPpm *uint64 `envconfig:"UPDATE_THRESHOLD_PPM"`
}

// LoadConfig reads the TOML file, applies the environment overrides and validates the result
func LoadConfig(filepath string, envFile string) (*GasOracleConfig, error) {
	cfg := &GasOracleConfig{}
	err := chainCore.LoadTomlFile(cfg, filepath)
	if err != nil {
		return nil, err
	}

	err = ApplyEnvOverrides(cfg, envFile)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnvOverrides loads the optional .env file and overrides the matching TOML values with the set variables
func ApplyEnvOverrides(cfg *GasOracleConfig, envFile string) error {
	if len(envFile) > 0 {
		err := godotenv.Load(envFile)
		if err != nil {
			return fmt.Errorf("%w while loading env file %s", err, envFile)
		}
	}

	overrides := EnvOverrides{}
	err := envconfig.Process(EnvPrefix, &overrides)
	if err != nil {
		return fmt.Errorf("%w while processing the environment", err)
	}

	if len(overrides.RPCURL) > 0 {
		cfg.RPC.URL = overrides.RPCURL
	}
	if len(overrides.TokenFeedAddress) > 0 {
		cfg.TokenFeed.Address = overrides.TokenFeedAddress
	}
	if len(overrides.NativeFeedAddress) > 0 {
		cfg.NativeFeed.Address = overrides.NativeFeedAddress
	}
	if len(overrides.StoragePath) > 0 {
		cfg.Storage.Path = overrides.StoragePath
	}
	if overrides.UpdateThresholdPpm != nil {
		cfg.Oracle.UpdateThresholdPpm = *overrides.UpdateThresholdPpm
	}

	return nil
}

// Validate checks the settings that the oracle components can not check themselves
func (cfg *GasOracleConfig) Validate() error {
	if cfg.GeneralConfig.PollIntervalInSeconds == 0 {
		return errInvalidPollInterval
	}
	if len(cfg.TokenFeed.Type) == 0 {
		return errMissingTokenFeed
	}
	if !cfg.Oracle.DirectMode && len(cfg.NativeFeed.Type) == 0 {
		return errMissingNativeFeed
	}
	if cfg.NeedsRPC() && len(cfg.RPC.URL) == 0 {
		return errMissingRPCURL
	}

	_, err := cfg.Oracle.InitialPriceValue()

	return err
}

// NeedsRPC returns true if any configured feed reads an on-chain aggregator
func (cfg *GasOracleConfig) NeedsRPC() bool {
	return cfg.TokenFeed.Type == ChainlinkFeedType || cfg.NativeFeed.Type == ChainlinkFeedType
}

// InitialPriceValue converts the decimal initial price into its fixed-point representation, nil when not set
func (cfg OracleConfig) InitialPriceValue() (*uint256.Int, error) {
	if len(cfg.InitialPrice) == 0 {
		return nil, nil
	}

	price, err := decimal.NewFromString(cfg.InitialPrice)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %s", errInvalidInitialPrice, cfg.InitialPrice, err.Error())
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w %q: negative", errInvalidInitialPrice, cfg.InitialPrice)
	}

	value, overflow := uint256.FromBig(price.Shift(6).BigInt())
	if overflow {
		return nil, fmt.Errorf("%w %q: %s", errInvalidInitialPrice, cfg.InitialPrice, aggregator.ErrPriceOverflow.Error())
	}

	return value, nil
}
