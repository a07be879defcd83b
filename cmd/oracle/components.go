package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	"github.com/klever-io/klv-gas-oracle-go/aggregator/feeds"
	"github.com/klever-io/klv-gas-oracle-go/aggregator/notifees"
	"github.com/klever-io/klv-gas-oracle-go/aggregator/storage"
	"github.com/klever-io/klv-gas-oracle-go/config"
)

// rpcConnection keeps the EVM client shared by the chainlink feeds
type rpcConnection struct {
	url    string
	client *ethclient.Client
	caller bind.ContractCaller
}

func (conn *rpcConnection) close() {
	if conn != nil && conn.client != nil {
		conn.client.Close()
	}
}

// dialIfNeeded returns the current connection when it still matches the configuration, a new one otherwise
func dialIfNeeded(ctx context.Context, current *rpcConnection, cfg *config.GasOracleConfig) (*rpcConnection, error) {
	if !cfg.NeedsRPC() {
		return current, nil
	}
	if current != nil && current.url == cfg.RPC.URL {
		return current, nil
	}

	client, err := ethclient.DialContext(ctx, cfg.RPC.URL)
	if err != nil {
		return nil, fmt.Errorf("%w while dialing %s", err, cfg.RPC.URL)
	}

	var caller bind.ContractCaller = client
	if cfg.RPC.TimeoutInSeconds > 0 {
		caller, err = feeds.NewTimeoutContractCaller(client, time.Second*time.Duration(cfg.RPC.TimeoutInSeconds))
		if err != nil {
			client.Close()
			return nil, err
		}
	}
	log.Info("connected to the RPC node", "url", cfg.RPC.URL)

	return &rpcConnection{
		url:    cfg.RPC.URL,
		client: client,
		caller: caller,
	}, nil
}

func createOracleConfig(cfg *config.GasOracleConfig, conn *rpcConnection) (aggregator.OracleConfig, error) {
	tokenFeed, err := createFeed(cfg.TokenFeed, conn)
	if err != nil {
		return aggregator.OracleConfig{}, fmt.Errorf("%w while creating the token feed", err)
	}

	var nativeFeed aggregator.RoundDataSource
	if len(cfg.NativeFeed.Type) > 0 {
		nativeFeed, err = createFeed(cfg.NativeFeed, conn)
		if err != nil {
			return aggregator.OracleConfig{}, fmt.Errorf("%w while creating the native asset feed", err)
		}
	}

	return aggregator.OracleConfig{
		TokenFeed:          tokenFeed,
		NativeFeed:         nativeFeed,
		TokenDecimalsScale: aggregator.TokenDecimalsScaleFromDecimals(cfg.Oracle.TokenDecimals),
		UpdateThresholdPpm: cfg.Oracle.UpdateThresholdPpm,
		CacheTimeToLive:    time.Second * time.Duration(cfg.Oracle.CacheTimeToLiveInSeconds),
		MaxFeedAge:         time.Second * time.Duration(cfg.Oracle.MaxFeedAgeInSeconds),
		DirectMode:         cfg.Oracle.DirectMode,
		TokenFeedInverted:  cfg.Oracle.TokenFeedInverted,
		NativeFeedInverted: cfg.Oracle.NativeFeedInverted,
	}, nil
}

func createFeed(feedCfg config.FeedConfig, conn *rpcConnection) (aggregator.RoundDataSource, error) {
	args := feeds.ArgsRoundDataSource{
		Type:        feedCfg.Type,
		Name:        feedCfg.Name,
		Address:     feedCfg.Address,
		StaticPrice: feedCfg.StaticPrice,
	}
	if conn != nil {
		args.Caller = conn.caller
	}

	return feeds.NewRoundDataSource(args)
}

func createStorer(cfg config.StorageConfig, workingDir string) (aggregator.CacheStorer, error) {
	path := cfg.Path
	if cfg.Type == storage.SQLiteStorageType {
		if !filepath.IsAbs(path) {
			path = filepath.Join(workingDir, path)
		}
		err := os.MkdirAll(filepath.Dir(path), os.ModePerm)
		if err != nil {
			return nil, err
		}
	}

	return storage.NewCacheStorer(cfg.Type, path)
}

type priceStream interface {
	aggregator.PriceNotifee
	http.Handler
	Close() error
}

func createNotifee(cfg config.WebSocketConfig) (aggregator.PriceNotifee, priceStream, error) {
	logNotifee, err := notifees.NewLogNotifee(log)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Enabled {
		return logNotifee, nil, nil
	}

	args := notifees.ArgsWebSocketNotifee{
		WriteTimeout:     time.Second * time.Duration(cfg.WriteTimeoutInSeconds),
		ClientBufferSize: cfg.ClientBufferSize,
	}
	if cfg.AllowAllOrigins {
		args.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
	wsNotifee, err := notifees.NewWebSocketNotifee(args)
	if err != nil {
		return nil, nil, err
	}

	multiNotifee, err := notifees.NewMultiNotifee(logNotifee, wsNotifee)
	if err != nil {
		return nil, nil, err
	}

	return multiNotifee, wsNotifee, nil
}
