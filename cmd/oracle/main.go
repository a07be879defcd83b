package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/holiman/uint256"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	"github.com/klever-io/klv-gas-oracle-go/aggregator/api/gin"
	"github.com/klever-io/klv-gas-oracle-go/aggregator/metrics"
	"github.com/klever-io/klv-gas-oracle-go/aggregator/refresher"
	"github.com/klever-io/klv-gas-oracle-go/config"
	chainCore "github.com/multiversx/mx-chain-core-go/core"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-chain-logger-go/file"
	"github.com/multiversx/mx-sdk-go/core/polling"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli"
)

const (
	defaultLogsPath      = "logs"
	logFilePrefix        = "gas-oracle"
	unVersionedAppString = "undefined"
)

var log = logger.GetOrCreate("gas-oracle/main")

// appVersion should be populated at build time using ldflags
// Usage examples:
// linux/mac:
//
//	go build -v -ldflags="-X main.appVersion=$(git describe --tags --long --dirty)"
var appVersion = unVersionedAppString

type fileLoggingHandler interface {
	ChangeFileLifeSpan(newDuration time.Duration, newSizeInMB uint64) error
	Close() error
	IsInterfaceNil() bool
}

type historyStorer interface {
	aggregator.CacheStorer
	gin.PriceHistoryProvider
}

func main() {
	app := cli.NewApp()
	app.Name = "Gas oracle CLI app"
	app.Usage = "Gas oracle keeps a threshold gated token per native asset price derived from two price feeds" +
		" and publishes every accepted change"
	app.Flags = getFlags()
	machineID := chainCore.GetAnonymizedMachineID(app.Name)
	app.Version = fmt.Sprintf("%s/%s/%s-%s/%s", appVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH, machineID)
	app.Authors = []cli.Author{
		{
			Name:  "The Klever Blockchain Team",
			Email: "contact@klever.io",
		},
	}

	app.Action = func(c *cli.Context) error {
		return startOracle(c, app.Version)
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func startOracle(ctx *cli.Context, version string) error {
	flagsConfig := getFlagsConfig(ctx)

	fileLogging, errLogger := attachFileLogger(log, flagsConfig)
	if errLogger != nil {
		return errLogger
	}

	log.Info("starting gas oracle", "version", version, "pid", os.Getpid())

	cfg, err := config.LoadConfig(flagsConfig.ConfigurationFile, flagsConfig.EnvFile)
	if err != nil {
		return err
	}

	if !check.IfNil(fileLogging) {
		logsCfg := cfg.GeneralConfig.Logs
		timeLogLifeSpan := time.Second * time.Duration(logsCfg.LogFileLifeSpanInSec)
		sizeLogLifeSpanInMB := uint64(logsCfg.LogFileLifeSpanInMB)
		err = fileLogging.ChangeFileLifeSpan(timeLogLifeSpan, sizeLogLifeSpanInMB)
		if err != nil {
			return err
		}
	}

	storer, err := createStorer(cfg.Storage, flagsConfig.WorkingDir)
	if err != nil {
		return err
	}
	defer func() {
		log.LogIfError(storer.Close())
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	statusHandler, err := metrics.NewStatusHandler(metrics.ArgsStatusHandler{
		Registerer: registry,
	})
	if err != nil {
		return err
	}

	notifee, stream, err := createNotifee(cfg.WebSocket)
	if err != nil {
		return err
	}

	initialPrice, err := cfg.Oracle.InitialPriceValue()
	if err != nil {
		return err
	}

	priceCache, err := aggregator.NewPriceCache(aggregator.ArgsPriceCache{
		FeedReader:    aggregator.NewFeedReader(),
		Notifee:       notifee,
		Storer:        storer,
		StatusHandler: statusHandler,
		InitialPrice:  initialPrice,
	})
	if err != nil {
		return err
	}
	statusHandler.SetCachedPrice(priceCache.CachedPrice(), priceCache.CachedPriceTimestamp())

	conn, err := dialIfNeeded(context.Background(), nil, cfg)
	if err != nil {
		return err
	}
	defer func() {
		conn.close()
	}()

	err = configure(priceCache, cfg, conn)
	if err != nil {
		return err
	}

	argsPollingHandler := polling.ArgsPollingHandler{
		Log:              log,
		Name:             "gas oracle polling handler",
		PollingInterval:  time.Second * time.Duration(cfg.GeneralConfig.PollIntervalInSeconds),
		PollingWhenError: pollingWhenError(cfg.GeneralConfig),
		Executor:         priceCache,
	}
	pollingHandler, err := polling.NewPollingHandler(argsPollingHandler)
	if err != nil {
		return err
	}

	var forcedRefresher interface{ Close() error }
	if len(cfg.Oracle.ForcedRefreshCron) > 0 {
		r, errRefresher := refresher.NewRefresher(refresher.ArgsRefresher{
			Spec:    cfg.Oracle.ForcedRefreshCron,
			Timeout: time.Second * time.Duration(cfg.Oracle.ForcedRefreshTimeoutInSeconds),
			Updater: priceCache,
		})
		if errRefresher != nil {
			return errRefresher
		}
		r.Start()
		forcedRefresher = r
	}

	argsWebServer := gin.ArgsWebServerHandler{
		ListenAddress: flagsConfig.RestApiInterface,
		PriceCache:    priceCache,
		Gatherer:      registry,
	}
	if stream != nil {
		argsWebServer.PriceStream = stream
	}
	history, ok := storer.(historyStorer)
	if ok {
		argsWebServer.History = history
	}
	httpServerWrapper, err := gin.NewWebServerHandler(argsWebServer)
	if err != nil {
		return err
	}

	err = httpServerWrapper.StartHttpServer()
	if err != nil {
		return err
	}

	err = pollingHandler.StartProcessingLoop()
	if err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for sig := range sigs {
		if sig != syscall.SIGHUP {
			break
		}

		conn, err = reload(priceCache, flagsConfig, conn)
		if err != nil {
			log.Error("configuration reload failed, keeping the active configuration", "error", err)
		}
	}

	log.Info("application closing, closing polling handler...")

	if forcedRefresher != nil {
		log.LogIfError(forcedRefresher.Close())
	}
	log.LogIfError(httpServerWrapper.Close())
	if stream != nil {
		log.LogIfError(stream.Close())
	}
	if !check.IfNil(fileLogging) {
		defer func() {
			log.LogIfError(fileLogging.Close())
		}()
	}

	return pollingHandler.Close()
}

func pollingWhenError(cfg config.GeneralConfig) time.Duration {
	if cfg.PollIntervalWhenErrorInSeconds == 0 {
		return time.Second * time.Duration(cfg.PollIntervalInSeconds)
	}

	return time.Second * time.Duration(cfg.PollIntervalWhenErrorInSeconds)
}

type configurable interface {
	Configure(ctx context.Context, cfg aggregator.OracleConfig) error
	CachedPrice() *uint256.Int
}

func configure(priceCache configurable, cfg *config.GasOracleConfig, conn *rpcConnection) error {
	oracleConfig, err := createOracleConfig(cfg, conn)
	if err != nil {
		return err
	}

	return priceCache.Configure(context.Background(), oracleConfig)
}

// reload re-reads the configuration files and reconfigures the price cache. The returned connection is the one
// in use after the call
func reload(priceCache configurable, flagsConfig config.ContextFlagsConfig, current *rpcConnection) (*rpcConnection, error) {
	log.Info("reloading the configuration", "file", flagsConfig.ConfigurationFile)

	cfg, err := config.LoadConfig(flagsConfig.ConfigurationFile, flagsConfig.EnvFile)
	if err != nil {
		return current, err
	}

	conn, err := dialIfNeeded(context.Background(), current, cfg)
	if err != nil {
		return current, err
	}

	err = configure(priceCache, cfg, conn)
	if err != nil {
		if conn != current {
			conn.close()
		}
		return current, err
	}

	if conn != current {
		current.close()
	}
	log.Info("configuration reloaded", "cached price", aggregator.FormatPrice(priceCache.CachedPrice()))

	return conn, nil
}

func attachFileLogger(log logger.Logger, flagsConfig config.ContextFlagsConfig) (fileLoggingHandler, error) {
	var fileLogging fileLoggingHandler
	var err error
	if flagsConfig.SaveLogFile {
		args := file.ArgsFileLogging{
			WorkingDir:      flagsConfig.WorkingDir,
			DefaultLogsPath: defaultLogsPath,
			LogFilePrefix:   logFilePrefix,
		}
		fileLogging, err = file.NewFileLogging(args)
		if err != nil {
			return nil, fmt.Errorf("%w creating a log file", err)
		}
	}

	err = logger.SetDisplayByteSlice(logger.ToHex)
	log.LogIfError(err)
	logger.ToggleLoggerName(flagsConfig.EnableLogName)
	logLevelFlagValue := flagsConfig.LogLevel
	err = logger.SetLogLevel(logLevelFlagValue)
	if err != nil {
		return nil, err
	}

	if flagsConfig.DisableAnsiColor {
		err = logger.RemoveLogObserver(os.Stdout)
		if err != nil {
			return nil, err
		}

		err = logger.AddLogObserver(os.Stdout, &logger.PlainFormatter{})
		if err != nil {
			return nil, err
		}
	}
	log.Trace("logger updated", "level", logLevelFlagValue, "disable ANSI color", flagsConfig.DisableAnsiColor)

	return fileLogging, nil
}
