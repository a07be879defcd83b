package gin

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DisabledInterface turns the web server off
	DisabledInterface = "off"

	defaultHistoryLimit = 20
	maxHistoryLimit     = 1000
	shutdownTimeout     = 5 * time.Second
)

var (
	log         = logger.GetOrCreate("gas-oracle/aggregator/api/gin")
	setModeOnce sync.Once
)

// ArgsWebServerHandler is the argument DTO for the NewWebServerHandler function
type ArgsWebServerHandler struct {
	ListenAddress string
	PriceCache    aggregator.PriceCacheHandler
	// optional
	PriceStream http.Handler
	Gatherer    prometheus.Gatherer
	History     PriceHistoryProvider
}

type webServer struct {
	mut        sync.Mutex
	address    string
	engine     *gin.Engine
	priceCache aggregator.PriceCacheHandler
	history    PriceHistoryProvider
	httpServer *http.Server
}

// NewWebServerHandler creates the REST and websocket surface of the price cache
func NewWebServerHandler(args ArgsWebServerHandler) (*webServer, error) {
	if len(args.ListenAddress) == 0 {
		return nil, errEmptyListenAddress
	}
	if check.IfNil(args.PriceCache) {
		return nil, errNilPriceCache
	}

	setModeOnce.Do(func() {
		gin.SetMode(gin.ReleaseMode)
	})
	ws := &webServer{
		address:    args.ListenAddress,
		priceCache: args.PriceCache,
		history:    args.History,
	}
	ws.engine = ws.createEngine(args)

	return ws, nil
}

func (ws *webServer) createEngine(args ArgsWebServerHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(), cors.Default())

	priceGroup := engine.Group("/price")
	priceGroup.GET("", ws.getPrice)
	priceGroup.POST("/update", ws.updatePrice)
	if args.History != nil {
		priceGroup.GET("/history", ws.getHistory)
	}
	if args.PriceStream != nil {
		priceGroup.GET("/ws", gin.WrapH(args.PriceStream))
	}
	if args.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(args.Gatherer, promhttp.HandlerOpts{})))
	}

	return engine
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("rest api request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (ws *webServer) getPrice(c *gin.Context) {
	price := ws.priceCache.CachedPrice()
	c.JSON(http.StatusOK, newPriceResponse(price, ws.priceCache))
}

func (ws *webServer) updatePrice(c *gin.Context) {
	force := false
	forceParam := c.Query("force")
	if len(forceParam) > 0 {
		var err error
		force, err = strconv.ParseBool(forceParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid force parameter: " + err.Error()})
			return
		}
	}

	price, err := ws.priceCache.Update(c.Request.Context(), force)
	if err != nil {
		c.JSON(statusCodeForError(err), ErrorResponse{
			Error: err.Error(),
			Kind:  aggregator.ErrorKind(err),
		})
		return
	}

	c.JSON(http.StatusOK, PriceUpdateResponse{
		PriceResponse: newPriceResponse(price, ws.priceCache),
		Forced:        force,
	})
}

func statusCodeForError(err error) int {
	switch aggregator.ErrorKind(err) {
	case aggregator.ErrorKindNotConfigured:
		return http.StatusServiceUnavailable
	case aggregator.ErrorKindStorage:
		return http.StatusInternalServerError
	}

	return http.StatusBadGateway
}

func (ws *webServer) getHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	limitParam := c.Query("limit")
	if len(limitParam) > 0 {
		value, err := strconv.Atoi(limitParam)
		if err != nil || value < 1 || value > maxHistoryLimit {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit parameter"})
			return
		}
		limit = value
	}

	updates, err := ws.history.PriceUpdates(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Kind: aggregator.ErrorKindStorage})
		return
	}

	entries := make([]HistoryEntry, 0, len(updates))
	for _, update := range updates {
		entries = append(entries, HistoryEntry{
			Price:        update.Price.Dec(),
			PriceDecimal: aggregator.FormatPrice(update.Price),
			Timestamp:    update.Timestamp,
		})
	}

	c.JSON(http.StatusOK, entries)
}

// StartHttpServer binds the listen address and serves the API in the background
func (ws *webServer) StartHttpServer() error {
	ws.mut.Lock()
	defer ws.mut.Unlock()

	if ws.address == DisabledInterface {
		log.Debug("web server is disabled")
		return nil
	}
	if ws.httpServer != nil {
		return errServerAlreadyStarted
	}

	listener, err := net.Listen("tcp", ws.address)
	if err != nil {
		return err
	}

	ws.httpServer = &http.Server{
		Handler:           ws.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func(server *http.Server) {
		errServe := server.Serve(listener)
		if errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			log.Error("web server stopped", "error", errServe)
		}
	}(ws.httpServer)

	log.Info("web server started", "address", listener.Addr().String())

	return nil
}

// Close gracefully stops the http server. Hijacked websocket connections are closed by their owner
func (ws *webServer) Close() error {
	ws.mut.Lock()
	defer ws.mut.Unlock()

	if ws.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := ws.httpServer.Shutdown(ctx)
	ws.httpServer = nil

	return err
}

// IsInterfaceNil returns true if there is no value under the interface
func (ws *webServer) IsInterfaceNil() bool {
	return ws == nil
}
