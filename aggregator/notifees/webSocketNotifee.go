package notifees

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
)

const minWriteTimeout = time.Millisecond

// ArgsWebSocketNotifee is the argument DTO for the NewWebSocketNotifee function
type ArgsWebSocketNotifee struct {
	WriteTimeout     time.Duration
	ClientBufferSize int
	CheckOrigin      func(r *http.Request) bool
}

type wsClient struct {
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func (client *wsClient) close() {
	client.closeOnce.Do(func() {
		close(client.send)
		_ = client.conn.Close()
	})
}

type webSocketNotifee struct {
	mut          sync.RWMutex
	clients      map[*wsClient]struct{}
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	bufferSize   int
	closed       bool
}

// NewWebSocketNotifee will create a notifee that broadcasts every price update to the connected websocket clients
func NewWebSocketNotifee(args ArgsWebSocketNotifee) (*webSocketNotifee, error) {
	if args.WriteTimeout < minWriteTimeout {
		return nil, errInvalidWriteTimeout
	}
	if args.ClientBufferSize < 1 {
		return nil, errInvalidBufferSize
	}

	return &webSocketNotifee{
		clients: make(map[*wsClient]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: args.CheckOrigin,
		},
		writeTimeout: args.WriteTimeout,
		bufferSize:   args.ClientBufferSize,
	}, nil
}

// ServeHTTP upgrades the connection and keeps the client registered until it disconnects
func (wn *webSocketNotifee) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := wn.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan []byte, wn.bufferSize),
	}
	if !wn.register(client) {
		_ = conn.Close()
		return
	}

	go wn.writeLoop(client)
	wn.readLoop(client)
}

func (wn *webSocketNotifee) register(client *wsClient) bool {
	wn.mut.Lock()
	defer wn.mut.Unlock()

	if wn.closed {
		return false
	}
	wn.clients[client] = struct{}{}
	log.Debug("websocket client connected", "remote", client.conn.RemoteAddr().String(), "clients", len(wn.clients))

	return true
}

func (wn *webSocketNotifee) unregister(client *wsClient) {
	wn.mut.Lock()
	_, found := wn.clients[client]
	delete(wn.clients, client)
	wn.mut.Unlock()

	if found {
		client.close()
	}
}

// readLoop drains the incoming frames so control messages get processed, it returns when the peer goes away
func (wn *webSocketNotifee) readLoop(client *wsClient) {
	defer wn.unregister(client)

	for {
		_, _, err := client.conn.ReadMessage()
		if err != nil {
			return
		}
	}
}

func (wn *webSocketNotifee) writeLoop(client *wsClient) {
	for message := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(wn.writeTimeout))
		err := client.conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			log.Debug("websocket write failed", "remote", client.conn.RemoteAddr().String(), "error", err)
			wn.unregister(client)
			return
		}
	}
}

// PriceUpdated broadcasts the price update. Clients that can not keep up are disconnected
func (wn *webSocketNotifee) PriceUpdated(_ context.Context, args *aggregator.ArgsPriceUpdated) error {
	if args == nil {
		return errNilPriceUpdatedArgs
	}

	message, err := json.Marshal(NewPriceUpdatedMessage(args))
	if err != nil {
		return err
	}

	wn.mut.RLock()
	if wn.closed {
		wn.mut.RUnlock()
		return errNotifeeClosed
	}
	var slowClients []*wsClient
	for client := range wn.clients {
		select {
		case client.send <- message:
		default:
			slowClients = append(slowClients, client)
		}
	}
	wn.mut.RUnlock()

	for _, client := range slowClients {
		log.Debug("dropping slow websocket client", "remote", client.conn.RemoteAddr().String())
		wn.unregister(client)
	}

	return nil
}

// NumClients returns the number of connected clients
func (wn *webSocketNotifee) NumClients() int {
	wn.mut.RLock()
	defer wn.mut.RUnlock()

	return len(wn.clients)
}

// Close disconnects every client. Further notifications are rejected
func (wn *webSocketNotifee) Close() error {
	wn.mut.Lock()
	wn.closed = true
	clients := wn.clients
	wn.clients = make(map[*wsClient]struct{})
	wn.mut.Unlock()

	for client := range clients {
		client.close()
	}

	return nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (wn *webSocketNotifee) IsInterfaceNil() bool {
	return wn == nil
}
