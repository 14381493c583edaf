package rpc

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 54 * time.Second
)

// WebSocketServer exposes the RPC methods and the mint event stream over
// WebSocket connections.
type WebSocketServer struct {
	upgrader  websocket.Upgrader
	server    *Server
	publisher *Publisher
}

// NewWebSocketServer creates a WebSocket front end over the given RPC server
// and publisher.
func NewWebSocketServer(server *Server, publisher *Publisher) *WebSocketServer {
	return &WebSocketServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		server:    server,
		publisher: publisher,
	}
}

// ServeHTTP upgrades the connection and serves it until either side closes.
func (ws *WebSocketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &wsClient{
		ws:   ws,
		conn: conn,
		send: make(chan []byte, 64),
		done: make(chan struct{}),
	}
	go client.writePump()
	client.readPump(r)
}

type wsClient struct {
	ws   *WebSocketServer
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	subID      uint64
	subscribed bool
}

func (c *wsClient) readPump(r *http.Request) {
	defer func() {
		if c.subscribed {
			c.ws.publisher.Unsubscribe(c.subID)
		}
		close(c.done)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read failed: %v", err)
			}
			return
		}

		var request rpcRequest
		if err := json.Unmarshal(data, &request); err != nil {
			c.reply(nil, &RpcError{Code: "json_invalid", Message: "invalid JSON: " + err.Error()})
			continue
		}

		switch request.Method {
		case "subscribe":
			c.subscribe()
			c.reply(map[string]string{"stream": "mints"}, nil)
		case "unsubscribe":
			if c.subscribed {
				c.ws.publisher.Unsubscribe(c.subID)
				c.subscribed = false
			}
			c.reply(map[string]string{}, nil)
		default:
			ctx := &RpcContext{
				Context:  r.Context(),
				IsAdmin:  c.ws.server.admin,
				ClientIP: clientIP(r),
			}
			result, rpcErr := c.ws.server.Execute(request.Method, request.Params, ctx)
			c.reply(result, rpcErr)
		}
	}
}

func (c *wsClient) subscribe() {
	if c.subscribed {
		return
	}
	id, events := c.ws.publisher.Subscribe()
	c.subID = id
	c.subscribed = true
	go func() {
		for data := range events {
			select {
			case c.send <- data:
			case <-c.done:
				return
			}
		}
	}()
}

func (c *wsClient) reply(result any, rpcErr *RpcError) {
	resp := rpcResponse{Result: result, Error: rpcErr, Status: "success"}
	if rpcErr != nil {
		resp.Status = "error"
	}
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("Failed to marshal WebSocket response: %v", err)
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
