package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"shesafeBack/internal/models"
)

const (
	readLimit          = 1 << 20
	readDeadline       = 120 * time.Second // extended by pongs
	writeDeadline      = 5 * time.Second
	pingInterval       = 15 * time.Second
	firstHelloDeadline = 30 * time.Second // time allowed for the first {userId} frame
)

type directResult struct {
	userID int
	result models.CycleResult
}

type unreg struct {
	userID int
	conn   *websocket.Conn
}

type Client struct {
	ID     int
	Socket *websocket.Conn
}

// ResultHub delivers cycle results to connected app sessions. All access to
// clients happens in Run.
type ResultHub struct {
	clients    map[int]*websocket.Conn
	direct     chan directResult
	register   chan Client
	unregister chan unreg
}

func NewResultHub() *ResultHub {
	return &ResultHub{
		clients:    make(map[int]*websocket.Conn),
		direct:     make(chan directResult),
		register:   make(chan Client),
		unregister: make(chan unreg),
	}
}

// PublishResult queues a cycle result for the owning user's sessions.
func (h *ResultHub) PublishResult(result models.CycleResult) {
	h.direct <- directResult{userID: result.UserID, result: result}
}

func (h *ResultHub) Run() {
	for {
		select {
		case client := <-h.register:
			// a user reconnecting replaces the old socket
			if old, ok := h.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			h.clients[client.ID] = client.Socket
			log.Printf("WS register user=%d", client.ID)

		case u := <-h.unregister:
			if cur, ok := h.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(h.clients, u.userID)
				log.Printf("WS unregister user=%d", u.userID)
			}

		case dr := <-h.direct:
			if conn, ok := h.clients[dr.userID]; ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(dr.result); err != nil {
					log.Printf("result send error to=%d: %v", dr.userID, err)
					_ = conn.Close()
					delete(h.clients, dr.userID)
				}
			} else {
				log.Printf("result skip: user=%d offline", dr.userID)
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteMessage(websocket.CloseMessage, msg)
}

// ResultsWebSocketHandler upgrades the connection and registers the session.
// The first frame from the client must be { "userId": <int> }.
func (app *application) ResultsWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Results WS upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(firstHelloDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	var hello struct {
		UserID int `json:"userId"`
	}
	if err := conn.ReadJSON(&hello); err != nil || hello.UserID == 0 {
		log.Println("invalid hello payload for results:", err)
		_ = writeClose(conn, websocket.ClosePolicyViolation, "hello required")
		_ = conn.Close()
		return
	}
	conn.SetReadDeadline(time.Now().Add(readDeadline))

	client := Client{ID: hello.UserID, Socket: conn}
	app.resultHub.register <- client

	go app.pingLoopResults(conn, hello.UserID)
	go app.drainResultMessages(conn, hello.UserID)
}

func (app *application) pingLoopResults(conn *websocket.Conn, uid int) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			_ = writeClose(conn, websocket.CloseGoingAway, "ping error")
			app.resultHub.unregister <- unreg{userID: uid, conn: conn}
			return
		}
	}
}

// drainResultMessages keeps the read side alive; the feed is one-way.
func (app *application) drainResultMessages(conn *websocket.Conn, userID int) {
	defer func() {
		app.resultHub.unregister <- unreg{userID: userID, conn: conn}
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
