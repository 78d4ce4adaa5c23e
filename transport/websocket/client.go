package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/service"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/session"
	"github.com/chenchaotao666/xian-game-2025-sub000/transport/protocol"
)

const (
	// Time allowed to write a message to the server.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the server.
	pongWait = 60 * time.Second

	// Send pings to the server with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from the server. Turn payloads carry the
	// full battlefield, so this is far above the usual chat-sized default.
	maxMessageSize = 1 << 20
)

// Client runs one match against the contest server
type Client struct {
	url      string
	name     string
	playerID int

	agent   service.AgentService
	matches *session.Manager

	conn    *websocket.Conn
	send    chan []byte
	matchID string
}

// NewClient creates a client for the given server URL. The match manager is
// optional; without one, no match record is kept.
func NewClient(url, name string, playerID int, agent service.AgentService, matches *session.Manager) *Client {
	return &Client{
		url:      url,
		name:     name,
		playerID: playerID,
		agent:    agent,
		matches:  matches,
		send:     make(chan []byte, 16),
	}
}

// Run dials the server, registers, and processes turns until the match ends
// or the context is cancelled. It always closes the connection before
// returning.
func (c *Client) Run(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", c.url, err)
	}
	c.conn = conn
	defer conn.Close()

	if err := c.enqueue(protocol.TypeRegister, protocol.RegisterPayload{
		PlayerID: c.playerID,
		Name:     c.name,
	}); err != nil {
		return err
	}

	writeDone := make(chan struct{})
	go c.writePump(ctx, writeDone)
	defer func() {
		close(c.send)
		<-writeDone
	}()

	return c.readLoop(ctx)
}

// readLoop pumps messages from the server and dispatches them
func (c *Client) readLoop(ctx context.Context) error {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("connection lost: %w", err)
			}
			return nil
		}

		var msg protocol.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("websocket: dropping malformed message: %v", err)
			continue
		}

		done, err := c.handleMessage(&msg)
		if err != nil {
			log.Printf("websocket: %s message failed: %v", msg.Type, err)
			continue
		}
		if done {
			return nil
		}
	}
}

// handleMessage dispatches one decoded envelope. It returns done=true when
// the server has ended the match.
func (c *Client) handleMessage(msg *protocol.Message) (bool, error) {
	switch msg.Type {
	case protocol.TypeRegistered:
		return false, c.handleRegistered(msg)
	case protocol.TypeInquire:
		return false, c.handleInquire(msg)
	case protocol.TypeGameOver:
		return true, c.handleGameOver(msg)
	default:
		log.Printf("websocket: ignoring unknown message type %q", msg.Type)
		return false, nil
	}
}

func (c *Client) handleRegistered(msg *protocol.Message) error {
	var payload protocol.RegisteredPayload
	if err := msg.DecodePayload(&payload); err != nil {
		return err
	}

	if payload.PlayerID != 0 {
		c.playerID = payload.PlayerID
	}
	c.matchID = payload.MatchID
	log.Printf("websocket: registered as player %d, match %s", c.playerID, c.matchID)

	if c.matches != nil {
		if _, err := c.matches.Begin(c.matchID, payload.Config, c.playerID); err != nil {
			log.Printf("websocket: failed to open match record: %v", err)
		}
	}
	return nil
}

// handleInquire runs the turn: decode the battlefield, evaluate, reply with
// one action per unit
func (c *Client) handleInquire(msg *protocol.Message) error {
	var payload protocol.TurnPayload
	if err := msg.DecodePayload(&payload); err != nil {
		return err
	}

	snapshot, err := protocol.ToSnapshot(&payload)
	if err != nil {
		return err
	}

	result, err := c.agent.ProcessTurn(snapshot)
	if err != nil {
		return fmt.Errorf("turn %d evaluation failed: %w", payload.Round, err)
	}

	log.Printf("websocket: round %d: %s (priority %.1f, confidence %d, %d intents, %s)",
		result.Round, result.Decision.Kind, result.Decision.Priority,
		result.Decision.Confidence, len(result.Intents), result.Elapsed)

	if c.matches != nil && c.matchID != "" {
		if err := c.matches.RecordTurn(c.matchID, result); err != nil {
			log.Printf("websocket: failed to record turn: %v", err)
		}
	}

	return c.enqueue(protocol.TypeAction, protocol.ToActionPayload(result.Round, result.Intents))
}

func (c *Client) handleGameOver(msg *protocol.Message) error {
	var payload protocol.GameOverPayload
	if err := msg.DecodePayload(&payload); err != nil {
		return err
	}

	result := session.ResultDraw
	switch payload.Winner {
	case c.playerID:
		result = session.ResultWin
	case 0:
	default:
		result = session.ResultLoss
	}
	log.Printf("websocket: match over: %s (%s)", result, payload.Reason)

	if c.matches != nil && c.matchID != "" {
		if err := c.matches.Finish(c.matchID, result); err != nil {
			log.Printf("websocket: failed to close match record: %v", err)
		}
	}
	return nil
}

// enqueue wraps a payload in an envelope and hands it to the write pump
func (c *Client) enqueue(msgType string, payload any) error {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", msgType, err)
	}

	select {
	case c.send <- data:
		return nil
	default:
		return fmt.Errorf("send queue full, dropping %s message", msgType)
	}
}

// writePump serializes outbound frames and keeps the connection alive
func (c *Client) writePump(ctx context.Context, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(done)
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
