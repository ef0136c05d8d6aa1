package stream

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const DefaultRetryDelay = 3 * time.Second

// Client follows a snapshot stream and reconnects when the connection drops.
type Client struct {
	url        string
	retryDelay time.Duration
	handler    func([]byte)
	logger     *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient creates a new WebSocket client with the given URL and logger.
func NewClient(url string, logger *zap.Logger) *Client {
	return &Client{
		url:        url,
		retryDelay: DefaultRetryDelay,
		logger:     logger,
	}
}

// SetMessageHandler sets the function to handle incoming messages.
func (c *Client) SetMessageHandler(h func([]byte)) {
	c.handler = h
}

// SetRetryDelay sets the pause between reconnect attempts.
func (c *Client) SetRetryDelay(d time.Duration) {
	if d > 0 {
		c.retryDelay = d
	}
}

// Connect establishes the WebSocket connection. It does not start the listener.
func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		c.logger.Error("failed to connect to websocket", zap.String("url", c.url), zap.Error(err))
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	c.setConn(conn)
	c.logger.Info("websocket connected", zap.String("url", c.url))
	return nil
}

// Listen delivers messages to the handler until ctx is cancelled, reconnecting
// indefinitely after read errors.
func (c *Client) Listen(ctx context.Context) error {
	// unblock ReadMessage on cancellation
	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()

	for {
		conn := c.current()
		if conn == nil {
			return errors.New("listen called before connect")
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("websocket read error", zap.Error(err))

			if err := c.reconnect(ctx); err != nil {
				return err
			}
			c.logger.Info("reconnected successfully")
			continue // Start listening again with the new connection
		}

		if c.handler != nil {
			c.handler(msg)
		}
	}
}

func (c *Client) reconnect(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelay):
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.logger.Warn("retrying reconnect", zap.Error(err))
			continue
		}

		c.setConn(conn)
		if ctx.Err() != nil {
			c.Close()
			return ctx.Err()
		}
		return nil
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Close the old connection if it exists
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = conn
}

func (c *Client) current() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// Close closes the current connection, if any.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
