package sensorfeed

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Client is a websocket Source: it dials a boardsim (or real board driver)
// endpoint and decodes one Frame per text message.
type Client struct {
	iox.AsyncCloser

	conn   *websocket.Conn
	frames chan Frame
}

// Dial connects to a sensor feed server at url (e.g. "ws://localhost:8765/feed")
// and returns a Source streaming its frames.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		AsyncCloser: iox.NewAsyncCloser(),
		conn:        conn,
		frames:      make(chan Frame, 16),
	}
	go c.process(ctx)
	return c, nil
}

// Frames returns the channel of decoded readings. Closed when the
// connection ends.
func (c *Client) Frames() <-chan Frame {
	return c.frames
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	defer c.AsyncCloser.Close()
	return c.conn.Close()
}

func (c *Client) process(ctx context.Context) {
	defer close(c.frames)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			logw.Infof(ctx, "Sensor feed connection closed: %v", err)
			return
		}

		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			logw.Errorf(ctx, "Malformed sensor frame, dropped: %v", err)
			continue
		}

		select {
		case c.frames <- f:
		case <-c.Closed():
			return
		case <-ctx.Done():
			return
		}
	}
}
