// Package layoutapi talks to the layout server: it fetches the render
// model, sends edit intents (move, rotate, flip, undo, redo, reload) and
// subscribes to model updates pushed over a websocket. The server owns
// the document; the viewer only ever expresses intents and redraws from
// whatever model comes back.
package layoutapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/atopile/atopile-sub007/pkg/board"
)

const defaultTimeout = 10 * time.Second

// Action is an edit intent sent to the server. X, Y and R are in board
// units and degrees; the server ignores the fields a given type does not
// use.
type Action struct {
	Type string  `json:"type"` // move, rotate, flip
	UUID string  `json:"uuid"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	R    float64 `json:"r"`
}

// FootprintPose is the compact placement summary from /api/footprints.
type FootprintPose struct {
	UUID      string  `json:"uuid"`
	Reference string  `json:"reference"`
	Value     string  `json:"value"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	R         float64 `json:"r"`
	Layer     string  `json:"layer"`
}

// Client is a layout-server API client. Safe for concurrent use.
type Client struct {
	base string
	http *http.Client
	log  *slog.Logger
}

// New creates a client for the given server base URL, e.g.
// "http://127.0.0.1:8756".
func New(base string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: defaultTimeout},
		log:  log,
	}
}

// RenderModel fetches the full render model.
func (c *Client) RenderModel(ctx context.Context) (*board.RenderModel, error) {
	body, err := c.get(ctx, "/api/render-model")
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return board.DecodeRenderModel(body)
}

// Footprints fetches the placement summary list.
func (c *Client) Footprints(ctx context.Context) ([]FootprintPose, error) {
	body, err := c.get(ctx, "/api/footprints")
	if err != nil {
		return nil, err
	}
	defer body.Close()
	var out []FootprintPose
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode footprints: %w", err)
	}
	return out, nil
}

// ExecuteAction sends an edit intent.
func (c *Client) ExecuteAction(ctx context.Context, a Action) error {
	return c.post(ctx, "/api/execute-action", a)
}

// Undo asks the server to revert its last edit.
func (c *Client) Undo(ctx context.Context) error {
	return c.post(ctx, "/api/undo", nil)
}

// Redo asks the server to reapply the last undone edit.
func (c *Client) Redo(ctx context.Context) error {
	return c.post(ctx, "/api/redo", nil)
}

// Reload asks the server to reread the document from disk.
func (c *Client) Reload(ctx context.Context) error {
	return c.post(ctx, "/api/reload", nil)
}

func (c *Client) get(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	return resp.Body, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST %s: %s", path, resp.Status)
	}
	return nil
}

// Subscribe opens the server's websocket and delivers a decoded render
// model for every update message until the context is canceled or the
// connection drops. The channel is closed on exit; callers decide whether
// to reconnect.
func (c *Client) Subscribe(ctx context.Context) (<-chan *board.RenderModel, error) {
	u, err := url.Parse(c.base)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", u.String(), err)
	}

	ch := make(chan *board.RenderModel, 1)
	go func() {
		defer close(ch)
		defer conn.Close()
		go func() {
			<-ctx.Done()
			conn.Close()
		}()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil {
					c.log.Warn("model subscription closed", "err", err)
				}
				return
			}
			m, err := board.DecodeRenderModel(bytes.NewReader(msg))
			if err != nil {
				c.log.Warn("bad model update", "err", err)
				continue
			}
			select {
			case ch <- m:
			case <-ctx.Done():
				return
			default:
				// Viewer is behind; drop the stale update in the buffer
				// and queue the newest one.
				select {
				case <-ch:
				default:
				}
				ch <- m
			}
		}
	}()
	return ch, nil
}
