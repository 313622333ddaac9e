// Package publish pushes compiled breadboards to a running renderer over
// socket.io and receives the anchors the renderer computed for places left
// to its automatic layout.
package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/specialistvlad/bnbgo/internal/codec"
	"github.com/specialistvlad/bnbgo/internal/ctxlog"
	"github.com/specialistvlad/bnbgo/internal/model"
)

// AnchorsEvent is the event a renderer emits with laid-out place centers.
const AnchorsEvent = "anchors"

// DefaultTimeout bounds the wait for the connection handshake.
const DefaultTimeout = 15 * time.Second

// Config describes the renderer endpoint.
type Config struct {
	URL                string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// Publisher is a connected socket.io client.
type Publisher struct {
	cfg    Config
	client *socket.Socket
	logger *slog.Logger
}

// ParseURL validates a renderer URL. The socket.io path is taken from the
// URL path.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q (want http, https, ws or wss)", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("URL has no host")
	}
	return u, nil
}

// Dial connects to the renderer and waits until the connection is
// established, the context is done or the timeout elapses.
func Dial(ctx context.Context, cfg Config) (*Publisher, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.Event == "" {
		cfg.Event = "breadboard"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	logger := ctxlog.FromContext(ctx).With("component", "publish", "url", cfg.URL)

	parsedURL, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to renderer.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		if err == nil {
			err = fmt.Errorf("%v", errs[0])
		}
		connectChan <- err
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &Publisher{cfg: cfg, client: io, logger: logger}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(cfg.Timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", cfg.Timeout)
	}
}

// Publish emits bb as the configured event. The payload is the JSON
// document produced by the codec package, decoded into plain values.
func (p *Publisher) Publish(bb *model.Breadboard) error {
	payload, err := Payload(bb)
	if err != nil {
		return err
	}
	p.logger.Info("Publishing breadboard.", "event", p.cfg.Event, "places", len(bb.Places))
	p.client.Emit(p.cfg.Event, payload)
	return nil
}

// OnAnchors registers fn to be called with every anchors event the renderer
// sends. Malformed events are logged and dropped.
func (p *Publisher) OnAnchors(fn func(map[string]model.Point)) {
	p.client.On(types.EventName(AnchorsEvent), func(data ...any) {
		anchors, err := DecodeAnchors(data...)
		if err != nil {
			p.logger.Warn("Dropping malformed anchors event.", "error", err)
			return
		}
		fn(anchors)
	})
}

// Close disconnects from the renderer.
func (p *Publisher) Close() error {
	p.logger.Debug("Disconnecting from renderer.", "sid", p.client.Id())
	p.client.Disconnect()
	return nil
}

// Payload converts bb into the value emitted on the wire.
func Payload(bb *model.Breadboard) (map[string]any, error) {
	raw, err := codec.Marshal(bb, codec.JSON)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}
	return out, nil
}

// DecodeAnchors decodes the arguments of an anchors event: a single object
// mapping place names to {"x": .., "y": ..}.
func DecodeAnchors(data ...any) (map[string]model.Point, error) {
	if len(data) == 0 {
		return nil, errors.New("anchors event has no payload")
	}
	raw, err := json.Marshal(data[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read anchors: %w", err)
	}
	var anchors map[string]model.Point
	if err := json.Unmarshal(raw, &anchors); err != nil {
		return nil, fmt.Errorf("failed to decode anchors: %w", err)
	}
	return anchors, nil
}
