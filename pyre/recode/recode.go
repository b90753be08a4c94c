// Package recode delivers encoded templates to a locally running Minecraft
// client through the recode mod's item API: one newline-terminated JSON
// message over a loopback TCP socket, one JSON reply, then the connection
// is closed. There is no retry logic; an unreachable endpoint is reported
// as ErrUnavailable and the caller keeps the artifact.
package recode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/Ampersand-S/dfpy/internal/ctxlog"
	"github.com/Ampersand-S/dfpy/pyre/codec"
)

// DefaultAddr is the fixed well-known port the recode mod listens on.
const DefaultAddr = "127.0.0.1:31372"

// ErrUnavailable reports that the item API endpoint refused the connection,
// usually because Minecraft is not open or recode is not installed.
var ErrUnavailable = errors.New("recode item API is unreachable")

// Client sends templates to the item API. The zero value uses DefaultAddr
// and a 5 second dial timeout.
type Client struct {
	Addr        string
	DialTimeout time.Duration
}

// message is the outer envelope of an item API request. Data carries the
// nested payload pre-encoded as JSON text, which is how the protocol wants it.
type message struct {
	Type   string `json:"type"`
	Source string `json:"source"`
	Data   string `json:"data"`
}

// payload is the nested template payload.
type payload struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// reply is the item API response. Error is set when Status is not "success".
type reply struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Send performs the one-shot exchange: connect, send the template, read the
// reply, close. A refused connection returns an error wrapping
// ErrUnavailable; a rejection by the client returns the reported reason.
func (c *Client) Send(ctx context.Context, art codec.Artifact) error {
	addr := c.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	timeout := c.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w at %s: %v", ErrUnavailable, addr, err)
	}
	defer conn.Close()

	inner, err := json.Marshal(payload{Name: "pyre Template - " + art.Name, Data: art.Code})
	if err != nil {
		return fmt.Errorf("encoding template payload: %w", err)
	}
	msg, err := json.Marshal(message{Type: "template", Source: "pyre - " + art.Name, Data: string(inner)})
	if err != nil {
		return fmt.Errorf("encoding item API message: %w", err)
	}
	if _, err := conn.Write(append(msg, '\n')); err != nil {
		return fmt.Errorf("sending template %q: %w", art.Name, err)
	}

	var r reply
	if err := json.NewDecoder(conn).Decode(&r); err != nil {
		return fmt.Errorf("reading item API reply: %w", err)
	}
	if r.Status != "success" {
		return fmt.Errorf("client rejected template %q: %s", art.Name, r.Error)
	}
	ctxlog.FromContext(ctx).Info("template sent to client", "name", art.Name)
	return nil
}
