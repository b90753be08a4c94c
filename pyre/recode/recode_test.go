package recode

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ampersand-S/dfpy/pyre/codec"
)

// fakeItemAPI accepts a single connection, captures the request line, and
// writes the given reply. Received messages arrive on the returned channel.
func fakeItemAPI(t *testing.T, replyJSON string) (addr string, received <-chan message) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	ch := make(chan message, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		line, err := bufio.NewReader(conn).ReadBytes('\n')
		if err != nil {
			return
		}
		var msg message
		if json.Unmarshal(line, &msg) == nil {
			ch <- msg
		}
		conn.Write([]byte(replyJSON + "\n"))
	}()
	return ln.Addr().String(), ch
}

func TestSend(t *testing.T) {
	addr, received := fakeItemAPI(t, `{"status": "success"}`)
	client := &Client{Addr: addr}
	art := codec.Artifact{Name: "event_Join", Code: "SGVsbG8="}

	require.NoError(t, client.Send(context.Background(), art))

	msg := <-received
	assert.Equal(t, "template", msg.Type)
	assert.Equal(t, "pyre - event_Join", msg.Source)

	var inner payload
	require.NoError(t, json.Unmarshal([]byte(msg.Data), &inner))
	assert.Equal(t, "pyre Template - event_Join", inner.Name)
	assert.Equal(t, art.Code, inner.Data)
}

func TestSendRejected(t *testing.T) {
	addr, _ := fakeItemAPI(t, `{"status": "error", "error": "malformed template"}`)
	client := &Client{Addr: addr}

	err := client.Send(context.Background(), codec.Artifact{Name: "bad", Code: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "malformed template")
}

func TestSendUnavailable(t *testing.T) {
	// Grab a port and close it so the dial is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := &Client{Addr: addr}
	err = client.Send(context.Background(), codec.Artifact{Name: "event_Join", Code: "x"})
	require.ErrorIs(t, err, ErrUnavailable)
}
