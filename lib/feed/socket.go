// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"context"
	"fmt"
	"net"

	"github.com/bureau-foundation/fieldmap/lib/codec"
	"github.com/bureau-foundation/fieldmap/lib/version"
)

// SubscribeRequest is the handshake a client sends after connecting.
type SubscribeRequest struct {
	Action string `json:"action"`
	Client string `json:"client"`
}

func subscribeRequest() SubscribeRequest {
	return SubscribeRequest{Action: "subscribe", Client: version.Client()}
}

// SocketSource reads CBOR frames from a Unix socket. After connecting
// it sends a [SubscribeRequest]; the server answers with a snapshot
// followed by live updates.
type SocketSource struct {
	*stream
}

// NewSocketSource starts a source connected to the socket at path.
// The background goroutine starts immediately; call Close to stop it.
func NewSocketSource(path string, options StreamOptions) *SocketSource {
	source := &SocketSource{}
	source.stream = newStream("unix", path, func(ctx context.Context) (connection, error) {
		return dialSocket(ctx, path)
	}, options)
	source.start()
	return source
}

type socketConnection struct {
	conn    net.Conn
	decoder *codec.Decoder
}

func dialSocket(ctx context.Context, path string) (connection, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, err
	}
	if err := codec.NewEncoder(conn).Encode(subscribeRequest()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sending subscribe request: %w", err)
	}
	return &socketConnection{conn: conn, decoder: codec.NewDecoder(conn)}, nil
}

func (connection *socketConnection) ReadFrame() (Frame, error) {
	var frame Frame
	err := connection.decoder.Decode(&frame)
	return frame, err
}

func (connection *socketConnection) Close() error {
	return connection.conn.Close()
}
