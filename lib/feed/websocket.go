// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/bureau-foundation/fieldmap/lib/codec"
	"github.com/bureau-foundation/fieldmap/lib/version"
)

// MaxMessageSize bounds one WebSocket message. A put frame is a few
// hundred bytes.
const MaxMessageSize = 1 << 20

// WebSocketSource reads frames from a WebSocket, one CBOR frame per
// binary message. The subscribe handshake is sent as the first binary
// message. Text messages are ignored.
type WebSocketSource struct {
	*stream
}

// NewWebSocketSource starts a source connected to url (ws:// or
// wss://). The background goroutine starts immediately; call Close to
// stop it.
func NewWebSocketSource(url string, options StreamOptions) *WebSocketSource {
	source := &WebSocketSource{}
	source.stream = newStream("websocket", url, func(ctx context.Context) (connection, error) {
		return dialWebSocket(ctx, url)
	}, options)
	source.start()
	return source
}

type webSocketConnection struct {
	conn *websocket.Conn
}

func dialWebSocket(ctx context.Context, url string) (connection, error) {
	header := http.Header{}
	header.Set("User-Agent", version.Client())
	conn, response, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		if response != nil {
			return nil, fmt.Errorf("%w (HTTP %s)", err, response.Status)
		}
		return nil, err
	}
	conn.SetReadLimit(MaxMessageSize)

	request, err := codec.Marshal(subscribeRequest())
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("encoding subscribe request: %w", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, request); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sending subscribe request: %w", err)
	}
	return &webSocketConnection{conn: conn}, nil
}

func (connection *webSocketConnection) ReadFrame() (Frame, error) {
	for {
		messageType, data, err := connection.conn.ReadMessage()
		if err != nil {
			return Frame{}, err
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		return decodeFrame(data)
	}
}

// maxDiagnosticLength bounds the payload excerpt in decode errors.
const maxDiagnosticLength = 120

// decodeFrame decodes one message. Errors carry the payload in CBOR
// diagnostic notation when it is well-formed CBOR of the wrong shape.
func decodeFrame(data []byte) (Frame, error) {
	var frame Frame
	if err := codec.Unmarshal(data, &frame); err != nil {
		diagnostic, diagnoseErr := codec.Diagnose(data)
		if diagnoseErr != nil {
			return Frame{}, fmt.Errorf("decoding frame: %w", err)
		}
		if len(diagnostic) > maxDiagnosticLength {
			diagnostic = diagnostic[:maxDiagnosticLength] + "..."
		}
		return Frame{}, fmt.Errorf("decoding frame %s: %w", diagnostic, err)
	}
	return frame, nil
}

func (connection *webSocketConnection) Close() error {
	return connection.conn.Close()
}
