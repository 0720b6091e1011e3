// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bureau-foundation/fieldmap/lib/clock"
)

// Source produces feed frames. Frames is closed once the source has
// stopped; Close stops it and is safe to call more than once.
type Source interface {
	Frames() <-chan Frame
	Close() error
}

// Connection states reported by the live sources.
const (
	StateConnecting = "connecting"
	StateLoading    = "loading"
	StateCaughtUp   = "caught_up"
	StateClosed     = "closed"
)

// Defaults for [StreamOptions].
const (
	DefaultInitialBackoff = 1 * time.Second
	DefaultMaxBackoff     = 30 * time.Second
	DefaultDialTimeout    = 5 * time.Second
	DefaultBuffer         = 256
)

// StreamOptions configures a live source.
type StreamOptions struct {
	Clock  clock.Clock
	Logger *slog.Logger

	// InitialBackoff is the wait after the first failed connection;
	// it doubles on each further failure up to MaxBackoff and resets
	// once a connection completes its handshake.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	DialTimeout time.Duration

	// Buffer is the capacity of the Frames channel.
	Buffer int
}

func (options StreamOptions) withDefaults() StreamOptions {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if options.InitialBackoff <= 0 {
		options.InitialBackoff = DefaultInitialBackoff
	}
	if options.MaxBackoff < options.InitialBackoff {
		options.MaxBackoff = max(DefaultMaxBackoff, options.InitialBackoff)
	}
	if options.DialTimeout <= 0 {
		options.DialTimeout = DefaultDialTimeout
	}
	if options.Buffer <= 0 {
		options.Buffer = DefaultBuffer
	}
	return options
}

// connection is one established, handshaken feed connection.
type connection interface {
	ReadFrame() (Frame, error)
	Close() error
}

type dialFunc func(ctx context.Context) (connection, error)

// stream runs the connect, read, back off loop shared by the live
// sources.
type stream struct {
	transport string
	address   string
	dial      dialFunc
	options   StreamOptions
	logger    *slog.Logger

	frames chan Frame
	state  atomic.Value // string

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

func newStream(transport, address string, dial dialFunc, options StreamOptions) *stream {
	options = options.withDefaults()
	s := &stream{
		transport: transport,
		address:   address,
		dial:      dial,
		options:   options,
		logger:    options.Logger.With("transport", transport, "address", address),
		frames:    make(chan Frame, options.Buffer),
		done:      make(chan struct{}),
	}
	s.state.Store(StateConnecting)
	return s
}

func (s *stream) start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.loop(ctx)
}

// Frames returns the channel frames are delivered on.
func (s *stream) Frames() <-chan Frame {
	return s.frames
}

// State returns the connection phase: connecting, loading, caught_up
// or closed.
func (s *stream) State() string {
	return s.state.Load().(string)
}

// Close stops the background goroutine and waits for it to exit.
func (s *stream) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
	})
	return nil
}

func (s *stream) loop(ctx context.Context) {
	defer close(s.done)
	defer close(s.frames)
	defer s.state.Store(StateClosed)

	backoff := s.options.InitialBackoff
	for {
		s.state.Store(StateConnecting)
		handshaken, err := s.run(ctx)
		if ctx.Err() != nil {
			return
		}
		if handshaken {
			backoff = s.options.InitialBackoff
		}
		s.state.Store(StateConnecting)
		s.logger.Warn("feed disconnected", "error", err, "backoff", backoff)

		select {
		case <-ctx.Done():
			return
		case <-s.options.Clock.After(backoff):
		}
		backoff = min(backoff*2, s.options.MaxBackoff)
	}
}

// run holds one connection until it fails. handshaken reports whether
// the connection got as far as reading frames.
func (s *stream) run(ctx context.Context) (handshaken bool, err error) {
	dialContext, cancelDial := context.WithTimeout(ctx, s.options.DialTimeout)
	conn, err := s.dial(dialContext)
	cancelDial()
	if err != nil {
		return false, fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close()

	// Closing the connection unblocks ReadFrame.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	s.state.Store(StateLoading)
	s.logger.Info("feed connected")
	if !s.deliver(ctx, Frame{Type: TypeReset}) {
		return true, ctx.Err()
	}

	for {
		frame, err := conn.ReadFrame()
		if err != nil {
			return true, fmt.Errorf("reading frame: %w", err)
		}
		switch frame.Type {
		case TypeHeartbeat:
			continue
		case TypeCaughtUp:
			s.state.Store(StateCaughtUp)
			s.logger.Info("feed caught up")
		case TypeReset:
			s.state.Store(StateLoading)
		case TypeError:
			return true, fmt.Errorf("%w: %s", ErrServer, frame.Message)
		}
		if !s.deliver(ctx, frame) {
			return true, ctx.Err()
		}
	}
}

func (s *stream) deliver(ctx context.Context, frame Frame) bool {
	select {
	case s.frames <- frame:
		return true
	case <-ctx.Done():
		return false
	}
}
