// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/bureau-foundation/fieldmap/lib/codec"
)

// Compression is the container format of a recording file.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// CompressionFor picks a recording's compression from its file
// extension: .zst and .zstd for zstd, .lz4 for LZ4, anything else is
// a plain CBOR sequence.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Recorder appends frames to a recording file. It is not safe for
// concurrent use.
type Recorder struct {
	path    string
	file    *os.File
	writer  io.WriteCloser
	encoder *codec.Encoder
	count   int
	closed  bool
}

// bufferedWriter gives a bufio.Writer the Close of the other
// compressors.
type bufferedWriter struct {
	*bufio.Writer
}

func (writer bufferedWriter) Close() error {
	return writer.Flush()
}

// NewRecorder creates (or truncates) the recording at path.
func NewRecorder(path string) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating recording: %w", err)
	}

	var writer io.WriteCloser
	switch CompressionFor(path) {
	case CompressionZstd:
		writer, err = zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("creating zstd writer: %w", err)
		}
	case CompressionLZ4:
		writer = lz4.NewWriter(file)
	default:
		writer = bufferedWriter{bufio.NewWriter(file)}
	}

	return &Recorder{
		path:    path,
		file:    file,
		writer:  writer,
		encoder: codec.NewEncoder(writer),
	}, nil
}

// Record appends one frame. Heartbeats are not recorded.
func (recorder *Recorder) Record(frame Frame) error {
	if recorder.closed {
		return fmt.Errorf("recording %s is closed", recorder.path)
	}
	if frame.Type == TypeHeartbeat {
		return nil
	}
	if err := recorder.encoder.Encode(frame); err != nil {
		return fmt.Errorf("recording frame: %w", err)
	}
	recorder.count++
	return nil
}

// Count returns the number of frames recorded.
func (recorder *Recorder) Count() int {
	return recorder.count
}

// Close flushes the compressor and closes the file. Calling it again
// does nothing.
func (recorder *Recorder) Close() error {
	if recorder.closed {
		return nil
	}
	recorder.closed = true
	return errors.Join(recorder.writer.Close(), recorder.file.Close())
}

// WriteRecording writes frames to a new recording at path.
func WriteRecording(path string, frames []Frame) error {
	recorder, err := NewRecorder(path)
	if err != nil {
		return err
	}
	for _, frame := range frames {
		if err := recorder.Record(frame); err != nil {
			recorder.Close()
			return err
		}
	}
	return recorder.Close()
}

// OpenRecording reads every frame of the recording at path.
func OpenRecording(path string) ([]Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	defer file.Close()

	var reader io.Reader
	switch CompressionFor(path) {
	case CompressionZstd:
		decoder, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		defer decoder.Close()
		reader = decoder
	case CompressionLZ4:
		reader = lz4.NewReader(file)
	default:
		reader = bufio.NewReader(file)
	}

	decoder := codec.NewDecoder(reader)
	var frames []Frame
	for {
		var frame Frame
		err := decoder.Decode(&frame)
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("reading %s frame %d: %w", path, len(frames), err)
		}
		frames = append(frames, frame)
	}
}
