// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/fieldmap/lib/field"
)

// FrameType identifies what a frame carries.
type FrameType string

const (
	TypePutAgent        FrameType = "put_agent"
	TypeRemoveAgent     FrameType = "remove_agent"
	TypePutStructure    FrameType = "put_structure"
	TypeRemoveStructure FrameType = "remove_structure"
	TypePutArea         FrameType = "put_area"
	TypeRemoveArea      FrameType = "remove_area"
	TypeSelectAgents    FrameType = "select_agents"
	TypeSelectStructure FrameType = "select_structure"

	// TypeReset clears the store. The frames that follow rebuild it.
	TypeReset FrameType = "reset"

	// TypeCaughtUp marks the end of the initial snapshot.
	TypeCaughtUp FrameType = "caught_up"

	// TypeHeartbeat keeps an idle connection alive. Sources drop
	// heartbeats rather than deliver them.
	TypeHeartbeat FrameType = "heartbeat"

	// TypeError carries a server-side failure in Message. Sources end
	// the connection when they receive one.
	TypeError FrameType = "error"
)

// ErrUnknownFrame is returned by Apply for frame types this version
// does not understand. Callers log and skip such frames so newer
// servers can add types.
var ErrUnknownFrame = errors.New("unknown frame type")

// ErrServer wraps the message of an error frame.
var ErrServer = errors.New("feed server error")

// Frame is one feed update. Which payload field is set depends on
// Type; ID names the target of removes and of select_structure.
type Frame struct {
	Type      FrameType         `json:"type"`
	ID        string            `json:"id,omitempty"`
	Agent     *field.Agent      `json:"agent,omitempty"`
	Structure *field.Structure  `json:"structure,omitempty"`
	Area      *field.AreaRecord `json:"area,omitempty"`
	AgentIDs  []string          `json:"agent_ids,omitempty"`
	Message   string            `json:"message,omitempty"`
}

// Control reports whether the frame is a stream control frame rather
// than a change to the field.
func (frame Frame) Control() bool {
	switch frame.Type {
	case TypeCaughtUp, TypeHeartbeat, TypeError:
		return true
	}
	return false
}

// String renders a frame for logs.
func (frame Frame) String() string {
	if frame.ID == "" {
		return string(frame.Type)
	}
	return fmt.Sprintf("%s %s", frame.Type, frame.ID)
}

// PutAgent returns a put_agent frame.
func PutAgent(agent field.Agent) Frame {
	return Frame{Type: TypePutAgent, ID: agent.ID, Agent: &agent}
}

// PutStructure returns a put_structure frame.
func PutStructure(structure field.Structure) Frame {
	return Frame{Type: TypePutStructure, ID: structure.ID, Structure: &structure}
}

// PutArea returns a put_area frame.
func PutArea(area field.Area) Frame {
	record := area.Record()
	return Frame{Type: TypePutArea, ID: area.ID, Area: &record}
}

// Remove returns the remove frame of the given type for id.
func Remove(frameType FrameType, id string) Frame {
	return Frame{Type: frameType, ID: id}
}
