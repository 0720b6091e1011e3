// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/fieldmap/lib/field"
)

// Store is the mutation surface Apply needs.
type Store interface {
	AddArea(area field.Area)
	RemoveArea(areaID string) bool
	PutAgent(agent field.Agent)
	RemoveAgent(agentID string) bool
	PutStructure(structure field.Structure)
	RemoveStructure(structureID string) bool
	SelectAgents(agentIDs []string)
	SelectStructure(structureID string)
	Reset()
	Batch(fn func())
}

// errMissingPayload is returned for put frames without their payload.
var errMissingPayload = errors.New("frame has no payload")

// Apply applies one frame to store. Control frames are accepted and do
// nothing. A put frame whose payload has no ID takes the frame's ID.
func Apply(store Store, frame Frame) error {
	switch frame.Type {
	case TypePutAgent:
		if frame.Agent == nil {
			return fmt.Errorf("%s: %w", frame, errMissingPayload)
		}
		agent := *frame.Agent
		if agent.ID == "" {
			agent.ID = frame.ID
		}
		store.PutAgent(agent)
	case TypeRemoveAgent:
		store.RemoveAgent(frame.ID)
	case TypePutStructure:
		if frame.Structure == nil {
			return fmt.Errorf("%s: %w", frame, errMissingPayload)
		}
		structure := *frame.Structure
		if structure.ID == "" {
			structure.ID = frame.ID
		}
		store.PutStructure(structure)
	case TypeRemoveStructure:
		store.RemoveStructure(frame.ID)
	case TypePutArea:
		if frame.Area == nil {
			return fmt.Errorf("%s: %w", frame, errMissingPayload)
		}
		record := *frame.Area
		if record.ID == "" {
			record.ID = frame.ID
		}
		area, err := field.AreaFromRecord(record)
		if err != nil {
			return err
		}
		store.AddArea(area)
	case TypeRemoveArea:
		store.RemoveArea(frame.ID)
	case TypeSelectAgents:
		store.SelectAgents(frame.AgentIDs)
	case TypeSelectStructure:
		store.SelectStructure(frame.ID)
	case TypeReset:
		store.Reset()
	case TypeCaughtUp, TypeHeartbeat, TypeError:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFrame, frame.Type)
	}
	return nil
}

// ApplyAll applies frames inside one store batch, so listeners see a
// single notification. Every frame is attempted; the errors of frames
// that failed are joined.
func ApplyAll(store Store, frames []Frame) error {
	var errs []error
	store.Batch(func() {
		for _, frame := range frames {
			if err := Apply(store, frame); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}
