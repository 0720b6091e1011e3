// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package scene ties the field's interactive pieces together: the
// callback router, the area engine and the store sync hooks.
//
// A Scene has three explicit phases. [New] builds the router, so the
// application can register handlers before anything is drawn.
// [Scene.Attach] connects the scene to a store and a renderer, builds
// the area engine, subscribes the sync hooks and runs the first sync.
// [Scene.Dispose] unsubscribes and disposes every visual; it may be
// called more than once. There is no package-level scene: everything
// a Scene uses is passed in.
//
// Pointer input arrives in world coordinates through
// [Scene.PointerDown], [Scene.PointerMove] and [Scene.PointerUp]. A
// press is routed to the first of these that applies:
//
//  1. the active drawing tool starts a draw gesture
//  2. a resize handle of the selected area starts a resize
//  3. an area selects it and starts a move
//  4. a structure fires [callback.BuildingClick]
//  5. otherwise the selection is cleared and
//     [callback.GroundClick] fires
//
// Moves without a gesture track hover over agents and structures and
// fire enter and leave events once per transition.
package scene
