// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/fieldmap/lib/areaengine"
	"github.com/bureau-foundation/fieldmap/lib/callback"
	"github.com/bureau-foundation/fieldmap/lib/clock"
	"github.com/bureau-foundation/fieldmap/lib/feed"
	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/fieldcanvas"
	"github.com/bureau-foundation/fieldmap/lib/fieldstore"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
	"github.com/bureau-foundation/fieldmap/lib/scene"
	"github.com/bureau-foundation/fieldmap/lib/scenesync"
	"github.com/bureau-foundation/fieldmap/lib/snapshot"
	"github.com/bureau-foundation/fieldmap/lib/tui"
)

const (
	// doubleClickThreshold is the longest interval between two presses
	// on the same cell that counts as a double click.
	doubleClickThreshold = 400 * time.Millisecond

	// brightnessStep is the change per [ or ] press.
	brightnessStep = 0.1

	// zoomStep is the scale factor per + press; - divides by it.
	zoomStep = 1.25

	// statusBarHeight is the number of rows below the canvas.
	statusBarHeight = 1
)

// frameMsg delivers one feed frame to the UI loop.
type frameMsg struct {
	frame feed.Frame
}

// feedClosedMsg is sent once the feed's frame channel closes.
type feedClosedMsg struct{}

// stater is implemented by feed sources that report connection state.
type stater interface {
	State() string
}

// Options configures a [Model]. Store is required.
type Options struct {
	Store *fieldstore.Store

	// Source delivers frames to apply to Store. Nil means the field
	// is only edited locally.
	Source feed.Source

	// Recorder, if set, receives every frame from Source.
	Recorder *feed.Recorder

	// SavePath is where ctrl+s writes a snapshot of the field. Empty
	// disables saving.
	SavePath string

	Theme  tui.Theme
	Keys   *KeyMap
	Clock  clock.Clock
	Logger *slog.Logger

	// Scale is the initial number of columns per world unit.
	Scale float64

	// Brightness, Palette and NamePrefix configure the area engine.
	Brightness float64
	Palette    []string
	NamePrefix string

	// FlashDuration is how long new areas pulse.
	FlashDuration time.Duration

	Metrics *scenesync.Metrics
}

// Model is the top-level bubbletea model for the field view.
type Model struct {
	store    *fieldstore.Store
	scene    *scene.Scene
	canvas   *fieldcanvas.Canvas
	source   feed.Source
	frames   <-chan feed.Frame
	recorder *feed.Recorder
	savePath string

	theme  tui.Theme
	keys   KeyMap
	clock  clock.Clock
	logger *slog.Logger
	queue  *scheduleQueue

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// archived is the stack of areas archived with the Archive key,
	// most recent last.
	archived []string

	// Double-click tracking.
	lastPress      time.Time
	lastPressX     int
	lastPressY     int
	lastPressValid bool

	rightPressed bool

	// Pointer cell of the last motion event, for the hover tooltip.
	pointerX     int
	pointerY     int
	pointerValid bool

	menu *contextMenu

	feedClosed bool

	logRecord   *logRecordMsg
	logSequence uint64
}

// NewModel builds the scene, attaches it to the store and a terminal
// canvas, and registers the selection handlers.
func NewModel(options Options) (Model, error) {
	if options.Store == nil {
		return Model{}, errors.New("fieldui: store is required")
	}
	model := Model{
		store:    options.Store,
		source:   options.Source,
		recorder: options.Recorder,
		savePath: options.SavePath,
		theme:    options.Theme,
		keys:     DefaultKeyMap,
		clock:    options.Clock,
		logger:   options.Logger,
	}
	if options.Keys != nil {
		model.keys = *options.Keys
	}
	if model.theme == (tui.Theme{}) {
		model.theme = tui.DefaultTheme
	}
	if model.clock == nil {
		model.clock = clock.Real()
	}
	if model.logger == nil {
		model.logger = slog.New(slog.DiscardHandler)
	}
	if model.source != nil {
		model.frames = model.source.Frames()
	}
	model.queue = &scheduleQueue{clock: model.clock}
	logger := model.logger

	model.canvas = fieldcanvas.New(model.theme, fieldcanvas.NewViewport(0, 0, options.Scale))
	model.scene = scene.New(scene.Options{
		Logger:    model.logger,
		Clock:     model.clock,
		Metrics:   options.Metrics,
		Scheduler: model.queue.schedule,
		Engine: areaengine.Options{
			Palette:    options.Palette,
			NamePrefix: options.NamePrefix,
			Brightness: options.Brightness,
		},
		FlashDuration: options.FlashDuration,
		OnAreaCreated: func(area field.Area) {
			logger.Info("area created", "id", area.ID, "name", area.Name)
		},
	})
	model.registerHandlers()

	sinks := scene.Sinks{
		Agents:     model.canvas,
		Structures: model.canvas,
		Picker:     model.canvas,
		Pulses:     model.canvas,
	}
	if err := model.scene.Attach(model.store, model.canvas, sinks); err != nil {
		return Model{}, err
	}
	model.scene.SetHandleTolerance(model.canvas.HandleTolerance())
	return model, nil
}

// registerHandlers wires clicks to the store's selection: a building
// click selects the structure, a ground click selects the agent under
// the pointer or clears the selection.
func (model *Model) registerHandlers() {
	store := model.store
	canvas := model.canvas
	router := model.scene.Router()
	router.Set(callback.BuildingClick, func(event callback.Event) {
		store.Batch(func() {
			store.SelectAgents(nil)
			store.SelectStructure(event.TargetID)
		})
	})
	router.Set(callback.GroundClick, func(event callback.Event) {
		store.Batch(func() {
			store.SelectStructure("")
			if agentID, found := canvas.HitAgent(event.ScreenX, event.ScreenY); found {
				store.SelectAgents([]string{agentID})
				return
			}
			store.SelectAgents(nil)
		})
	})
}

// Router returns the scene's callback router, for registering
// handlers beyond the built-in selection ones.
func (model Model) Router() *callback.Router {
	return model.scene.Router()
}

// Init implements tea.Model. Starts listening for feed frames.
func (model Model) Init() tea.Cmd {
	if model.frames == nil {
		return nil
	}
	return listenForFrame(model.frames)
}

// listenForFrame blocks until a frame arrives and delivers it as a
// frameMsg.
func listenForFrame(frames <-chan feed.Frame) tea.Cmd {
	return func() tea.Msg {
		frame, ok := <-frames
		if !ok {
			return feedClosedMsg{}
		}
		return frameMsg{frame: frame}
	}
}

// Update implements tea.Model. Calls deferred by the scene during the
// update leave as commands alongside whatever the message produced.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	command := model.update(message)
	if scheduled := model.queue.commands(); len(scheduled) > 0 {
		command = tea.Batch(append(scheduled, command)...)
	}
	return model, command
}

func (model *Model) update(message tea.Msg) tea.Cmd {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.MouseMsg:
		model.handleMouse(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.canvas.Viewport().Resize(message.Width, max(message.Height-statusBarHeight, 0))
		model.scene.SetHandleTolerance(model.canvas.HandleTolerance())

	case frameMsg:
		model.applyFrame(message.frame)
		return listenForFrame(model.frames)

	case feedClosedMsg:
		model.feedClosed = true
		model.logger.Info("feed closed")

	case scheduledMsg:
		message.fn()

	case logRecordMsg:
		model.logSequence++
		model.logRecord = &message
		sequence := model.logSequence
		return tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{sequence: sequence}
		})

	case logRecordFadeMsg:
		if message.sequence == model.logSequence {
			model.logRecord = nil
		}
	}
	return nil
}

func (model *Model) applyFrame(frame feed.Frame) {
	if model.recorder != nil {
		if err := model.recorder.Record(frame); err != nil {
			model.logger.Error("recording frame", "frame", frame.String(), "error", err)
		}
	}
	err := feed.Apply(model.store, frame)
	switch {
	case err == nil:
	case errors.Is(err, feed.ErrUnknownFrame):
		model.logger.Debug("ignoring frame", "frame", frame.String())
	default:
		model.logger.Warn("applying frame", "frame", frame.String(), "error", err)
	}
}

func (model *Model) handleKey(message tea.KeyMsg) tea.Cmd {
	engine := model.scene.Engine()
	menuOpen := model.menu != nil
	model.menu = nil

	switch {
	case key.Matches(message, model.keys.Quit):
		return tea.Quit

	case key.Matches(message, model.keys.Cancel):
		switch {
		case model.scene.Gesturing():
			model.scene.CancelGesture()
		case menuOpen:
			// Closing the menu is all esc does here.
		default:
			engine.SetDrawingTool("")
		}

	case key.Matches(message, model.keys.Rectangle):
		engine.SetDrawingTool(geometry.KindRectangle)

	case key.Matches(message, model.keys.Circle):
		engine.SetDrawingTool(geometry.KindCircle)

	case key.Matches(message, model.keys.Dimmer):
		engine.SetBrightness(engine.Brightness() - brightnessStep)

	case key.Matches(message, model.keys.Brighter):
		engine.SetBrightness(engine.Brightness() + brightnessStep)

	case key.Matches(message, model.keys.Archive):
		if areaID := engine.SelectedAreaID(); areaID != "" && model.store.ArchiveArea(areaID) {
			model.archived = append(model.archived, areaID)
		}

	case key.Matches(message, model.keys.Restore):
		model.restoreArchived()

	case key.Matches(message, model.keys.Remove):
		if areaID := engine.SelectedAreaID(); areaID != "" {
			model.store.RemoveArea(areaID)
		}

	case key.Matches(message, model.keys.Raise):
		if areaID := engine.SelectedAreaID(); areaID != "" {
			model.store.RaiseArea(areaID)
		}

	case key.Matches(message, model.keys.PanUp):
		model.canvas.Viewport().Pan(0, -1)

	case key.Matches(message, model.keys.PanDown):
		model.canvas.Viewport().Pan(0, 1)

	case key.Matches(message, model.keys.PanLeft):
		model.canvas.Viewport().Pan(-1, 0)

	case key.Matches(message, model.keys.PanRight):
		model.canvas.Viewport().Pan(1, 0)

	case key.Matches(message, model.keys.ZoomIn):
		model.zoom(zoomStep)

	case key.Matches(message, model.keys.ZoomOut):
		model.zoom(1 / zoomStep)

	case key.Matches(message, model.keys.Save):
		model.save()
	}
	return nil
}

// restoreArchived restores the most recent archived area that is still
// archived. Entries removed or restored by the feed meanwhile are
// skipped.
func (model *Model) restoreArchived() {
	for len(model.archived) > 0 {
		last := len(model.archived) - 1
		areaID := model.archived[last]
		model.archived = model.archived[:last]
		if model.store.RestoreArea(areaID) {
			model.scene.Engine().HighlightArea(areaID)
			return
		}
	}
}

func (model *Model) zoom(factor float64) {
	model.canvas.Viewport().Zoom(factor)
	model.scene.SetHandleTolerance(model.canvas.HandleTolerance())
}

func (model *Model) save() {
	if model.savePath == "" {
		model.logger.Warn("nothing to save to: start with --file")
		return
	}
	if err := snapshot.Save(model.savePath, snapshot.FromState(model.store.State())); err != nil {
		model.logger.Error("saving field", "path", model.savePath, "error", err)
		return
	}
	model.logger.Info("field saved", "path", model.savePath)
}

// pointAt converts a screen cell to a scene point.
func (model *Model) pointAt(x, y int) scene.Point {
	return scene.Point{World: model.canvas.Viewport().CellToWorld(x, y), X: x, Y: y}
}

// handleMouse routes mouse events to the scene. Events over the status
// bar are ignored unless they end a gesture that began on the canvas.
func (model *Model) handleMouse(message tea.MouseMsg) {
	viewport := model.canvas.Viewport()
	onCanvas := viewport.InBounds(message.X, message.Y)
	point := model.pointAt(message.X, message.Y)

	switch message.Action {
	case tea.MouseActionMotion:
		model.pointerX, model.pointerY = message.X, message.Y
		model.pointerValid = onCanvas
		if onCanvas || model.scene.Gesturing() {
			model.scene.PointerMove(point)
		}

	case tea.MouseActionPress:
		if !onCanvas {
			return
		}
		model.menu = nil
		switch message.Button {
		case tea.MouseButtonLeft:
			model.scene.PointerDown(point)
			model.detectDoubleClick(point)
		case tea.MouseButtonRight:
			model.rightPressed = true
		case tea.MouseButtonWheelUp:
			model.zoom(zoomStep)
		case tea.MouseButtonWheelDown:
			model.zoom(1 / zoomStep)
		}

	case tea.MouseActionRelease:
		if model.rightPressed || message.Button == tea.MouseButtonRight {
			model.rightPressed = false
			if onCanvas {
				model.openContextMenu(point)
			}
			return
		}
		if model.scene.Gesturing() {
			model.scene.PointerUp(point)
		}
	}
}

// detectDoubleClick fires DoubleClick when this press follows another
// on the same cell within the threshold. A double click consumes both
// presses, so a third press starts over.
func (model *Model) detectDoubleClick(point scene.Point) {
	now := model.clock.Now()
	if model.lastPressValid &&
		model.lastPressX == point.X && model.lastPressY == point.Y &&
		now.Sub(model.lastPress) <= doubleClickThreshold {
		model.lastPressValid = false
		model.scene.DoubleClick(point)
		return
	}
	model.lastPress = now
	model.lastPressX, model.lastPressY = point.X, point.Y
	model.lastPressValid = true
}

func (model *Model) openContextMenu(point scene.Point) {
	model.scene.ContextMenu(point)
	event, ok := model.scene.LastEvent()
	if !ok || event.Kind != callback.ContextMenu {
		return
	}
	model.menu = &contextMenu{
		lines:   contextMenuLines(model.store.State(), event),
		anchorX: point.X,
		anchorY: point.Y,
	}
}

// Close disposes the scene and closes the feed and the recorder.
func (model Model) Close() error {
	model.scene.Dispose()
	var errs []error
	if model.source != nil {
		errs = append(errs, model.source.Close())
	}
	if model.recorder != nil {
		errs = append(errs, model.recorder.Close())
	}
	return errors.Join(errs...)
}
