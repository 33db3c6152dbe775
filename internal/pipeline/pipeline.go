// Package pipeline defines the progress vocabulary shared by the generation
// driver and the terminal UI.
package pipeline

import "time"

// Stage describes a high-level generation phase.
type Stage string

const (
	// StageLoad is the XML loading and parsing stage.
	StageLoad Stage = "load"
	// StageRender is the MOSDL rendering stage.
	StageRender Stage = "render"
	// StageWrite is the output writing stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the input is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the input is currently being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the input is done.
	StatusDone Status = "done"
	// StatusError indicates the input failed.
	StatusError Status = "error"
)

// Event reports progress for an input file (or for the whole run when File
// is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}
