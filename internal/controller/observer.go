package controller

import "log/slog"

// Observer receives render passes and state transitions. It has no effect
// on controller behaviour.
type Observer interface {
	OnRender(v View)
	OnStateChange(from, to State)
}

// NoOpObserver discards everything
type NoOpObserver struct{}

func (NoOpObserver) OnRender(View)              {}
func (NoOpObserver) OnStateChange(State, State) {}

// LogObserver writes render passes at debug level and transitions at info
type LogObserver struct {
	Logger *slog.Logger
}

// NewLogObserver creates an observer that logs through logger
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{Logger: logger}
}

func (o *LogObserver) OnRender(v View) {
	o.Logger.Debug("render", "state", v.State.String(), "shown", len(v.Restaurants), "total", v.Total)
}

func (o *LogObserver) OnStateChange(from, to State) {
	o.Logger.Info("view state changed", "from", from.String(), "to", to.String())
}

// MultiObserver fans out to several observers in order
type MultiObserver []Observer

func (m MultiObserver) OnRender(v View) {
	for _, o := range m {
		o.OnRender(v)
	}
}

func (m MultiObserver) OnStateChange(from, to State) {
	for _, o := range m {
		o.OnStateChange(from, to)
	}
}
