// Package notify shows delete outcomes to the user.
package notify

// Sink presents messages to the user. Calls are fire-and-forget and
// implementations must be safe for concurrent use.
type Sink interface {
	Success(text string)
	Error(text string)
	Warning(text string)
}

type multi []Sink

// Multi returns a Sink that forwards every notification to each of sinks in order.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) Success(text string) {
	for _, s := range m {
		s.Success(text)
	}
}

func (m multi) Error(text string) {
	for _, s := range m {
		s.Error(text)
	}
}

func (m multi) Warning(text string) {
	for _, s := range m {
		s.Warning(text)
	}
}
