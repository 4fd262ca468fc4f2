package driver

// Status is a unit's coarse progress state.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports a unit's state change during a batch run.
type Event struct {
	Path   string
	Status Status
}

// ProgressSink receives events as the batch progresses. Emit may be called
// from several analysis goroutines at once.
type ProgressSink interface {
	Emit(Event)
}

// ChannelSink forwards events into a channel, dropping when full so a slow
// consumer never stalls analysis.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) Emit(ev Event) {
	select {
	case s.Ch <- ev:
	default:
	}
}
