package dossier

// EventType identifies a GameEvent.
type EventType uint8

const (
	// EventClueMarked fires when a clue first enters the word bank.
	EventClueMarked EventType = iota
	// EventStatusChanged fires when a quiz status pill changes.
	EventStatusChanged
	// EventCompleted fires once, when both quiz channels become correct.
	EventCompleted
)

func (t EventType) String() string {
	switch t {
	case EventClueMarked:
		return "clue-marked"
	case EventStatusChanged:
		return "status-changed"
	case EventCompleted:
		return "completed"
	}
	return "unknown"
}

// Channel names a graded part of the quiz.
type Channel uint8

const (
	ChannelStory Channel = iota
	ChannelPortraits
)

func (c Channel) String() string {
	if c == ChannelStory {
		return "story"
	}
	return "portraits"
}

// GameEvent is a state change reported to a GameStore.
type GameEvent struct {
	Type    EventType
	Clue    *Clue
	Channel Channel
	Status  Status
}

// GameStore receives game state changes. Implementations must not block;
// they are called from the game loop.
type GameStore interface {
	EmitEvent(ev GameEvent)
}

// GameStoreFunc adapts a function to GameStore.
type GameStoreFunc func(ev GameEvent)

// EmitEvent calls f(ev).
func (f GameStoreFunc) EmitEvent(ev GameEvent) { f(ev) }
