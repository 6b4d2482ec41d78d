package ecs

import (
	"github.com/phanxgames/dossier"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// GameEventType is the Donburi event type carrying every dossier event.
var GameEventType = events.NewEventType[dossier.GameEvent]()

// ClueInfo describes a clue the player has marked.
type ClueInfo struct {
	Text  string
	Type  dossier.ClueType
	Order int
}

// ProgressInfo is the quiz state as last reported.
type ProgressInfo struct {
	Story     dossier.Status
	Portraits dossier.Status
	Completed bool
}

var (
	// Clue is attached to one entity per marked clue.
	Clue = donburi.NewComponentType[ClueInfo]()
	// Progress is attached to the single progress entity.
	Progress = donburi.NewComponentType[ProgressInfo](ProgressInfo{
		Story:     dossier.StatusCorrect,
		Portraits: dossier.StatusCorrect,
	})
)

type donburiStore struct {
	world    donburi.World
	progress donburi.Entity
	marked   int
}

// NewDonburiStore creates a GameStore backed by a Donburi world.
func NewDonburiStore(world donburi.World) dossier.GameStore {
	return &donburiStore{
		world:    world,
		progress: world.Create(Progress),
	}
}

func (s *donburiStore) EmitEvent(ev dossier.GameEvent) {
	switch ev.Type {
	case dossier.EventClueMarked:
		if ev.Clue != nil {
			e := s.world.Entry(s.world.Create(Clue))
			Clue.SetValue(e, ClueInfo{Text: ev.Clue.Text, Type: ev.Clue.Type, Order: s.marked})
			s.marked++
		}
	case dossier.EventStatusChanged:
		p := Progress.Get(s.world.Entry(s.progress))
		if ev.Channel == dossier.ChannelStory {
			p.Story = ev.Status
		} else {
			p.Portraits = ev.Status
		}
	case dossier.EventCompleted:
		Progress.Get(s.world.Entry(s.progress)).Completed = true
	}
	GameEventType.Publish(s.world, ev)
}

// CurrentProgress returns the progress recorded in world by a store.
func CurrentProgress(world donburi.World) (ProgressInfo, bool) {
	e, ok := Progress.First(world)
	if !ok {
		return ProgressInfo{}, false
	}
	return *Progress.Get(e), true
}

// MarkedClues returns the marked clues in discovery order.
func MarkedClues(world donburi.World) []ClueInfo {
	out := make([]ClueInfo, donburi.NewQuery(filter.Contains(Clue)).Count(world))
	Clue.Each(world, func(e *donburi.Entry) {
		info := Clue.Get(e)
		if info.Order < len(out) {
			out[info.Order] = *info
		}
	})
	return out
}
