// Package ecs mirrors dossier game events into a [Donburi] world.
//
// [NewDonburiStore] returns a dossier.GameStore. Every event is published to
// [GameEventType]; marked clues also become entities carrying [ClueInfo],
// and a single progress entity tracks the quiz status in [Progress].
//
// Usage:
//
//	world := donburi.NewWorld()
//	store := ecs.NewDonburiStore(world)
//	engine, err := dossier.NewEngine(dossier.Config{Store: store, ...})
//
// Events are queued; call GameEventType.ProcessEvents(world) from a system
// to deliver them.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
