package realtime

import (
	"fmt"
	"log/slog"
)

// Outbound pairs a fully built server message with its target room.
type Outbound struct {
	Room string
	Msg  ServerMessage
}

// Emitter is the broadcast primitive. Broadcast enqueues onto the
// dispatch queue consumed by a single Dispatcher worker, so two
// broadcasts to the same room reach every member in submission order.
// Broadcasting to a room with no members is a normal condition, not a
// fault; so is a full queue, where the event is dropped rather than
// blocking the (HTTP mutation) caller.
type Emitter struct {
	log      *slog.Logger
	registry *Registry
	queue    chan<- Outbound
}

func NewEmitter(log *slog.Logger, registry *Registry, queue chan<- Outbound) *Emitter {
	return &Emitter{log: log, registry: registry, queue: queue}
}

func (e *Emitter) Broadcast(room string, event EventName, payload any) {
	if len(e.registry.MembersOf(room)) == 0 {
		e.log.Debug(fmt.Sprintf("no members in room %s, skipping %s", room, event))
		return
	}

	select {
	case e.queue <- Outbound{Room: room, Msg: ServerMessage{Type: event, Data: payload}}:
	default:
		e.log.Warn(fmt.Sprintf("dispatch queue full, dropping %s for room %s", event, room))
	}
}
