package realtime

import (
	"context"
	"log/slog"
)

// Dispatcher drains the broadcast queue and fans each event out to the
// room's current members.
//
// It provides best-effort fan-out with no guarantees regarding
// durability or retries; members that join after an event was
// dispatched never see it. A single Dispatcher instance consumes the
// queue, which is what preserves per-room emission order for every
// member.
type Dispatcher struct {
	log      *slog.Logger
	registry *Registry
	events   <-chan Outbound
}

func NewDispatcher(log *slog.Logger, registry *Registry, events <-chan Outbound) *Dispatcher {
	return &Dispatcher{log: log, registry: registry, events: events}
}

func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case out := <-d.events:
			d.fanout(out)
		case <-ctx.Done():
			d.log.Debug("Context done, stopping dispatch")
			return nil
		}
	}
}

// fanout delivers to every connection joined at dispatch time, at most
// once each. Emit never blocks, so one slow consumer cannot stall the
// loop.
func (d *Dispatcher) fanout(out Outbound) {
	for _, conn := range d.registry.MembersOf(out.Room) {
		conn.Emit(out.Msg)
	}
}
