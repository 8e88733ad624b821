package realtime

import (
	"encoding/json"
	"log"
)

// DeliveryOutcome classifies one Deliver call.
type DeliveryOutcome string

const (
	DeliverySent          DeliveryOutcome = "sent"
	DeliveryFailed        DeliveryOutcome = "failed"
	DeliveryNoConnections DeliveryOutcome = "no_connections"
)

// Delivery reports how a Deliver call went. Callers are free to discard
// it; live push is best effort and a failed delivery never fails the
// domain action that produced the event.
type Delivery struct {
	Outcome DeliveryOutcome
	Sent    int
	Failed  int
}

// Fanout delivers event payloads to every open connection a recipient
// has on a channel. It provides at-most-once, no-retry semantics;
// durability is the Notification row's job, not ours.
type Fanout struct {
	registry *Registry
}

// NewFanout creates a Fanout reading connection snapshots from registry.
func NewFanout(registry *Registry) *Fanout {
	return &Fanout{registry: registry}
}

// Deliver marshals payload once and attempts to send it to each of the
// recipient's open connections. A per-connection failure is counted and
// logged but never aborts delivery to the rest; a dead connection is
// pruned by its own read loop, not here. Zero open connections is a
// silent no-op.
func (f *Fanout) Deliver(userID uint, channel Channel, payload any) Delivery {
	conns := f.registry.ConnectionsFor(userID, channel)
	if len(conns) == 0 {
		return Delivery{Outcome: DeliveryNoConnections}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("fanout: marshal event for user %d: %v", userID, err)
		return Delivery{Outcome: DeliveryFailed, Failed: len(conns)}
	}

	var d Delivery
	for _, conn := range conns {
		if err := conn.Send(data); err != nil {
			log.Printf("fanout: send to user %d on %s: %v", userID, channel, err)
			d.Failed++
			continue
		}
		d.Sent++
	}
	if d.Sent > 0 {
		d.Outcome = DeliverySent
	} else {
		d.Outcome = DeliveryFailed
	}
	return d
}
