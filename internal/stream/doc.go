// Package stream publishes a running model to WebSocket clients.
//
// A [Broadcaster] is both a sim.Notifier, forwarding temperature,
// pressure, explosion and species events, and a sim.Observer, sending a
// frame with every atom position at a fixed tick interval. Publishing
// never blocks the model: when the queue is full the event is dropped.
package stream
