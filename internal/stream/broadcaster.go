package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/san-kum/statesim/internal/dynamo"
	"github.com/san-kum/statesim/internal/logging"
	"github.com/san-kum/statesim/internal/sim"
)

const (
	queueSize    = 256
	writeTimeout = 10 * time.Second
)

// Broadcaster fans events out to every connected WebSocket client.
type Broadcaster struct {
	logger     logging.Logger
	frameEvery int

	mu         sync.RWMutex
	clients    map[*websocket.Conn]bool
	upgrader   websocket.Upgrader
	broadcast  chan Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewBroadcaster sends a frame every frameEvery ticks; zero or less
// disables frames.
func NewBroadcaster(frameEvery int, logger logging.Logger) *Broadcaster {
	if logger == nil {
		logger = logging.Discard()
	}
	b := &Broadcaster{
		logger:     logger,
		frameEvery: frameEvery,
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Event, queueSize),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	b.wg.Add(1)
	go b.run()

	return b
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects. Incoming messages are discarded.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warnf("websocket upgrade: %v", err)
		return
	}

	select {
	case b.register <- conn:
	case <-b.done:
		conn.Close()
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case b.unregister <- conn:
	case <-b.done:
	}
}

func (b *Broadcaster) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Publish queues e for every client and reports whether it was accepted.
func (b *Broadcaster) Publish(e Event) bool {
	select {
	case <-b.done:
		return false
	default:
	}

	select {
	case b.broadcast <- e:
		return true
	default:
		b.logger.Debugf("stream queue full, dropping %s event", e.Type)
		return false
	}
}

func (b *Broadcaster) TemperatureChanged(setPoint float64) {
	b.Publish(Event{Type: EventTemperature, Value: setPoint})
}

func (b *Broadcaster) PressureChanged(atm float64) {
	b.Publish(Event{Type: EventPressure, Value: atm})
}

func (b *Broadcaster) ContainerExploded() {
	b.Publish(Event{Type: EventExploded})
}

func (b *Broadcaster) SpeciesChanged(species dynamo.Species) {
	b.Publish(Event{Type: EventSpecies, Species: species.String()})
}

func (b *Broadcaster) OnStep(s sim.Snapshot) {
	if b.frameEvery <= 0 || s.Tick%b.frameEvery != 0 {
		return
	}
	b.Publish(Event{Type: EventFrame, Frame: NewFrame(s)})
}

func (b *Broadcaster) run() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			return

		case conn := <-b.register:
			b.mu.Lock()
			b.clients[conn] = true
			b.mu.Unlock()
			b.logger.Debugf("stream client %s connected", conn.RemoteAddr())

		case conn := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[conn]; ok {
				delete(b.clients, conn)
				conn.Close()
			}
			b.mu.Unlock()

		case event := <-b.broadcast:
			data, err := event.JSON()
			if err != nil {
				b.logger.Errorf("encode %s event: %v", event.Type, err)
				continue
			}
			b.send(data)
		}
	}
}

func (b *Broadcaster) send(data []byte) {
	// Snapshot the clients so no lock is held while writing.
	b.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(b.clients))
	for conn := range b.clients {
		conns = append(conns, conn)
	}
	b.mu.RUnlock()

	var failed []*websocket.Conn
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			failed = append(failed, conn)
			conn.Close()
		}
	}

	if len(failed) > 0 {
		b.mu.Lock()
		for _, conn := range failed {
			delete(b.clients, conn)
		}
		b.mu.Unlock()
	}
}

// Close disconnects every client and stops the broadcaster. It is safe to
// call more than once.
func (b *Broadcaster) Close() error {
	b.closeOnce.Do(func() {
		close(b.done)
		b.wg.Wait()

		b.mu.Lock()
		for conn := range b.clients {
			conn.Close()
			delete(b.clients, conn)
		}
		b.mu.Unlock()
	})
	return nil
}
