package db

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/distributedio/respd/metrics"
)

// Message is a payload published on a channel
type Message struct {
	Channel string
	Payload []byte
}

// Subscriber receives the messages of the channels it subscribes to.
// A subscriber that does not keep up loses messages instead of blocking publishers.
type Subscriber struct {
	C        chan Message
	channels map[string]struct{} // guarded by the broker
}

// NewSubscriber creates a subscriber buffering up to size messages
func NewSubscriber(size int) *Subscriber {
	if size <= 0 {
		size = 1
	}
	return &Subscriber{
		C:        make(chan Message, size),
		channels: make(map[string]struct{}),
	}
}

// Broker routes published messages to subscribers
type Broker struct {
	mu       sync.RWMutex
	channels map[string]map[*Subscriber]struct{}
}

// NewBroker creates an empty broker
func NewBroker() *Broker {
	return &Broker{channels: make(map[string]map[*Subscriber]struct{})}
}

// Subscribe s to channel and return how many channels s is subscribed to
func (b *Broker) Subscribe(channel string, s *Subscriber) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs, ok := b.channels[channel]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		b.channels[channel] = subs
	}
	subs[s] = struct{}{}
	s.channels[channel] = struct{}{}
	return len(s.channels)
}

// Unsubscribe s from channel and return how many channels s is still subscribed to
func (b *Broker) Unsubscribe(channel string, s *Subscriber) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if subs, ok := b.channels[channel]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(b.channels, channel)
		}
	}
	delete(s.channels, channel)
	return len(s.channels)
}

// Channels returns the channels s is subscribed to, sorted
func (b *Broker) Channels(s *Subscriber) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	chans := make([]string, 0, len(s.channels))
	for ch := range s.channels {
		chans = append(chans, ch)
	}
	sort.Strings(chans)
	return chans
}

// Count returns how many channels s is subscribed to
func (b *Broker) Count(s *Subscriber) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(s.channels)
}

// Publish payload on channel and return the number of subscribers of the channel
func (b *Broker) Publish(channel string, payload []byte) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	subs := b.channels[channel]
	msg := Message{Channel: channel, Payload: payload}
	for s := range subs {
		select {
		case s.C <- msg:
		default:
			metrics.GetMetrics().PubsubDroppedCounter.Inc()
			zap.L().Warn("subscriber lagging, message dropped", zap.String("channel", channel))
		}
	}
	return len(subs)
}
