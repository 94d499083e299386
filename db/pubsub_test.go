package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrokerPublish(t *testing.T) {
	assert := assert.New(t)
	b := NewBroker()
	s1 := NewSubscriber(4)
	s2 := NewSubscriber(4)

	assert.Equal(1, b.Subscribe("news", s1))
	assert.Equal(2, b.Subscribe("sport", s1))
	assert.Equal(1, b.Subscribe("news", s2))
	assert.Equal([]string{"news", "sport"}, b.Channels(s1))

	assert.Equal(2, b.Publish("news", []byte("hello")))
	assert.Equal(0, b.Publish("weather", []byte("rain")))

	msg := <-s1.C
	assert.Equal("news", msg.Channel)
	assert.Equal("hello", string(msg.Payload))
	msg = <-s2.C
	assert.Equal("hello", string(msg.Payload))
}

func TestBrokerUnsubscribe(t *testing.T) {
	assert := assert.New(t)
	b := NewBroker()
	s := NewSubscriber(4)

	b.Subscribe("a", s)
	b.Subscribe("b", s)
	assert.Equal(1, b.Unsubscribe("a", s))
	assert.Equal(1, b.Unsubscribe("not-subscribed", s))
	assert.Equal(0, b.Publish("a", []byte("x")))
	assert.Equal(0, b.Unsubscribe("b", s))
	assert.Equal(0, b.Count(s))
	assert.Empty(b.channels)
}

func TestBrokerDropsWhenFull(t *testing.T) {
	assert := assert.New(t)
	b := NewBroker()
	s := NewSubscriber(1)
	b.Subscribe("c", s)

	assert.Equal(1, b.Publish("c", []byte("1")))
	assert.Equal(1, b.Publish("c", []byte("2")))
	assert.Len(s.C, 1)
	msg := <-s.C
	assert.Equal("1", string(msg.Payload))
}
