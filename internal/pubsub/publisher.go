package pubsub

import (
	"errors"
	"sync"

	"github.com/alanbriolat/clip-saver/internal/sync_"
)

const (
	DefaultPublisherBufSize  = 1
	DefaultSubscriberBufSize = 1
)

var (
	ErrPublisherClosed = errors.New("publisher closed")
)

// A Publisher fans every message out to all of its subscribers. A subscriber that stops receiving without closing
// will stall the publisher.
type Publisher[T any] interface {
	SenderCloser[T]
	// AddSubscriber attaches an existing sender; if close is true it will be closed along with the Publisher.
	AddSubscriber(s SenderCloser[T], close bool) error
	Subscribe() (ReceiverCloser[T], error)
	SubscribeBufSize(int) (ReceiverCloser[T], error)
}

type subscribers[T any] map[SenderCloser[T]]bool

type publisher[T any] struct {
	mu          sync.Mutex
	ch          Channel[T]
	running     sync.WaitGroup
	pending     sync.WaitGroup // Messages not yet delivered to all subscribers
	subscribers *sync_.Mutexed[subscribers[T]]
	closed      bool
}

func NewPublisher[T any]() Publisher[T] {
	return NewPublisherBufSize[T](DefaultPublisherBufSize)
}

func NewPublisherBufSize[T any](bufSize int) Publisher[T] {
	p := &publisher[T]{
		ch:          NewChannel[T](bufSize),
		subscribers: sync_.NewMutexed(make(subscribers[T])),
	}
	p.running.Add(1)
	go p.run()
	return p
}

func (p *publisher[T]) run() {
	defer p.running.Done()
	for v := range p.ch.Receive() {
		// Copy the subscriber list so that the lock isn't held while sending
		var current []SenderCloser[T]
		_ = p.subscribers.Locked(func(subs *subscribers[T]) error {
			current = make([]SenderCloser[T], 0, len(*subs))
			for s := range *subs {
				current = append(current, s)
			}
			return nil
		})
		for _, s := range current {
			if ok := s.Send(v); !ok {
				p.unsubscribe(s)
			}
		}
		p.pending.Done()
	}
}

// Send queues the message for delivery to all subscribers, returning false if the Publisher is closed.
func (p *publisher[T]) Send(msg T) bool {
	p.pending.Add(1)
	if ok := p.ch.Send(msg); !ok {
		p.pending.Done()
		return false
	}
	return true
}

func (p *publisher[T]) Subscribe() (ReceiverCloser[T], error) {
	return p.SubscribeBufSize(DefaultSubscriberBufSize)
}

func (p *publisher[T]) SubscribeBufSize(bufSize int) (ReceiverCloser[T], error) {
	s := NewChannel[T](bufSize)
	if err := p.AddSubscriber(s, true); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *publisher[T]) AddSubscriber(s SenderCloser[T], close bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}
	return p.subscribers.Locked(func(subs *subscribers[T]) error {
		(*subs)[s] = close
		return nil
	})
}

func (p *publisher[T]) unsubscribe(s SenderCloser[T]) {
	_ = p.subscribers.Locked(func(subs *subscribers[T]) error {
		delete(*subs, s)
		return nil
	})
}

// Close idempotently shuts down the publisher after flushing queued messages.
func (p *publisher[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.ch.Close()
	p.pending.Wait()
	p.running.Wait()
	old := p.subscribers.Swap(make(subscribers[T]))
	for s, owned := range old {
		if owned {
			s.Close()
		}
	}
	p.closed = true
}

func (p *publisher[T]) Closed() <-chan struct{} {
	return p.ch.Closed()
}
