package ui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mosaic/internal/logger"
)

const bridgeQueueSize = 256

// Bridge forwards messages from background goroutines (history timers,
// image loaders) into the running program in the order they were sent.
// Messages sent while no program is attached are dropped.
type Bridge struct {
	mu    sync.Mutex
	queue chan tea.Msg
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewBridge returns a detached Bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

func (b *Bridge) attach(p *tea.Program) {
	b.attachFunc(p.Send)
}

// attachFunc starts the single forwarder that hands queued messages to send.
// Program.Send blocks until the event loop reads the message, and callers
// may be running on the event loop itself, so Send only enqueues.
func (b *Bridge) attachFunc(send func(tea.Msg)) {
	b.detach()

	queue := make(chan tea.Msg, bridgeQueueSize)
	done := make(chan struct{})

	b.mu.Lock()
	b.queue = queue
	b.done = done
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-done:
				return
			case msg := <-queue:
				send(msg)
			}
		}
	}()
}

func (b *Bridge) detach() {
	b.mu.Lock()
	done := b.done
	b.queue = nil
	b.done = nil
	b.mu.Unlock()
	if done != nil {
		close(done)
	}
	b.wg.Wait()
}

// Send queues msg for the attached program without blocking.
func (b *Bridge) Send(msg tea.Msg) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.queue == nil {
		return
	}
	select {
	case b.queue <- msg:
	default:
		logger.Component("bridge").Debug("message dropped, queue full", "type", fmt.Sprintf("%T", msg))
	}
}

// Title is a history sink that updates the terminal title.
func (b *Bridge) Title(path string) {
	b.Send(TitleMsg{Path: path})
}
