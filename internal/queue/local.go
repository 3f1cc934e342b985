package queue

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// LocalQueue processes messages inside the current process with a fixed
// number of workers, by default one message at a time.
type LocalQueue struct {
	messages chan []byte
	handler  Handler

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func newLocalQueue(config *LocalConfig, handler Handler) *LocalQueue {
	workers := config.MaxInFlight

	if workers <= 0 {
		workers = 1
	}

	bufferSize := config.BufferSize

	if bufferSize <= 0 {
		bufferSize = 100
	}

	queue := &LocalQueue{
		messages: make(chan []byte, bufferSize),
		handler:  handler,
	}

	for i := 0; i < workers; i++ {
		queue.wg.Add(1)
		go queue.work()
	}

	return queue
}

func (l *LocalQueue) work() {
	defer l.wg.Done()

	for data := range l.messages {
		if err := handleIncomingRequest(data, l.handler); err != nil {
			log.Error().Err(err).Msg("failed to handle incoming compile request")
		}
	}
}

// SubmitMessageToQueue blocks while the buffer is full.
func (l *LocalQueue) SubmitMessageToQueue(data []byte) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.stopped {
		return ErrStopped
	}

	l.messages <- data
	return nil
}

// Stop stops accepting messages and waits for the pending ones to complete.
func (l *LocalQueue) Stop() {
	l.mu.Lock()

	if l.stopped {
		l.mu.Unlock()
		return
	}

	l.stopped = true
	close(l.messages)
	l.mu.Unlock()

	log.Info().Msg("stopping local queue")
	l.wg.Wait()
}
