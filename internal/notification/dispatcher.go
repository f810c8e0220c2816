// Package notification delivers transaction events out-of-band.
//
// Dispatch is decoupled from the ledger's transactional scope: events are
// queued on a bounded channel and delivered by background workers, so a slow
// or failing delivery channel never blocks or aborts a ledger operation.
package notification

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/corebank/corebank/internal/domain"
)

const defaultQueueSize = 256

// Dispatcher queues transaction events and posts them to a webhook URL.
// With an empty URL events are logged only.
type Dispatcher struct {
	url    string
	queue  chan domain.TransactionEvent
	client *http.Client
	logger zerolog.Logger
	wg     sync.WaitGroup
}

// New returns a dispatcher with the given webhook URL and queue capacity.
func New(url string, queueSize int, logger zerolog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	return &Dispatcher{
		url:    url,
		queue:  make(chan domain.TransactionEvent, queueSize),
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Start launches the delivery workers.
func (d *Dispatcher) Start(workers int) {
	if workers <= 0 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)

		go func() {
			defer d.wg.Done()

			for event := range d.queue {
				d.deliver(event)
			}
		}()
	}
}

// Dispatch enqueues the event without blocking. When the queue is full the
// event is dropped with a warning; delivery is best effort by contract.
func (d *Dispatcher) Dispatch(event domain.TransactionEvent) {
	select {
	case d.queue <- event:
	default:
		d.logger.Warn().
			Str("account_number", event.AccountNumber).
			Str("kind", string(event.Kind)).
			Msg("notification queue full, event dropped")
	}
}

// Close stops accepting events and waits for in-flight deliveries.
func (d *Dispatcher) Close() {
	close(d.queue)
	d.wg.Wait()
}

func (d *Dispatcher) deliver(event domain.TransactionEvent) {
	l := d.logger.With().
		Str("account_number", event.AccountNumber).
		Str("kind", string(event.Kind)).
		Logger()

	if d.url == "" {
		l.Info().Str("amount", event.Amount).Msg("transaction alert")
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		l.Error().Err(err).Msg("notification marshal failed")
		return
	}

	resp, err := d.client.Post(d.url, "application/json", bytes.NewReader(body))
	if err != nil {
		l.Error().Err(err).Msg("notification delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		l.Error().Int("status_code", resp.StatusCode).Msg("notification rejected")
	}
}
