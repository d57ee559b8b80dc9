// internal/notify/notifier.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Alert is one outbound WhatsApp message.
type Alert struct {
	ToNumber string `json:"to_number"`
	Message  string `json:"message"`
}

// Notifier posts alerts to the WhatsApp webhook off the request path.
// Delivery is best effort: a bounded queue feeds a single worker that
// retries a few times with backoff, then drops the alert with a log line.
// Nothing here ever blocks or fails a caller's write.
type Notifier struct {
	webhookURL string
	client     *http.Client
	queue      chan Alert
	wg         sync.WaitGroup
	closeOnce  sync.Once

	maxAttempts int
	backoff     time.Duration
}

func NewNotifier(webhookURL string) *Notifier {
	n := &Notifier{
		webhookURL:  webhookURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		queue:       make(chan Alert, 64),
		maxAttempts: 3,
		backoff:     2 * time.Second,
	}

	n.wg.Add(1)
	go n.worker()

	return n
}

// Enqueue hands an alert to the worker. A full queue drops the alert
// rather than blocking the caller.
func (n *Notifier) Enqueue(alert Alert) {
	select {
	case n.queue <- alert:
	default:
		logrus.WithField("to_number", alert.ToNumber).Warn("Notification queue full, alert dropped")
	}
}

// Close stops accepting alerts and waits for the worker to drain the queue.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		close(n.queue)
	})
	n.wg.Wait()
}

func (n *Notifier) worker() {
	defer n.wg.Done()

	for alert := range n.queue {
		n.deliver(alert)
	}
}

func (n *Notifier) deliver(alert Alert) {
	if n.webhookURL == "" {
		logrus.Debug("No webhook configured, alert skipped")
		return
	}

	var lastErr error
	for attempt := 1; attempt <= n.maxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(n.backoff * time.Duration(attempt-1))
		}

		if lastErr = n.post(alert); lastErr == nil {
			return
		}
	}

	logrus.WithError(lastErr).WithFields(logrus.Fields{
		"to_number": alert.ToNumber,
		"attempts":  n.maxAttempts,
	}).Error("Failed to deliver notification, giving up")
}

func (n *Notifier) post(alert Alert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
