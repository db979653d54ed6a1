package alert

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nanoncore/nano-telemetry/config"
)

// Ntfy posts alerts to an ntfy topic. The body is the message text; title,
// priority and tags travel as headers.
type Ntfy struct {
	endpoint string
	client   *http.Client
}

func NewNtfy(cfg config.NtfyConfig) *Ntfy {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Ntfy{
		endpoint: strings.TrimRight(cfg.URL, "/") + "/" + strings.TrimLeft(cfg.Topic, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

func (n *Ntfy) Notify(ctx context.Context, alert Alert) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(alert.Body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("Title", alert.Title)
	req.Header.Set("Priority", alert.Priority)
	req.Header.Set("Tags", strings.Join(alert.Tags, ","))

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post ntfy: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("post ntfy: unexpected status %s", resp.Status)
	}
	return nil
}
