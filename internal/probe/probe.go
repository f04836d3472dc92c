// Package probe implements a smoke check for a running bridge: it connects
// as a frontend would, waits for the first render event, reports a marker
// value, and verifies the host answers with another render pass.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/annobridge/internal/ctxlog"
)

// opResult passes the round-trip outcome through the done channel.
type opResult struct {
	err error
}

// Check runs one full value round trip against the bridge at rawURL. It
// returns nil when the bridge delivered a render event, accepted the probe's
// reported value, and re-rendered.
func Check(ctx context.Context, rawURL string, timeout time.Duration) error {
	logger := ctxlog.FromContext(ctx).With("probe_url", rawURL)
	logger.Debug("Probe started")
	defer logger.Debug("Probe finished")

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	done := make(chan opResult, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)
	defer func() {
		logger.Debug("Disconnecting probe client")
		io.Disconnect()
	}()

	renders := 0

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Probe connected", "sid", io.Id())
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		if err, ok := errs[0].(error); ok {
			done <- opResult{err: err}
			return
		}
		done <- opResult{err: fmt.Errorf("connect error: %v", errs[0])}
	})

	io.On(types.EventName("render"), func(data ...any) {
		renders++
		logger.Debug("Render event received", "count", renders)

		if renders == 1 {
			instance := instanceFromRender(data)
			if instance == "" {
				done <- opResult{err: fmt.Errorf("first render event carried no instance ID")}
				return
			}
			logger.Info("Reporting probe value", "instance", instance)
			io.Emit("component_value", map[string]any{
				"instance": instance,
				"value":    map[string]any{"probe": true},
			})
			return
		}
		// A second render means the host stored the value and re-ran its pass.
		done <- opResult{}
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if renders == 0 {
			return fmt.Errorf("timed out waiting for the first render event")
		}
		return fmt.Errorf("timed out waiting for the post-report render pass")
	case res := <-done:
		return res.err
	}
}

// instanceFromRender digs the instance ID out of a render event payload.
func instanceFromRender(data []any) string {
	if len(data) == 0 {
		return ""
	}
	raw, err := json.Marshal(data[0])
	if err != nil {
		return ""
	}
	var payload struct {
		Instance string `json:"instance"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Instance
}
