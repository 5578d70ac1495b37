package keepalive

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Run pings <baseURL>/health on an interval so free-tier hosts do not idle
// the process. A no-op when baseURL is empty (local development).
func Run(ctx context.Context, baseURL string, interval time.Duration) {
	if baseURL == "" {
		zap.L().Debug("keepalive disabled")
		return
	}

	tk := time.NewTicker(interval)
	client := &http.Client{Timeout: 10 * time.Second}
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				pingOnce(ctx, client, baseURL)
			}
		}
	}()
	zap.L().Info("keepalive started", zap.String("url", baseURL), zap.Duration("interval", interval))
}

func pingOnce(ctx context.Context, client *http.Client, baseURL string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		zap.L().Warn("keepalive.request", zap.Error(err))
		return
	}
	resp, err := client.Do(req)
	if err != nil {
		zap.L().Warn("keepalive.ping", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("keepalive.ping_status", zap.Int("status", resp.StatusCode))
		return
	}
	zap.L().Debug("keepalive.ping_ok")
}
