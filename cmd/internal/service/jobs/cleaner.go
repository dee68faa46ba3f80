package jobs

import (
	"context"
	"time"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/domain/events"
	"bizdirectory/cmd/internal/infrastructure/metrics"
	"bizdirectory/cmd/internal/service"
	"bizdirectory/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

const CleanInterval = 5 * time.Minute

type ConnectionCleaner struct {
	wsService *service.WebSocketService
	interval  time.Duration
}

func NewConnectionCleaner(wsService *service.WebSocketService) *ConnectionCleaner {
	return &ConnectionCleaner{wsService: wsService, interval: CleanInterval}
}

func (c *ConnectionCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Info("Connection cleaner cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping connection cleaner...")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

func (c *ConnectionCleaner) cleanup(ctx context.Context) int {
	start := time.Now()
	defer func() {
		metrics.JobDuration.WithLabelValues("connection_cleaner").Observe(time.Since(start).Seconds())
	}()

	now := utils.NowUTC()
	hbLimit := entity.HeartbeatPeriodMillis + entity.HeartbeatToleranceMillis
	conns, err := c.wsService.ConnRepo.FindStale(now, hbLimit)
	if err != nil {
		log.Errorf("Cleaner: failed to fetch stale connections: %v", err)
		return 0
	}

	if len(conns) == 0 {
		return 0
	}

	log.Infof("Cleaner: found %d stale connections, terminating", len(conns))

	// Network calls must not be cut short by shutdown halfway through a kill
	bgCtx := context.WithoutCancel(ctx)
	for _, conn := range conns {
		code := contract.KillCodeStaleHeartbeat
		if conn.ExpiresAt > 0 && conn.ExpiresAt <= now {
			code = contract.KillCodeSessionExpired
		}
		c.wsService.Terminate(bgCtx, conn.ConnectionID, &events.ConnectionKill{Code: code})
	}
	return len(conns)
}
