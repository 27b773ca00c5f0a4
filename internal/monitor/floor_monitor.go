package monitor

import (
	"context"
	"time"

	"github.com/seatwise/floor-service/internal/dto"
	"github.com/seatwise/floor-service/internal/repository"
	"github.com/seatwise/floor-service/internal/service"
	"github.com/seatwise/floor-service/pkg/logger"
	"github.com/seatwise/floor-service/pkg/ws"
)

// FloorMonitor is the polling refresh loop: every interval it sweeps lapsed
// waitlist notifications, recomputes each restaurant's occupancy snapshot,
// and pushes the result to dashboards and the message bus. Each tick is
// idempotent, so overlapping or repeated runs are harmless.
type FloorMonitor struct {
	tableRepo repository.TableRepository
	floor     service.FloorService
	waitlist  service.WaitlistService
	publisher service.EventPublisher

	Interval time.Duration
	StopChan chan struct{}
}

func NewFloorMonitor(
	tableRepo repository.TableRepository,
	floor service.FloorService,
	waitlist service.WaitlistService,
	publisher service.EventPublisher,
	interval time.Duration,
) *FloorMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &FloorMonitor{
		tableRepo: tableRepo,
		floor:     floor,
		waitlist:  waitlist,
		publisher: publisher,
		Interval:  interval,
		StopChan:  make(chan struct{}),
	}
}

func (m *FloorMonitor) Start() {
	go func() {
		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.Tick(context.Background())
			case <-m.StopChan:
				return
			}
		}
	}()
}

func (m *FloorMonitor) Stop() {
	close(m.StopChan)
}

// Tick runs one refresh pass. Exposed so callers can force a refresh outside
// the timer (service start, explicit refresh request).
func (m *FloorMonitor) Tick(ctx context.Context) {
	if _, err := m.waitlist.Sweep(ctx); err != nil {
		logger.Error.Errorf("floor monitor: waitlist sweep failed: %v", err)
	}

	restaurantIDs, err := m.tableRepo.ListRestaurantIDs(ctx)
	if err != nil {
		logger.Error.Errorf("floor monitor: listing restaurants failed: %v", err)
		return
	}

	for _, restaurantID := range restaurantIDs {
		snap, err := m.floor.Snapshot(ctx, restaurantID)
		if err != nil {
			logger.Error.Errorf("floor monitor: snapshot for restaurant %d failed: %v", restaurantID, err)
			continue
		}

		resp := dto.ToFloorResponse(snap)
		ws.Broadcast(ws.Message{Event: ws.EventFloorSnapshot, Data: resp})

		if m.publisher != nil {
			if err := m.publisher.Publish("floor.snapshot", resp); err != nil {
				logger.Error.Errorf("floor monitor: publishing snapshot for restaurant %d failed: %v", restaurantID, err)
			}
		}
	}
}
