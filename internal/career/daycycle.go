package career

import (
	"time"

	"go.uber.org/zap"
)

// DayCycleSystem advances one simulated day for every active employment on
// a fixed wall-clock interval. The engine's transition functions stay
// timer-free; this system owns the clock.
type DayCycleSystem struct {
	manager  *CareerManager
	ticker   *time.Ticker
	stopChan chan struct{}
}

// NewDayCycleSystem creates a new day cycle system
func NewDayCycleSystem(manager *CareerManager, interval time.Duration) *DayCycleSystem {
	return &DayCycleSystem{
		manager:  manager,
		ticker:   time.NewTicker(interval),
		stopChan: make(chan struct{}),
	}
}

// Start begins the day cycle
func (dcs *DayCycleSystem) Start() {
	go func() {
		for {
			select {
			case <-dcs.ticker.C:
				dcs.advanceDay()
			case <-dcs.stopChan:
				dcs.ticker.Stop()
				return
			}
		}
	}()
}

// Stop halts the day cycle
func (dcs *DayCycleSystem) Stop() {
	close(dcs.stopChan)
}

func (dcs *DayCycleSystem) advanceDay() {
	dcs.manager.Logger.Info("Advancing simulated day")

	if err := dcs.manager.AdvanceDays(1); err != nil {
		dcs.manager.Logger.Error("Failed to advance day", zap.Error(err))
	}
}
