package license

import (
	"fmt"
	"sync"

	"github.com/ausocean/utils/logging"
	"github.com/robfig/cron/v3"
)

// DefaultCheckSchedule re-checks the license once an hour
const DefaultCheckSchedule = "@every 1h"

// Watcher periodically re-checks a Store and reports validity changes
type Watcher struct {
	store    *Store
	log      logging.Logger
	cron     *cron.Cron
	onChange func(valid bool)

	mu    sync.Mutex
	known bool
	valid bool
}

// NewWatcher schedules checks of store on schedule (a cron spec or descriptor).
// onChange is called from the scheduler goroutine when validity flips.
func NewWatcher(store *Store, schedule string, onChange func(valid bool), log logging.Logger) (*Watcher, error) {
	if schedule == "" {
		schedule = DefaultCheckSchedule
	}
	w := &Watcher{
		store:    store,
		log:      log,
		cron:     cron.New(),
		onChange: onChange,
	}
	if _, err := w.cron.AddFunc(schedule, func() { w.Check() }); err != nil {
		return nil, fmt.Errorf("invalid license check schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Start records the current validity and starts the scheduler
func (w *Watcher) Start() {
	w.Check()
	w.cron.Start()
}

// Stop halts the scheduler and waits for a running check to finish
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
}

// Check runs one validity check, invoking onChange if the result differs from the last one
func (w *Watcher) Check() bool {
	valid := w.store.Touch()

	w.mu.Lock()
	changed := w.known && w.valid != valid
	w.known = true
	w.valid = valid
	w.mu.Unlock()

	w.log.Debug("license checked", "valid", valid)
	if changed {
		w.log.Info("license validity changed", "valid", valid)
		if w.onChange != nil {
			w.onChange(valid)
		}
	}
	return valid
}
