package measure

import (
	"sync"
	"time"
)

// UnitInfo accumulates the time spent on one unit of work: a sample
// alignment, a counting call, a comparison.
type UnitInfo struct {
	Elapsed time.Duration
	total   int64
}

type DefaultMetric struct {
	mu      *sync.Mutex
	elapsed time.Duration
	units   map[string]*UnitInfo
}

func (mt *DefaultMetric) SetDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.elapsed = elapsed
}

func (mt *DefaultMetric) Duration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return round(mt.elapsed)
}

func (mt *DefaultMetric) AddUnit(name string, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.units[name] == nil {
		mt.units[name] = &UnitInfo{}
	}

	unit := mt.units[name]
	unit.Elapsed += elapsed
	unit.total++
}

func (mt *DefaultMetric) AllUnits() map[string]*UnitInfo {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.units
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
