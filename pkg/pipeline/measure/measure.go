package measure

import "sync"

// DefaultMeasure keeps one metric per stage. The engine adds stages
// sequentially, metrics guard their own counters.
type DefaultMeasure struct {
	Stages map[string]Metric
}

var _ Measure = (*DefaultMeasure)(nil)

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Stages: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	if mt, ok := m.Stages[name]; ok {
		return mt
	}

	mt := &DefaultMetric{
		mu:    &sync.Mutex{},
		units: make(map[string]*UnitInfo),
	}
	m.Stages[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	return m.Stages[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	return m.Stages
}
