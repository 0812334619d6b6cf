package metrics

import (
	"sync/atomic"
	"time"
)

// RunMetric summarizes one engine run.
type RunMetric struct {
	Mode      string        `json:"mode"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	Rounds    int           `json:"rounds"`
	Expanded  int           `json:"expanded"`
	Skipped   int           `json:"skipped"`
	Boosts    int           `json:"boosts"`
	Stalled   bool          `json:"stalled"`
}

type Collector interface {
	Start(mode string)
	AddRound()
	AddExpanded()
	AddSkipped()
	AddBoost()
	SetStalled(value bool)
	Complete() RunMetric
}

type collector struct {
	mode      string
	startTime time.Time
	rounds    atomic.Int32
	expanded  atomic.Int32
	skipped   atomic.Int32
	boosts    atomic.Int32
	stalled   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(mode string) {
	m.startTime = time.Now()
	m.mode = mode
}

func (m *collector) AddRound() {
	m.rounds.Add(1)
}

func (m *collector) AddExpanded() {
	m.expanded.Add(1)
}

func (m *collector) AddSkipped() {
	m.skipped.Add(1)
}

func (m *collector) AddBoost() {
	m.boosts.Add(1)
}

func (m *collector) SetStalled(value bool) {
	m.stalled.Store(value)
}

func (m *collector) Complete() RunMetric {
	return RunMetric{
		Mode:      m.mode,
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Rounds:    int(m.rounds.Load()),
		Expanded:  int(m.expanded.Load()),
		Skipped:   int(m.skipped.Load()),
		Boosts:    int(m.boosts.Load()),
		Stalled:   m.stalled.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(mode string)     {}
func (m *dummyCollector) AddRound()             {}
func (m *dummyCollector) AddExpanded()          {}
func (m *dummyCollector) AddSkipped()           {}
func (m *dummyCollector) AddBoost()             {}
func (m *dummyCollector) SetStalled(value bool) {}
func (m *dummyCollector) Complete() RunMetric   { return RunMetric{} }
