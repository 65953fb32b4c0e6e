package metrics

import (
	"maps"
	"slices"
	"time"
)

// CommandMetric is the outcome and timing of one executed command.
type CommandMetric struct {
	Seq      int
	Verb     string
	OK       bool
	Duration time.Duration
}

// SessionMetric summarises a whole session.
type SessionMetric struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Commands  int
	Failures  int
}

// VerbMetric aggregates every command with the same verb.
type VerbMetric struct {
	Verb     string
	Count    int
	Failures int
	Total    time.Duration
}

func (v VerbMetric) Mean() time.Duration {
	if v.Count == 0 {
		return 0
	}
	return v.Total / time.Duration(v.Count)
}

// Report is what a Collector has gathered by Complete.
type Report struct {
	Session  SessionMetric
	Commands []CommandMetric
}

// ByVerb summarises the commands per verb, sorted by verb.
func (r Report) ByVerb() []VerbMetric {
	byVerb := map[string]*VerbMetric{}
	for _, c := range r.Commands {
		v, ok := byVerb[c.Verb]
		if !ok {
			v = &VerbMetric{Verb: c.Verb}
			byVerb[c.Verb] = v
		}
		v.Count++
		v.Total += c.Duration
		if !c.OK {
			v.Failures++
		}
	}

	out := make([]VerbMetric, 0, len(byVerb))
	for _, verb := range slices.Sorted(maps.Keys(byVerb)) {
		out = append(out, *byVerb[verb])
	}
	return out
}

type Collector interface {
	Start()
	Observe(verb string, ok bool, d time.Duration)
	Complete() Report
}

type collector struct {
	startTime time.Time
	commands  []CommandMetric
	failures  int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.commands = nil
	m.failures = 0
}

func (m *collector) Observe(verb string, ok bool, d time.Duration) {
	m.commands = append(m.commands, CommandMetric{
		Seq:      len(m.commands) + 1,
		Verb:     verb,
		OK:       ok,
		Duration: d,
	})
	if !ok {
		m.failures++
	}
}

func (m *collector) Complete() Report {
	end := time.Now()
	return Report{
		Session: SessionMetric{
			StartTime: m.startTime,
			EndTime:   end,
			Duration:  end.Sub(m.startTime),
			Commands:  len(m.commands),
			Failures:  m.failures,
		},
		Commands: m.commands,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                                        {}
func (m *dummyCollector) Observe(verb string, ok bool, d time.Duration) {}
func (m *dummyCollector) Complete() Report                              { return Report{} }
