package security

import (
	"sort"
	"sync"
	"time"

	"github.com/acmchapter/recruitment-api/internal/logger"
)

// Event classes the handlers record.
const (
	EvtFailedLogin        = "failed_login"
	EvtValidationError    = "validation_error"
	EvtSubmissionRejected = "submission_rejected"
)

const (
	maxEvents   = 1000
	statsWindow = 24 * time.Hour
	topIPLimit  = 10

	alertWindow    = 5 * time.Minute
	alertThreshold = 10
)

// Event is one rejected request worth remembering: a failed login, a
// validation failure, or a store-level submission rejection.
type Event struct {
	Type     string
	ClientIP string
	Endpoint string
	At       time.Time
}

// Monitor keeps a bounded in-memory log of security relevant rejections and
// summarizes them for the admin dashboard. State lives for the process
// lifetime; the log is capped so a flood cannot grow it without bound.
type Monitor struct {
	now    func() time.Time
	events []Event
	mu     sync.Mutex
}

func NewMonitor() *Monitor {
	return &Monitor{now: time.Now}
}

// Default backs the package-level Record and Report used by the handlers.
var Default = NewMonitor()

func Record(evt Event) {
	Default.Record(evt)
}

func Report() Stats {
	return Default.Stats()
}

// Record appends evt, stamping it with the current time when At is zero.
func (m *Monitor) Record(evt Event) {
	if evt.At.IsZero() {
		evt.At = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, evt)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}

	m.alertLocked(evt)
}

// alertLocked flags bursts of rejections from one client. The rate limiter
// throttles the endpoints; this only surfaces what slipped under its windows.
func (m *Monitor) alertLocked(evt Event) {
	cutoff := evt.At.Add(-alertWindow)

	recent := 0
	for _, e := range m.events {
		if e.ClientIP == evt.ClientIP && e.At.After(cutoff) {
			recent++
		}
	}

	if recent > alertThreshold {
		logger.Logger.Warn(
			"high rejection rate from client",
			"client_ip", evt.ClientIP,
			"events", recent,
		)
	}
}

type IPCount struct {
	ClientIP string `json:"client_ip"`
	Count    int    `json:"count"`
}

// Stats summarizes the trailing 24 hours of recorded events.
type Stats struct {
	ByType map[string]int `json:"by_type"`
	TopIPs []IPCount      `json:"top_ips"`
	Total  int            `json:"total_24h"`
}

func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-statsWindow)

	byType := make(map[string]int)
	byIP := make(map[string]int)
	total := 0
	for _, e := range m.events {
		if !e.At.After(cutoff) {
			continue
		}
		total++
		byType[e.Type]++
		byIP[e.ClientIP]++
	}

	top := make([]IPCount, 0, len(byIP))
	for ip, count := range byIP {
		top = append(top, IPCount{ClientIP: ip, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].ClientIP < top[j].ClientIP
	})
	if len(top) > topIPLimit {
		top = top[:topIPLimit]
	}

	return Stats{ByType: byType, TopIPs: top, Total: total}
}
