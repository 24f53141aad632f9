package querycache

import "time"

// Policy holds the staleness window of every scope.
// A cached read older than its window is dropped and the next read loads again.
type Policy struct {
	Default  time.Duration
	PerScope map[Scope]time.Duration
}

// DefaultPolicy uses two minutes for details, one minute for lists and 30 seconds for counts
func DefaultPolicy() Policy {
	return NewPolicy(time.Minute, 30*time.Second)
}

// NewPolicy derives the per-scope windows from the list window and the count window.
// Details live twice as long as lists; notifications refresh at the count pace.
func NewPolicy(lists, counts time.Duration) Policy {
	details := 2 * lists
	return Policy{
		Default: lists,
		PerScope: map[Scope]time.Duration{
			ScopeClient:         details,
			ScopeProspect:       details,
			ScopeProject:        details,
			ScopeTask:           details,
			ScopeTicket:         details,
			ScopeNotifications:  counts,
			ScopeUnreadCount:    counts,
			ScopeSidebarCounts:  counts,
			ScopeDashboardStats: lists,
		},
	}
}

// StaleTime is the window for scope s
func (p Policy) StaleTime(s Scope) time.Duration {
	if d, ok := p.PerScope[s]; ok && d > 0 {
		return d
	}
	if p.Default > 0 {
		return p.Default
	}
	return time.Minute
}
