package querycache

import (
	"sort"
	"strings"
)

// Scope is a query key family. Every cached read belongs to exactly one scope.
type Scope string

const (
	ScopeClients        Scope = "clients"
	ScopeClient         Scope = "client"
	ScopeProspects      Scope = "prospects"
	ScopeProspect       Scope = "prospect"
	ScopeProjects       Scope = "projects"
	ScopeProject        Scope = "project"
	ScopeProjectStats   Scope = "project_stats"
	ScopeMilestones     Scope = "milestones"
	ScopeTasks          Scope = "tasks"
	ScopeTask           Scope = "task"
	ScopeTickets        Scope = "tickets"
	ScopeTicket         Scope = "ticket"
	ScopeDocuments      Scope = "documents"
	ScopeComments       Scope = "comments"
	ScopeReviews        Scope = "reviews"
	ScopeNotifications  Scope = "notifications"
	ScopeUnreadCount    Scope = "unread_count"
	ScopeSidebarCounts  Scope = "sidebar_counts"
	ScopeDashboardStats Scope = "dashboard_stats"
)

// ParamAll is the param of unparameterised keys such as the full client list
const ParamAll = "all"

// Key identifies one cached read.
// Param starts with the value rules match on (an id, a project id, an audience);
// extra filters follow after a "|" separator.
type Key struct {
	Scope Scope
	Param string
}

func (k Key) String() string {
	return string(k.Scope) + ":" + k.Param
}

// matches reports whether the key's leading param equals value
func (k Key) matches(scope Scope, value string) bool {
	if k.Scope != scope {
		return false
	}
	return k.Param == value || strings.HasPrefix(k.Param, value+"|")
}

// NewKey builds a key whose param is base followed by the non-empty filters in a stable order
func NewKey(scope Scope, base string, filters map[string]string) Key {
	if base == "" {
		base = ParamAll
	}
	if len(filters) == 0 {
		return Key{Scope: scope, Param: base}
	}
	names := make([]string, 0, len(filters))
	for name, v := range filters {
		if v != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(base)
	for _, name := range names {
		b.WriteString("|")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(filters[name])
	}
	return Key{Scope: scope, Param: b.String()}
}

func ClientsKey() Key               { return Key{Scope: ScopeClients, Param: ParamAll} }
func ClientKey(id string) Key       { return Key{Scope: ScopeClient, Param: id} }
func ProspectKey(id string) Key     { return Key{Scope: ScopeProspect, Param: id} }
func ProjectKey(id string) Key      { return Key{Scope: ScopeProject, Param: id} }
func ProjectStatsKey(id string) Key { return Key{Scope: ScopeProjectStats, Param: id} }
func TaskKey(id string) Key         { return Key{Scope: ScopeTask, Param: id} }
func TicketKey(id string) Key       { return Key{Scope: ScopeTicket, Param: id} }
func SidebarCountsKey() Key         { return Key{Scope: ScopeSidebarCounts, Param: ParamAll} }
func DashboardStatsKey() Key        { return Key{Scope: ScopeDashboardStats, Param: ParamAll} }

// ProjectsKey is the project list, either every project or those of one client
func ProjectsKey(clientID string) Key { return NewKey(ScopeProjects, clientID, nil) }

func MilestonesKey(projectID string) Key { return Key{Scope: ScopeMilestones, Param: projectID} }
func DocumentsKey(projectID string) Key  { return Key{Scope: ScopeDocuments, Param: projectID} }
func ReviewsKey(projectID string) Key    { return NewKey(ScopeReviews, projectID, nil) }

// CommentsKey is keyed by target kind and id, e.g. "task:<id>"
func CommentsKey(target string) Key { return Key{Scope: ScopeComments, Param: target} }

// AudienceParam is "admin" or "client:<id>"
func AudienceParam(audience, clientID string) string {
	if audience == "client" {
		return "client:" + clientID
	}
	return audience
}

func NotificationsKey(audience string, unreadOnly bool) Key {
	if unreadOnly {
		return NewKey(ScopeNotifications, audience, map[string]string{"unread": "true"})
	}
	return Key{Scope: ScopeNotifications, Param: audience}
}

func UnreadCountKey(audience string) Key { return Key{Scope: ScopeUnreadCount, Param: audience} }
