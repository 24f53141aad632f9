package querycache

// Mutation names a kind of write
type Mutation string

const (
	ClientCreated Mutation = "client.created"
	ClientUpdated Mutation = "client.updated"
	ClientDeleted Mutation = "client.deleted"

	ProspectCreated   Mutation = "prospect.created"
	ProspectUpdated   Mutation = "prospect.updated"
	ProspectDeleted   Mutation = "prospect.deleted"
	ProspectConverted Mutation = "prospect.converted"

	ProjectCreated Mutation = "project.created"
	ProjectUpdated Mutation = "project.updated"
	ProjectDeleted Mutation = "project.deleted"

	MilestoneCreated Mutation = "milestone.created"
	MilestoneUpdated Mutation = "milestone.updated"
	MilestoneDeleted Mutation = "milestone.deleted"

	TaskCreated Mutation = "task.created"
	TaskUpdated Mutation = "task.updated"
	TaskDeleted Mutation = "task.deleted"

	TicketCreated         Mutation = "ticket.created"
	TicketUpdated         Mutation = "ticket.updated"
	TicketDeleted         Mutation = "ticket.deleted"
	TicketAttachmentAdded Mutation = "ticket.attachment_added"

	DocumentUploaded Mutation = "document.uploaded"
	DocumentSigned   Mutation = "document.signed"
	DocumentDeleted  Mutation = "document.deleted"

	CommentCreated Mutation = "comment.created"
	CommentDeleted Mutation = "comment.deleted"

	NotificationCreated Mutation = "notification.created"
	NotificationRead    Mutation = "notification.read"

	ReviewSubmitted Mutation = "review.submitted"
)

// Event describes the entity a successful write touched
type Event struct {
	ID        string
	ProjectID string
	ClientID  string
	// ParentID is the comment target ("task:<id>" or "milestone:<id>")
	ParentID string
	// Audience is the notification audience param, see AudienceParam
	Audience string
}

// From says which event field fills a target key's param
type From int

const (
	// FromAll drops every key of the scope
	FromAll From = iota
	FromID
	FromProject
	FromParent
	FromAudience
)

// Target is one invalidation consequence of a mutation
type Target struct {
	Scope Scope
	From  From
}

func all(s Scope) Target       { return Target{Scope: s, From: FromAll} }
func byID(s Scope) Target      { return Target{Scope: s, From: FromID} }
func byProject(s Scope) Target { return Target{Scope: s, From: FromProject} }
func byParent(s Scope) Target  { return Target{Scope: s, From: FromParent} }
func byAudience(s Scope) Target {
	return Target{Scope: s, From: FromAudience}
}

// Rules maps each mutation to the keys that may hold stale copies afterwards
type Rules map[Mutation][]Target

// value extracts the target param from the event; ok is false when the event lacks it
func (t Target) value(ev Event) (string, bool) {
	var v string
	switch t.From {
	case FromAll:
		return "", false
	case FromID:
		v = ev.ID
	case FromProject:
		v = ev.ProjectID
	case FromParent:
		v = ev.ParentID
	case FromAudience:
		v = ev.Audience
	}
	return v, v != ""
}

// DefaultRules is the dependency map of the portal.
// Detail keys, the parent's list key and the denormalised aggregates of each write are listed explicitly.
func DefaultRules() Rules {
	counts := []Target{all(ScopeSidebarCounts), all(ScopeDashboardStats)}
	with := func(targets ...Target) []Target {
		return append(targets, counts...)
	}
	projectChildren := func(own Scope) []Target {
		return []Target{byProject(own), byProject(ScopeProjectStats)}
	}

	return Rules{
		ClientCreated: with(all(ScopeClients)),
		ClientUpdated: with(byID(ScopeClient), all(ScopeClients)),
		// the client's projects go with it, children and notifications included
		ClientDeleted: with(byID(ScopeClient), all(ScopeClients), all(ScopeProjects), all(ScopeProject),
			all(ScopeProjectStats), all(ScopeMilestones), all(ScopeTasks), all(ScopeTask), all(ScopeDocuments),
			all(ScopeComments), all(ScopeTickets), all(ScopeTicket), all(ScopeReviews),
			all(ScopeNotifications), all(ScopeUnreadCount)),

		ProspectCreated: with(all(ScopeProspects)),
		ProspectUpdated: with(byID(ScopeProspect), all(ScopeProspects)),
		ProspectDeleted: with(byID(ScopeProspect), all(ScopeProspects)),
		ProspectConverted: with(byID(ScopeProspect), all(ScopeProspects), all(ScopeClients),
			all(ScopeProjects)),

		ProjectCreated: with(all(ScopeProjects)),
		ProjectUpdated: with(byID(ScopeProject), byID(ScopeProjectStats), all(ScopeProjects)),
		ProjectDeleted: with(byID(ScopeProject), byID(ScopeProjectStats), all(ScopeProjects),
			byProject(ScopeMilestones), byProject(ScopeTasks), byProject(ScopeDocuments), byProject(ScopeReviews),
			all(ScopeTickets), all(ScopeTicket), all(ScopeTask), all(ScopeComments),
			all(ScopeNotifications), all(ScopeUnreadCount)),

		MilestoneCreated: projectChildren(ScopeMilestones),
		MilestoneUpdated: projectChildren(ScopeMilestones),
		// tasks of a deleted milestone are detached, so the task list changes too
		MilestoneDeleted: append(projectChildren(ScopeMilestones), byProject(ScopeTasks), all(ScopeTask),
			all(ScopeComments)),

		TaskCreated: projectChildren(ScopeTasks),
		TaskUpdated: append(projectChildren(ScopeTasks), byID(ScopeTask)),
		TaskDeleted: append(projectChildren(ScopeTasks), byID(ScopeTask), all(ScopeComments)),

		TicketCreated:         with(all(ScopeTickets), byProject(ScopeProjectStats)),
		TicketUpdated:         with(byID(ScopeTicket), all(ScopeTickets), byProject(ScopeProjectStats)),
		TicketDeleted:         with(byID(ScopeTicket), all(ScopeTickets), byProject(ScopeProjectStats)),
		TicketAttachmentAdded: {byID(ScopeTicket)},

		DocumentUploaded: projectChildren(ScopeDocuments),
		DocumentSigned:   projectChildren(ScopeDocuments),
		DocumentDeleted:  projectChildren(ScopeDocuments),

		CommentCreated: {byParent(ScopeComments)},
		CommentDeleted: {byParent(ScopeComments)},

		NotificationCreated: with(byAudience(ScopeNotifications), byAudience(ScopeUnreadCount)),
		NotificationRead:    with(byAudience(ScopeNotifications), byAudience(ScopeUnreadCount)),

		ReviewSubmitted: {all(ScopeReviews), all(ScopeDashboardStats)},
	}
}

// Targets returns the invalidation targets of m. Unknown mutations invalidate nothing.
func (r Rules) Targets(m Mutation) []Target {
	return r[m]
}
