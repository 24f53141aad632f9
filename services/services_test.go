package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/querycache"
	"github.com/agency-portal/storage"
	"github.com/agency-portal/testhelpers"
)

const testSecret = "test-secret"

type fixture struct {
	*Services
	cache   *querycache.Cache
	store   *storage.FileStore
	admin   dto.Principal
	client  dto.Principal
	project models.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	testhelpers.SetupTestDB(t)

	cache := querycache.New(querycache.WithRetries(0, 0), querycache.WithLogger(slog.New(slog.DiscardHandler)))
	t.Cleanup(cache.Close)
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	svc := New(Deps{Cache: cache, Store: store, Logger: slog.New(slog.DiscardHandler)}, testSecret)
	ctx := context.Background()

	client, err := svc.Clients.Create(ctx, dto.ClientRequest{Nom: "Atelier Lune", Email: "hello@lune.fr"})
	require.NoError(t, err)
	project, err := svc.Projects.Create(ctx, dto.ProjectRequest{ClientID: client.ID, Titre: "Site vitrine"})
	require.NoError(t, err)

	return &fixture{
		Services: svc,
		cache:    cache,
		store:    store,
		admin:    dto.AdminPrincipal("admin-user"),
		client:   dto.ClientPrincipal("client-user", client.ID),
		project:  project,
	}
}

func TestCreatedTaskAppearsInCachedList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.Tasks.List(ctx, f.project.ID, dto.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, before)

	task, err := f.Tasks.Create(ctx, f.project.ID, dto.TaskRequest{Titre: "Maquette accueil"})
	require.NoError(t, err)
	assert.Equal(t, models.WorkAFaire, task.Statut)
	assert.Equal(t, models.PriorityMoyenne, task.Priorite)

	after, err := f.Tasks.List(ctx, f.project.ID, dto.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, task.ID, after[0].ID)

	stats, err := f.Projects.Stats(ctx, f.admin, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Tasks.Total)

	_, err = f.Tasks.UpdateStatus(ctx, task.ID, models.WorkTermine)
	require.NoError(t, err)
	stats, err = f.Projects.Stats(ctx, f.admin, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.Tasks.Completion)
}

func TestTaskCreateNotifiesClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	count, err := f.Notifications.UnreadCount(ctx, f.client)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.Tasks.Create(ctx, f.project.ID, dto.TaskRequest{Titre: "Logo"})
	require.NoError(t, err)

	count, err = f.Notifications.UnreadCount(ctx, f.client)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	list, err := f.Notifications.List(ctx, f.client, dto.NotificationQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.NotificationTaskCreated, list[0].Type)
}

func TestTaskRejectsMilestoneOfAnotherProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.Projects.Create(ctx, dto.ProjectRequest{ClientID: f.project.ClientID, Titre: "Refonte"})
	require.NoError(t, err)
	milestone, err := f.Milestones.Create(ctx, other.ID, dto.MilestoneRequest{Titre: "Kickoff"})
	require.NoError(t, err)

	_, err = f.Tasks.Create(ctx, f.project.ID, dto.TaskRequest{Titre: "x", MilestoneID: &milestone.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestArchivedProspectLeavesActiveView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prospect, err := f.Prospects.Create(ctx, dto.ProspectRequest{Nom: "Studio Nord"})
	require.NoError(t, err)
	assert.Equal(t, models.ProspectNouveau, prospect.Statut)

	active, err := f.Prospects.List(ctx, dto.ProspectFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)

	archived, err := f.Prospects.UpdateStatus(ctx, prospect.ID, models.ProspectArchive)
	require.NoError(t, err)
	assert.Equal(t, models.ProspectArchive, archived.Statut)
	assert.Equal(t, prospect.ID, archived.ID)

	active, err = f.Prospects.List(ctx, dto.ProspectFilter{})
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := f.Prospects.List(ctx, dto.ProspectFilter{Filter: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.Prospects.UpdateStatus(ctx, "missing", models.ProspectPerdu)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConvertProspect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prospect, err := f.Prospects.Create(ctx, dto.ProspectRequest{Nom: "Maison Sud", Email: "Contact@Sud.fr", BudgetEstime: 4200})
	require.NoError(t, err)

	clients, err := f.Clients.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)

	resp, err := f.Prospects.Convert(ctx, prospect.ID, dto.ConvertProspectRequest{Titre: "Identité visuelle"})
	require.NoError(t, err)
	assert.Equal(t, models.ProspectConverti, resp.Prospect.Statut)
	assert.Equal(t, "contact@sud.fr", resp.Client.Email)
	assert.Equal(t, resp.Client.ID, resp.Project.ClientID)
	assert.Equal(t, 4200.0, resp.Project.Budget)
	require.NotNil(t, resp.Prospect.ProjectID)
	assert.Equal(t, resp.Project.ID, *resp.Prospect.ProjectID)

	clients, err = f.Clients.List(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	_, err = f.Prospects.Convert(ctx, prospect.ID, dto.ConvertProspectRequest{Titre: "Encore"})
	assert.ErrorIs(t, err, ErrConflict)

	projects, err := f.Projects.List(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestMarkReadDecreasesUnreadCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.Notifications.NotifyAdmin(ctx, models.NotificationTicket, "Nouveau ticket", "", "", f.project.ID)
	}
	count, err := f.Notifications.UnreadCount(ctx, f.admin)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	list, err := f.Notifications.List(ctx, f.admin, dto.NotificationQuery{Unread: true})
	require.NoError(t, err)
	require.Len(t, list, 3)

	marked, err := f.Notifications.MarkRead(ctx, f.admin, list[0].ID)
	require.NoError(t, err)
	assert.True(t, marked.IsRead)
	require.NotNil(t, marked.ReadAt)
	readAt := *marked.ReadAt

	count, err = f.Notifications.UnreadCount(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	again, err := f.Notifications.MarkRead(ctx, f.admin, list[0].ID)
	require.NoError(t, err)
	assert.True(t, again.IsRead)
	require.NotNil(t, again.ReadAt)
	assert.WithinDuration(t, readAt, *again.ReadAt, time.Second)

	count, err = f.Notifications.UnreadCount(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	updated, err := f.Notifications.MarkAllRead(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	count, err = f.Notifications.UnreadCount(ctx, f.admin)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestClientCannotReadAdminNotification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.Notifications.NotifyAdmin(ctx, models.NotificationComment, "Commentaire", "", "", "")

	list, err := f.Notifications.List(ctx, f.admin, dto.NotificationQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = f.Notifications.MarkRead(ctx, f.client, list[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectWithoutMilestonesYieldsEmptyList(t *testing.T) {
	f := newFixture(t)
	milestones, err := f.Milestones.List(context.Background(), f.project.ID)
	require.NoError(t, err)
	assert.NotNil(t, milestones)
	assert.Empty(t, milestones)
}

func TestReviewSubmittedOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	status, err := f.Reviews.Status(ctx, f.client, f.project.ID)
	require.NoError(t, err)
	assert.True(t, status.CanSubmit)
	assert.Nil(t, status.Review)

	review, err := f.Reviews.Submit(ctx, f.client, f.project.ID, dto.ReviewRequest{Note: 5, Commentaire: "Great work"})
	require.NoError(t, err)
	assert.Equal(t, f.project.ID, review.ProjectID)

	reviews, err := f.Reviews.ForProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Note)
	assert.Equal(t, "Great work", reviews[0].Commentaire)

	status, err = f.Reviews.Status(ctx, f.client, f.project.ID)
	require.NoError(t, err)
	assert.False(t, status.CanSubmit)
	require.NotNil(t, status.Review)

	_, err = f.Reviews.Submit(ctx, f.client, f.project.ID, dto.ReviewRequest{Note: 4})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.Reviews.Submit(ctx, f.client, f.project.ID, dto.ReviewRequest{Note: 9})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClientCannotSeeAnotherClientsProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.Clients.Create(ctx, dto.ClientRequest{Nom: "Autre"})
	require.NoError(t, err)
	intruder := dto.ClientPrincipal("u2", other.ID)

	_, err = f.Projects.Get(ctx, intruder, f.project.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.Projects.Resolve(ctx, intruder, "")
	assert.ErrorIs(t, err, ErrNotFound)

	resolved, err := f.Projects.Resolve(ctx, f.client, "")
	require.NoError(t, err)
	assert.Equal(t, f.project.ID, resolved.ID)
}

func TestDocumentUploadSignAndOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.Documents.Upload(ctx, f.project.ID, UploadRequest{
		Nom:               "Devis",
		RequiresSignature: true,
		File:              dto.Upload{FileName: "devis.pdf", ContentType: "application/pdf", Size: 3, Body: strings.NewReader("pdf")},
	})
	require.NoError(t, err)

	stats, err := f.Projects.Stats(ctx, f.admin, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.AwaitingSignatures)

	_, body, err := f.Documents.Open(ctx, f.client, doc.ID)
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, body.Close())
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(data))

	signed, err := f.Documents.Sign(ctx, f.client, doc.ID, dto.SignDocumentRequest{SignatureData: "data:image/png;base64,AAA"})
	require.NoError(t, err)
	assert.True(t, signed.IsSigned)
	assert.NotNil(t, signed.SignedAt)

	_, err = f.Documents.Sign(ctx, f.client, doc.ID, dto.SignDocumentRequest{SignatureData: "again"})
	assert.ErrorIs(t, err, ErrConflict)

	stats, err = f.Projects.Stats(ctx, f.admin, f.project.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.AwaitingSignatures)

	require.NoError(t, f.Documents.Delete(ctx, doc.ID))
	_, err = f.store.Open(ctx, doc.FilePath)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTicketLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.Tickets.Create(ctx, f.admin, f.project.ID, dto.TicketRequest{Titre: "x", Description: "y"})
	assert.ErrorIs(t, err, ErrForbidden)

	ticket, err := f.Tickets.Create(ctx, f.client, f.project.ID, dto.TicketRequest{Titre: "Bug formulaire", Description: "Le bouton ne répond plus"})
	require.NoError(t, err)
	assert.Equal(t, models.TicketOuvert, ticket.Statut)

	counts, err := f.Dashboard.SidebarCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.OpenTickets)
	assert.Equal(t, int64(1), counts.UnreadNotifications)

	attachment, err := f.Tickets.AddAttachment(ctx, f.client, ticket.ID, dto.Upload{
		FileName: "capture.png", ContentType: "image/png", Size: 4, Body: strings.NewReader("png!"),
	})
	require.NoError(t, err)

	got, err := f.Tickets.Get(ctx, f.admin, ticket.ID)
	require.NoError(t, err)
	require.Len(t, got.Attachments, 1)

	_, body, err := f.Tickets.OpenAttachment(ctx, f.admin, ticket.ID, attachment.ID)
	require.NoError(t, err)
	require.NoError(t, body.Close())

	_, err = f.Tickets.UpdateStatus(ctx, ticket.ID, models.TicketResolu)
	require.NoError(t, err)
	counts, err = f.Dashboard.SidebarCounts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.OpenTickets)

	clientUnread, err := f.Notifications.UnreadCount(ctx, f.client)
	require.NoError(t, err)
	assert.Equal(t, int64(1), clientUnread)

	require.NoError(t, f.Tickets.Delete(ctx, ticket.ID))
	_, err = f.store.Open(ctx, attachment.FilePath)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = f.Tickets.Get(ctx, f.admin, ticket.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentsOnTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task, err := f.Tasks.Create(ctx, f.project.ID, dto.TaskRequest{Titre: "Logo"})
	require.NoError(t, err)

	list, err := f.Comments.List(ctx, f.client, dto.CommentQuery{TaskID: task.ID})
	require.NoError(t, err)
	assert.Empty(t, list)

	comment, err := f.Comments.Create(ctx, f.client, dto.CommentRequest{TaskID: task.ID, Contenu: "Super"})
	require.NoError(t, err)

	list, err = f.Comments.List(ctx, f.admin, dto.CommentQuery{TaskID: task.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = f.Comments.Create(ctx, f.client, dto.CommentRequest{Contenu: "orphan"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.Comments.Delete(ctx, comment.ID))
	list, err = f.Comments.List(ctx, f.client, dto.CommentQuery{TaskID: task.ID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMilestoneDeleteKeepsTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milestone, err := f.Milestones.Create(ctx, f.project.ID, dto.MilestoneRequest{Titre: "Maquettes", Ordre: 1})
	require.NoError(t, err)
	task, err := f.Tasks.Create(ctx, f.project.ID, dto.TaskRequest{Titre: "Accueil", MilestoneID: &milestone.ID})
	require.NoError(t, err)

	tasks, err := f.Tasks.List(ctx, f.project.ID, dto.TaskFilter{MilestoneID: milestone.ID})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	require.NoError(t, f.Milestones.Delete(ctx, milestone.ID))

	got, err := f.Tasks.Get(ctx, f.admin, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MilestoneID)
	tasks, err = f.Tasks.List(ctx, f.project.ID, dto.TaskFilter{MilestoneID: milestone.ID})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestProjectDeleteClearsCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.Projects.Get(ctx, f.admin, f.project.ID)
	require.NoError(t, err)
	require.NoError(t, f.Projects.Delete(ctx, f.project.ID))

	_, err = f.Projects.Get(ctx, f.admin, f.project.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.Projects.Delete(ctx, f.project.ID), ErrNotFound)
}

func TestProjectUpdateRejectsUnknownClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.Projects.Update(ctx, f.project.ID, dto.ProjectRequest{ClientID: "ghost-client", Titre: "Site vitrine"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	got, err := f.Projects.Get(ctx, f.client, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, f.client.ClientID, got.ClientID)

	other, err := f.Clients.Create(ctx, dto.ClientRequest{Nom: "Maison Soleil", Email: "bonjour@soleil.fr"})
	require.NoError(t, err)
	moved, err := f.Projects.Update(ctx, f.project.ID, dto.ProjectRequest{ClientID: other.Client.ID, Titre: "Site vitrine"})
	require.NoError(t, err)
	assert.Equal(t, other.Client.ID, moved.ClientID)
}

func TestProjectDeleteDropsCachedNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.Tickets.Create(ctx, f.client, f.project.ID, dto.TicketRequest{Titre: "Bug", Description: "Page blanche"})
	require.NoError(t, err)
	unread, err := f.Notifications.UnreadCount(ctx, f.admin)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)
	inbox, err := f.Notifications.List(ctx, f.admin, dto.NotificationQuery{})
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	require.NoError(t, f.Projects.Delete(ctx, f.project.ID))

	unread, err = f.Notifications.UnreadCount(ctx, f.admin)
	require.NoError(t, err)
	assert.Zero(t, unread)
	inbox, err = f.Notifications.List(ctx, f.admin, dto.NotificationQuery{})
	require.NoError(t, err)
	assert.Empty(t, inbox)
}

func TestClientDeleteDropsCachedProjectChildren(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.Milestones.Create(ctx, f.project.ID, dto.MilestoneRequest{Titre: "Maquettes"})
	require.NoError(t, err)
	_, err = f.Tasks.Create(ctx, f.project.ID, dto.TaskRequest{Titre: "Wireframes"})
	require.NoError(t, err)
	milestones, err := f.Milestones.List(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, milestones, 1)
	tasks, err := f.Tasks.List(ctx, f.project.ID, dto.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	unread, err := f.Notifications.UnreadCount(ctx, f.client)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	require.NoError(t, f.Clients.Delete(ctx, f.client.ClientID))

	milestones, err = f.Milestones.List(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Empty(t, milestones)
	tasks, err = f.Tasks.List(ctx, f.project.ID, dto.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	unread, err = f.Notifications.UnreadCount(ctx, f.client)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stats, err := f.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Clients)
	assert.Equal(t, int64(1), stats.Projects)
	assert.Equal(t, int64(1), stats.ProjectsByStatus[models.ProjectEnAttente])

	_, err = f.Prospects.Create(ctx, dto.ProspectRequest{Nom: "Lead"})
	require.NoError(t, err)
	stats, err = f.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ActiveProspects)
}

func TestCountRefresherStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	refreshed := make(chan error, 10)
	r := NewCountRefresher(f.Dashboard, 5*time.Millisecond, slog.New(slog.DiscardHandler))
	r.onRefresh = func(err error) { refreshed <- err }

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case err := <-refreshed:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("refresher never ran")
	}
	assert.True(t, f.cache.Has(querycache.SidebarCountsKey()))

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}

func TestClientWithPortalAccountCanLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.Clients.Create(ctx, dto.ClientRequest{Nom: "Sans email", CreateAccount: true})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := f.Clients.Create(ctx, dto.ClientRequest{Nom: "Studio Nord", Email: "nord@studio.fr", CreateAccount: true})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Password)

	auth, err := f.Auth.Login(ctx, dto.LoginRequest{Email: "NORD@studio.fr", Password: resp.Password})
	require.NoError(t, err)
	assert.Equal(t, "/app", auth.Redirect)

	claims, err := f.Auth.ValidateToken(auth.Token)
	require.NoError(t, err)
	p := f.Auth.Principal(claims)
	assert.True(t, p.IsClient())
	assert.Equal(t, resp.ID, p.ClientID)

	_, err = f.Clients.Create(ctx, dto.ClientRequest{Nom: "Doublon", Email: "nord@studio.fr", CreateAccount: true})
	assert.ErrorIs(t, err, ErrConflict)
	clients, err := f.Clients.List(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 2, "the failed account must roll the client back")
}

func TestRoadmapGroupsTasksByMilestone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.Roadmap.Get(ctx, f.client, "")
	require.NoError(t, err)
	assert.Equal(t, f.project.ID, empty.Project.ID)
	assert.Empty(t, empty.Milestones)
	assert.Empty(t, empty.Unplanned)

	second, err := f.Milestones.Create(ctx, f.project.ID, dto.MilestoneRequest{Titre: "Livraison", Ordre: 2})
	require.NoError(t, err)
	first, err := f.Milestones.Create(ctx, f.project.ID, dto.MilestoneRequest{Titre: "Cadrage", Ordre: 1})
	require.NoError(t, err)
	_, err = f.Tasks.Create(ctx, f.project.ID, dto.TaskRequest{Titre: "Atelier", MilestoneID: &first.ID})
	require.NoError(t, err)
	_, err = f.Tasks.Create(ctx, f.project.ID, dto.TaskRequest{Titre: "Veille"})
	require.NoError(t, err)

	roadmap, err := f.Roadmap.Get(ctx, f.client, f.project.ID)
	require.NoError(t, err)
	require.Len(t, roadmap.Milestones, 2)
	assert.Equal(t, first.ID, roadmap.Milestones[0].ID)
	assert.Len(t, roadmap.Milestones[0].Tasks, 1)
	assert.Equal(t, second.ID, roadmap.Milestones[1].ID)
	assert.Empty(t, roadmap.Milestones[1].Tasks)
	require.Len(t, roadmap.Unplanned, 1)
	assert.Equal(t, "Veille", roadmap.Unplanned[0].Titre)
}
