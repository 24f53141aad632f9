package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/agency-portal/database"
	"github.com/agency-portal/models"
	"github.com/agency-portal/testhelpers"
)

func seedProject(t *testing.T, ctx context.Context) (models.Client, models.Project) {
	t.Helper()
	client, err := NewClientRepository().Create(ctx, models.Client{Nom: "Atelier Lune", Email: "hello@lune.fr"})
	require.NoError(t, err)
	project, err := NewProjectRepository().Create(ctx, models.Project{
		ClientID: client.ID,
		Titre:    "Site vitrine",
		Statut:   models.ProjectEnCours,
	})
	require.NoError(t, err)
	return client, project
}

func TestEmptyParamsReturnEmptySlices(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()

	milestones, err := NewMilestoneRepository().FindByProjectID(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, milestones)
	assert.Empty(t, milestones)

	tasks, err := NewTaskRepository().FindByProjectID(ctx, "", TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	projects, err := NewProjectRepository().FindByClientID(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, projects)

	notifications, err := NewNotificationRepository().FindByAudience(ctx, models.AudienceClient, "", false, 0)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestMilestonesOrderedByOrdre(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	_, project := seedProject(t, ctx)
	repo := NewMilestoneRepository()

	for _, m := range []models.Milestone{
		{ProjectID: project.ID, Titre: "Livraison", Ordre: 3},
		{ProjectID: project.ID, Titre: "Maquettes", Ordre: 1},
		{ProjectID: project.ID, Titre: "Developpement", Ordre: 3},
	} {
		_, err := repo.Create(ctx, m)
		require.NoError(t, err)
	}

	got, err := repo.FindByProjectID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Maquettes", got[0].Titre)
	assert.Equal(t, 3, got[1].Ordre)
	assert.Equal(t, 3, got[2].Ordre)
}

func TestProspectActiveFilter(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	repo := NewProspectRepository()

	kept, err := repo.Create(ctx, models.Prospect{Nom: "Studio Nord", Statut: models.ProspectQualifie})
	require.NoError(t, err)
	archived, err := repo.Create(ctx, models.Prospect{Nom: "Maison Sud", Statut: models.ProspectNouveau})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, archived.ID, models.ProspectArchive))

	active, err := repo.FindAll(ctx, ProspectFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)

	all, err := repo.FindAll(ctx, ProspectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := repo.FindAll(ctx, ProspectFilter{Search: "nord"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", models.ProspectPerdu), gorm.ErrRecordNotFound)
}

func TestNotificationMarkRead(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	repo := NewNotificationRepository()

	var ids []string
	for i := 0; i < 3; i++ {
		n, err := repo.Create(ctx, models.Notification{Audience: models.AudienceAdmin, Type: models.NotificationTicket, Titre: "Nouveau ticket"})
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	now := time.Now()
	n, err := repo.MarkRead(ctx, ids[0], now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// second mark is a no-op
	n, err = repo.MarkRead(ctx, ids[0], now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	got, err := repo.FindByID(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, got.IsRead)
	require.NotNil(t, got.ReadAt)
	assert.WithinDuration(t, now, *got.ReadAt, time.Second)

	unread, err := repo.CountUnread(ctx, models.AudienceAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	n, err = repo.MarkAllRead(ctx, models.AudienceAdmin, "", now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	unread, err = repo.CountUnread(ctx, models.AudienceAdmin, "")
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestNotificationAudienceIsolation(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	repo := NewNotificationRepository()
	a, b := "client-a", "client-b"

	_, err := repo.Create(ctx, models.Notification{Audience: models.AudienceClient, ClientID: &a, Type: models.NotificationDocument})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Notification{Audience: models.AudienceClient, ClientID: &b, Type: models.NotificationDocument})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Notification{Audience: models.AudienceAdmin, Type: models.NotificationComment})
	require.NoError(t, err)

	count, err := repo.CountUnread(ctx, models.AudienceClient, a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	n, err := repo.MarkAllRead(ctx, models.AudienceClient, a, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err = repo.CountUnread(ctx, models.AudienceClient, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	count, err = repo.CountUnread(ctx, models.AudienceAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMilestoneDeleteDetachesTasks(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	client, project := seedProject(t, ctx)

	milestone, err := NewMilestoneRepository().Create(ctx, models.Milestone{ProjectID: project.ID, Titre: "Maquettes"})
	require.NoError(t, err)
	task, err := NewTaskRepository().Create(ctx, models.Task{ProjectID: project.ID, MilestoneID: &milestone.ID, Titre: "Wireframes"})
	require.NoError(t, err)
	_, err = NewCommentRepository().Create(ctx, models.Comment{MilestoneID: &milestone.ID, ClientID: client.ID, Contenu: "Top"})
	require.NoError(t, err)

	require.NoError(t, NewMilestoneRepository().Delete(ctx, milestone.ID))

	got, err := NewTaskRepository().FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MilestoneID)

	comments, err := NewCommentRepository().FindByTarget(ctx, CommentOnMilestone, milestone.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	assert.ErrorIs(t, NewMilestoneRepository().Delete(ctx, milestone.ID), gorm.ErrRecordNotFound)
}

func TestProjectDeleteCascades(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	client, project := seedProject(t, ctx)

	task, err := NewTaskRepository().Create(ctx, models.Task{ProjectID: project.ID, Titre: "Logo"})
	require.NoError(t, err)
	_, err = NewCommentRepository().Create(ctx, models.Comment{TaskID: &task.ID, ClientID: client.ID, Contenu: "Bien"})
	require.NoError(t, err)
	ticket, err := NewTicketRepository().Create(ctx, models.Ticket{ProjectID: project.ID, ClientID: client.ID, Titre: "Bug"})
	require.NoError(t, err)
	_, err = NewTicketRepository().CreateAttachment(ctx, models.TicketAttachment{TicketID: ticket.ID, FilePath: "tickets/x/a.png"})
	require.NoError(t, err)
	_, err = NewDocumentRepository().Create(ctx, models.Document{ProjectID: project.ID, Nom: "Devis", FilePath: "documents/x/devis.pdf"})
	require.NoError(t, err)
	_, err = NewReviewRepository().Create(ctx, models.Review{ProjectID: project.ID, ClientID: client.ID, Note: 5})
	require.NoError(t, err)

	keys, err := NewProjectRepository().Delete(ctx, project.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"documents/x/devis.pdf", "tickets/x/a.png"}, keys)

	for _, model := range []any{&models.Task{}, &models.Comment{}, &models.Ticket{}, &models.TicketAttachment{},
		&models.Document{}, &models.Review{}, &models.Project{}} {
		var count int64
		require.NoError(t, database.DB.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T rows left", model)
	}

	_, err = NewClientRepository().FindByID(ctx, client.ID)
	assert.NoError(t, err)
}

func TestClientDeleteCascades(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	client, _ := seedProject(t, ctx)
	_, err := NewUserRepository().Create(ctx, models.User{Email: "c@lune.fr", Password: "x", Role: models.RoleClient, ClientID: &client.ID})
	require.NoError(t, err)

	_, err = NewClientRepository().Delete(ctx, client.ID)
	require.NoError(t, err)

	_, err = NewClientRepository().FindByID(ctx, client.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	projects, err := NewProjectRepository().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
	exists, err := NewUserRepository().ExistsByEmail(ctx, "c@lune.fr")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTransactionRollsBack(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := Transaction(ctx, func(ctx context.Context) error {
		if _, err := NewClientRepository().Create(ctx, models.Client{Nom: "Ephemere"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := NewClientRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProjectCountsAndOwnership(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	client, project := seedProject(t, ctx)
	repo := NewProjectRepository()

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.ProjectEnCours])
	assert.Equal(t, int64(0), counts[models.ProjectTermine])

	owned, err := repo.OwnedBy(ctx, project.ID, client.ID)
	require.NoError(t, err)
	assert.True(t, owned)
	owned, err = repo.OwnedBy(ctx, project.ID, "someone-else")
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestReviewAverage(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository()

	avg, err := repo.AverageNote(ctx)
	require.NoError(t, err)
	assert.Zero(t, avg)

	_, err = repo.Create(ctx, models.Review{ProjectID: "p", ClientID: "a", Note: 5})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Review{ProjectID: "p", ClientID: "b", Note: 4})
	require.NoError(t, err)

	avg, err = repo.AverageNote(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, avg, 0.001)
}

func TestReviewUniquePerClientAndProject(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository()

	_, err := repo.Create(ctx, models.Review{ProjectID: "p", ClientID: "a", Note: 5})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Review{ProjectID: "p", ClientID: "a", Note: 1})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	_, err = repo.Create(ctx, models.Review{ProjectID: "q", ClientID: "a", Note: 3})
	assert.NoError(t, err)
}

func TestProspectSearchEscapesWildcards(t *testing.T) {
	testhelpers.SetupTestDB(t)
	ctx := context.Background()
	repo := NewProspectRepository()

	for _, nom := range []string{"Remise 50%", "Remise 500", "atelier_nord", "atelierXnord"} {
		_, err := repo.Create(ctx, models.Prospect{Nom: nom, Statut: models.ProspectNouveau})
		require.NoError(t, err)
	}

	got, err := repo.FindAll(ctx, ProspectFilter{Search: "50%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Remise 50%", got[0].Nom)

	got, err = repo.FindAll(ctx, ProspectFilter{Search: "r_n"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "atelier_nord", got[0].Nom)
}
