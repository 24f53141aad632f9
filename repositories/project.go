package repositories

import (
	"context"

	"github.com/agency-portal/models"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct{}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// FindAll retrieves all projects, most recent first
func (r *ProjectRepository) FindAll(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	result := conn(ctx).Order("created_at desc").Find(&projects)
	return projects, result.Error
}

// FindByClientID retrieves the projects of one client
func (r *ProjectRepository) FindByClientID(ctx context.Context, clientID string) ([]models.Project, error) {
	projects := []models.Project{}
	if clientID == "" {
		return projects, nil
	}
	result := conn(ctx).Where("client_id = ?", clientID).Order("created_at desc").Find(&projects)
	return projects, result.Error
}

// FindByID retrieves a project by its ID
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	result := conn(ctx).First(&project, "id = ?", id)
	return project, result.Error
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(ctx context.Context, project models.Project) (models.Project, error) {
	result := conn(ctx).Create(&project)
	return project, result.Error
}

// Update modifies an existing project
func (r *ProjectRepository) Update(ctx context.Context, project models.Project) error {
	return conn(ctx).Save(&project).Error
}

// UpdateStatus sets only the statut column
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, statut models.ProjectStatus) error {
	result := conn(ctx).Model(&models.Project{}).Where("id = ?", id).Update("statut", statut)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a project and everything it owns.
// It returns the storage keys of the removed documents and attachments so the caller can drop the objects.
func (r *ProjectRepository) Delete(ctx context.Context, id string) ([]string, error) {
	var keys []string
	err := Transaction(ctx, func(ctx context.Context) error {
		var err error
		keys, err = deleteProjects(conn(ctx), []string{id})
		return err
	})
	return keys, err
}

// OwnedBy reports whether the project belongs to the client
func (r *ProjectRepository) OwnedBy(ctx context.Context, projectID, clientID string) (bool, error) {
	if projectID == "" || clientID == "" {
		return false, nil
	}
	var count int64
	err := conn(ctx).Model(&models.Project{}).
		Where("id = ? AND client_id = ?", projectID, clientID).
		Count(&count).Error
	return count > 0, err
}

// CountByStatus counts projects per statut
func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[models.ProjectStatus]int64, error) {
	var rows []struct {
		Statut models.ProjectStatus
		Count  int64
	}
	err := conn(ctx).Model(&models.Project{}).
		Select("statut, count(*) as count").
		Group("statut").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.ProjectStatus]int64, len(models.ProjectStatuses))
	for _, s := range models.ProjectStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Statut] = row.Count
	}
	return counts, nil
}

// deleteProjects removes the projects and their children with db, which must be a transaction
func deleteProjects(db *gorm.DB, projectIDs []string) ([]string, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	taskIDs, err := pluck(db, &models.Task{}, "id", "projet_id IN ?", projectIDs)
	if err != nil {
		return nil, err
	}
	milestoneIDs, err := pluck(db, &models.Milestone{}, "id", "projet_id IN ?", projectIDs)
	if err != nil {
		return nil, err
	}
	ticketIDs, err := pluck(db, &models.Ticket{}, "id", "projet_id IN ?", projectIDs)
	if err != nil {
		return nil, err
	}

	docKeys, err := pluck(db, &models.Document{}, "file_path", "projet_id IN ?", projectIDs)
	if err != nil {
		return nil, err
	}
	attachmentKeys, err := pluck(db, &models.TicketAttachment{}, "file_path", "ticket_id IN ?", ticketIDs)
	if err != nil {
		return nil, err
	}

	steps := []struct {
		model any
		query string
		args  []string
	}{
		{&models.Comment{}, "task_id IN ?", taskIDs},
		{&models.Comment{}, "milestone_id IN ?", milestoneIDs},
		{&models.Task{}, "projet_id IN ?", projectIDs},
		{&models.Milestone{}, "projet_id IN ?", projectIDs},
		{&models.TicketAttachment{}, "ticket_id IN ?", ticketIDs},
		{&models.Ticket{}, "projet_id IN ?", projectIDs},
		{&models.Document{}, "projet_id IN ?", projectIDs},
		{&models.Review{}, "projet_id IN ?", projectIDs},
		{&models.Notification{}, "projet_id IN ?", projectIDs},
		{&models.Project{}, "id IN ?", projectIDs},
	}
	for _, step := range steps {
		if len(step.args) == 0 {
			continue
		}
		if err := db.Where(step.query, step.args).Delete(step.model).Error; err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(docKeys)+len(attachmentKeys))
	for _, k := range append(docKeys, attachmentKeys...) {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
