package repositories

import (
	"context"

	"github.com/agency-portal/models"
	"gorm.io/gorm"
)

// TaskFilter narrows a project's task list
type TaskFilter struct {
	Statut      models.WorkStatus
	MilestoneID string
}

// TaskRepository handles database operations for tasks
type TaskRepository struct{}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// FindByProjectID retrieves a project's tasks, oldest first
func (r *TaskRepository) FindByProjectID(ctx context.Context, projectID string, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}
	if projectID == "" {
		return tasks, nil
	}
	db := conn(ctx).Where("projet_id = ?", projectID)
	if filter.Statut != "" {
		db = db.Where("statut = ?", filter.Statut)
	}
	if filter.MilestoneID != "" {
		db = db.Where("milestone_id = ?", filter.MilestoneID)
	}
	result := db.Order("created_at asc").Find(&tasks)
	return tasks, result.Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (models.Task, error) {
	var task models.Task
	result := conn(ctx).First(&task, "id = ?", id)
	return task, result.Error
}

func (r *TaskRepository) Create(ctx context.Context, task models.Task) (models.Task, error) {
	result := conn(ctx).Create(&task)
	return task, result.Error
}

func (r *TaskRepository) Update(ctx context.Context, task models.Task) error {
	return conn(ctx).Save(&task).Error
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, statut models.WorkStatus) error {
	result := conn(ctx).Model(&models.Task{}).Where("id = ?", id).Update("statut", statut)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the task and its comments
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return Transaction(ctx, func(ctx context.Context) error {
		db := conn(ctx)
		if err := db.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := db.Delete(&models.Task{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountByStatus counts a project's tasks per statut
func (r *TaskRepository) CountByStatus(ctx context.Context, projectID string) (map[models.WorkStatus]int64, error) {
	return countWorkStatus(conn(ctx).Model(&models.Task{}).Where("projet_id = ?", projectID))
}
