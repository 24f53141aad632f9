package repositories

import (
	"context"

	"github.com/agency-portal/models"
	"gorm.io/gorm"
)

// MilestoneRepository handles database operations for milestones
type MilestoneRepository struct{}

func NewMilestoneRepository() *MilestoneRepository {
	return &MilestoneRepository{}
}

// FindByProjectID retrieves a project's milestones in roadmap order
func (r *MilestoneRepository) FindByProjectID(ctx context.Context, projectID string) ([]models.Milestone, error) {
	milestones := []models.Milestone{}
	if projectID == "" {
		return milestones, nil
	}
	result := conn(ctx).Where("projet_id = ?", projectID).
		Order("ordre asc").Order("created_at asc").
		Find(&milestones)
	return milestones, result.Error
}

func (r *MilestoneRepository) FindByID(ctx context.Context, id string) (models.Milestone, error) {
	var milestone models.Milestone
	result := conn(ctx).First(&milestone, "id = ?", id)
	return milestone, result.Error
}

func (r *MilestoneRepository) Create(ctx context.Context, milestone models.Milestone) (models.Milestone, error) {
	result := conn(ctx).Create(&milestone)
	return milestone, result.Error
}

func (r *MilestoneRepository) Update(ctx context.Context, milestone models.Milestone) error {
	return conn(ctx).Save(&milestone).Error
}

func (r *MilestoneRepository) UpdateStatus(ctx context.Context, id string, statut models.WorkStatus) error {
	result := conn(ctx).Model(&models.Milestone{}).Where("id = ?", id).Update("statut", statut)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the milestone and its comments. Its tasks stay in the project, detached.
func (r *MilestoneRepository) Delete(ctx context.Context, id string) error {
	return Transaction(ctx, func(ctx context.Context) error {
		db := conn(ctx)
		if err := db.Model(&models.Task{}).Where("milestone_id = ?", id).
			Update("milestone_id", nil).Error; err != nil {
			return err
		}
		if err := db.Where("milestone_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := db.Delete(&models.Milestone{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountByStatus counts a project's milestones per statut
func (r *MilestoneRepository) CountByStatus(ctx context.Context, projectID string) (map[models.WorkStatus]int64, error) {
	return countWorkStatus(conn(ctx).Model(&models.Milestone{}).Where("projet_id = ?", projectID))
}

func countWorkStatus(db *gorm.DB) (map[models.WorkStatus]int64, error) {
	var rows []struct {
		Statut models.WorkStatus
		Count  int64
	}
	if err := db.Select("statut, count(*) as count").Group("statut").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[models.WorkStatus]int64, len(models.WorkStatuses))
	for _, s := range models.WorkStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Statut] = row.Count
	}
	return counts, nil
}
