package repositories

import (
	"context"
	"strings"

	"github.com/agency-portal/models"
	"gorm.io/gorm"
)

// ProspectFilter narrows the prospect list
type ProspectFilter struct {
	// ActiveOnly hides converted, lost and archived prospects
	ActiveOnly bool
	Statut     models.ProspectStatus
	Search     string
}

// ProspectRepository handles database operations for prospects
type ProspectRepository struct{}

// likeEscaper makes the search text match literally inside a LIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func NewProspectRepository() *ProspectRepository {
	return &ProspectRepository{}
}

// FindAll retrieves prospects matching the filter, newest first
func (r *ProspectRepository) FindAll(ctx context.Context, filter ProspectFilter) ([]models.Prospect, error) {
	prospects := []models.Prospect{}
	db := conn(ctx).Model(&models.Prospect{})

	if filter.ActiveOnly {
		db = db.Where("statut NOT IN ?", models.ClosedProspectStatuses)
	}
	if filter.Statut != "" {
		db = db.Where("statut = ?", filter.Statut)
	}
	if filter.Search != "" {
		// LOWER + LIKE instead of ILIKE so the query also runs on sqlite
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		db = db.Where(`(LOWER(nom) LIKE ? ESCAPE '\' OR LOWER(entreprise) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern)
	}

	result := db.Order("created_at desc").Find(&prospects)
	return prospects, result.Error
}

func (r *ProspectRepository) FindByID(ctx context.Context, id string) (models.Prospect, error) {
	var prospect models.Prospect
	result := conn(ctx).First(&prospect, "id = ?", id)
	return prospect, result.Error
}

func (r *ProspectRepository) Create(ctx context.Context, prospect models.Prospect) (models.Prospect, error) {
	result := conn(ctx).Create(&prospect)
	return prospect, result.Error
}

func (r *ProspectRepository) Update(ctx context.Context, prospect models.Prospect) error {
	return conn(ctx).Save(&prospect).Error
}

func (r *ProspectRepository) UpdateStatus(ctx context.Context, id string, statut models.ProspectStatus) error {
	result := conn(ctx).Model(&models.Prospect{}).Where("id = ?", id).Update("statut", statut)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProspectRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx).Delete(&models.Prospect{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountActive counts the prospects still in the working pipeline
func (r *ProspectRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx).Model(&models.Prospect{}).
		Where("statut NOT IN ?", models.ClosedProspectStatuses).
		Count(&count).Error
	return count, err
}
