package repositories

import (
	"context"

	"github.com/agency-portal/models"
	"gorm.io/gorm"
)

// DocumentRepository handles database operations for documents
type DocumentRepository struct{}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

func (r *DocumentRepository) FindByProjectID(ctx context.Context, projectID string) ([]models.Document, error) {
	documents := []models.Document{}
	if projectID == "" {
		return documents, nil
	}
	result := conn(ctx).Where("projet_id = ?", projectID).Order("created_at desc").Find(&documents)
	return documents, result.Error
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (models.Document, error) {
	var document models.Document
	result := conn(ctx).First(&document, "id = ?", id)
	return document, result.Error
}

func (r *DocumentRepository) Create(ctx context.Context, document models.Document) (models.Document, error) {
	result := conn(ctx).Create(&document)
	return document, result.Error
}

func (r *DocumentRepository) Update(ctx context.Context, document models.Document) error {
	return conn(ctx).Save(&document).Error
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx).Delete(&models.Document{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAwaitingSignature counts the project's documents the client still has to sign
func (r *DocumentRepository) CountAwaitingSignature(ctx context.Context, projectID string) (int64, error) {
	var count int64
	err := conn(ctx).Model(&models.Document{}).
		Where("projet_id = ? AND requires_signature = ? AND is_signed = ?", projectID, true, false).
		Count(&count).Error
	return count, err
}

func (r *DocumentRepository) CountByProjectID(ctx context.Context, projectID string) (int64, error) {
	var count int64
	err := conn(ctx).Model(&models.Document{}).Where("projet_id = ?", projectID).Count(&count).Error
	return count, err
}
