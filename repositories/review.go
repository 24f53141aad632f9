package repositories

import (
	"context"

	"github.com/agency-portal/models"
)

// ReviewRepository handles database operations for reviews
type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) FindAll(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	result := conn(ctx).Order("created_at desc").Find(&reviews)
	return reviews, result.Error
}

func (r *ReviewRepository) FindByProjectID(ctx context.Context, projectID string) ([]models.Review, error) {
	reviews := []models.Review{}
	if projectID == "" {
		return reviews, nil
	}
	result := conn(ctx).Where("projet_id = ?", projectID).Order("created_at desc").Find(&reviews)
	return reviews, result.Error
}

// FindByProjectAndClient returns gorm.ErrRecordNotFound when the client has not reviewed the project
func (r *ReviewRepository) FindByProjectAndClient(ctx context.Context, projectID, clientID string) (models.Review, error) {
	var review models.Review
	result := conn(ctx).First(&review, "projet_id = ? AND client_id = ?", projectID, clientID)
	return review, result.Error
}

func (r *ReviewRepository) Create(ctx context.Context, review models.Review) (models.Review, error) {
	result := conn(ctx).Create(&review)
	return review, result.Error
}

// AverageNote is the mean note of every review, 0 when there are none
func (r *ReviewRepository) AverageNote(ctx context.Context) (float64, error) {
	var avg float64
	err := conn(ctx).Model(&models.Review{}).Select("COALESCE(AVG(note), 0)").Row().Scan(&avg)
	return avg, err
}
