package repositories

import (
	"context"
	"fmt"

	"github.com/agency-portal/models"
	"gorm.io/gorm"
)

// CommentTarget is the kind of entity a comment is attached to
type CommentTarget string

const (
	CommentOnTask      CommentTarget = "task"
	CommentOnMilestone CommentTarget = "milestone"
)

func (t CommentTarget) column() (string, error) {
	switch t {
	case CommentOnTask:
		return "task_id", nil
	case CommentOnMilestone:
		return "milestone_id", nil
	default:
		return "", fmt.Errorf("unknown comment target %q", t)
	}
}

// CommentRepository handles database operations for comments
type CommentRepository struct{}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

// FindByTarget retrieves the comments on one task or milestone, oldest first
func (r *CommentRepository) FindByTarget(ctx context.Context, target CommentTarget, id string) ([]models.Comment, error) {
	comments := []models.Comment{}
	column, err := target.column()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return comments, nil
	}
	result := conn(ctx).Where(column+" = ?", id).Order("created_at asc").Find(&comments)
	return comments, result.Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (models.Comment, error) {
	var comment models.Comment
	result := conn(ctx).First(&comment, "id = ?", id)
	return comment, result.Error
}

func (r *CommentRepository) Create(ctx context.Context, comment models.Comment) (models.Comment, error) {
	result := conn(ctx).Create(&comment)
	return comment, result.Error
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx).Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
