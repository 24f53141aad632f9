package repositories

import (
	"context"

	"github.com/agency-portal/models"
)

// ClientRepository handles database operations for clients
type ClientRepository struct{}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{}
}

// FindAll retrieves every client ordered by name
func (r *ClientRepository) FindAll(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}
	result := conn(ctx).Order("nom asc").Find(&clients)
	return clients, result.Error
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (models.Client, error) {
	var client models.Client
	result := conn(ctx).First(&client, "id = ?", id)
	return client, result.Error
}

func (r *ClientRepository) Create(ctx context.Context, client models.Client) (models.Client, error) {
	result := conn(ctx).Create(&client)
	return client, result.Error
}

func (r *ClientRepository) Update(ctx context.Context, client models.Client) error {
	return conn(ctx).Save(&client).Error
}

// Delete removes the client with its projects, portal accounts and notifications.
// It returns the storage keys of every file that belonged to the removed projects.
func (r *ClientRepository) Delete(ctx context.Context, id string) ([]string, error) {
	var keys []string
	err := Transaction(ctx, func(ctx context.Context) error {
		db := conn(ctx)
		projectIDs, err := pluck(db, &models.Project{}, "id", "client_id = ?", id)
		if err != nil {
			return err
		}
		if keys, err = deleteProjects(db, projectIDs); err != nil {
			return err
		}
		if err := db.Where("client_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := db.Where("client_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := db.Where("client_id = ?", id).Delete(&models.User{}).Error; err != nil {
			return err
		}
		return db.Delete(&models.Client{}, "id = ?", id).Error
	})
	return keys, err
}

func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx).Model(&models.Client{}).Count(&count).Error
	return count, err
}
