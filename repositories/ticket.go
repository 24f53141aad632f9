package repositories

import (
	"context"

	"github.com/agency-portal/models"
	"gorm.io/gorm"
)

// TicketRepository handles database operations for tickets and their attachments
type TicketRepository struct{}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{}
}

// FindAll retrieves every ticket, optionally of one statut, newest first
func (r *TicketRepository) FindAll(ctx context.Context, statut models.TicketStatus) ([]models.Ticket, error) {
	tickets := []models.Ticket{}
	db := conn(ctx)
	if statut != "" {
		db = db.Where("statut = ?", statut)
	}
	result := db.Order("created_at desc").Find(&tickets)
	return tickets, result.Error
}

// FindByProjectID retrieves a project's tickets
func (r *TicketRepository) FindByProjectID(ctx context.Context, projectID string, statut models.TicketStatus) ([]models.Ticket, error) {
	tickets := []models.Ticket{}
	if projectID == "" {
		return tickets, nil
	}
	db := conn(ctx).Where("projet_id = ?", projectID)
	if statut != "" {
		db = db.Where("statut = ?", statut)
	}
	result := db.Order("created_at desc").Find(&tickets)
	return tickets, result.Error
}

// FindByID retrieves a ticket with its attachments
func (r *TicketRepository) FindByID(ctx context.Context, id string) (models.Ticket, error) {
	var ticket models.Ticket
	result := conn(ctx).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		First(&ticket, "id = ?", id)
	return ticket, result.Error
}

func (r *TicketRepository) Create(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	result := conn(ctx).Omit("Attachments").Create(&ticket)
	return ticket, result.Error
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, statut models.TicketStatus) error {
	result := conn(ctx).Model(&models.Ticket{}).Where("id = ?", id).Update("statut", statut)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the ticket and its attachment rows, returning the attachment storage keys
func (r *TicketRepository) Delete(ctx context.Context, id string) ([]string, error) {
	var keys []string
	err := Transaction(ctx, func(ctx context.Context) error {
		db := conn(ctx)
		var err error
		if keys, err = pluck(db, &models.TicketAttachment{}, "file_path", "ticket_id = ?", id); err != nil {
			return err
		}
		if err := db.Where("ticket_id = ?", id).Delete(&models.TicketAttachment{}).Error; err != nil {
			return err
		}
		result := db.Delete(&models.Ticket{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return keys, err
}

// CountOpen counts tickets still awaiting the agency. An empty projectID counts across all projects.
func (r *TicketRepository) CountOpen(ctx context.Context, projectID string) (int64, error) {
	var count int64
	db := conn(ctx).Model(&models.Ticket{}).
		Where("statut IN ?", []models.TicketStatus{models.TicketOuvert, models.TicketEnCours})
	if projectID != "" {
		db = db.Where("projet_id = ?", projectID)
	}
	err := db.Count(&count).Error
	return count, err
}

func (r *TicketRepository) CreateAttachment(ctx context.Context, a models.TicketAttachment) (models.TicketAttachment, error) {
	result := conn(ctx).Create(&a)
	return a, result.Error
}

// FindAttachment retrieves one attachment of a ticket
func (r *TicketRepository) FindAttachment(ctx context.Context, ticketID, id string) (models.TicketAttachment, error) {
	var a models.TicketAttachment
	result := conn(ctx).First(&a, "id = ? AND ticket_id = ?", id, ticketID)
	return a, result.Error
}

func (r *TicketRepository) FindAttachmentsByTicketID(ctx context.Context, ticketID string) ([]models.TicketAttachment, error) {
	attachments := []models.TicketAttachment{}
	result := conn(ctx).Where("ticket_id = ?", ticketID).Order("created_at asc").Find(&attachments)
	return attachments, result.Error
}
