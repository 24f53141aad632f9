package database

import (
	"testing"

	"github.com/agency-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openConn(t *testing.T, name string) *DBConnection {
	t.Helper()
	conn, err := NewDBConnection(name, "sqlite", "file:"+t.Name()+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, conn.Migrate())
	return conn
}

func TestNewDBConnectionRejectsEmptyURL(t *testing.T) {
	_, err := NewDBConnection("source", "sqlite", "")
	assert.Error(t, err)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever", 0)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrateDataBetweenDatabases(t *testing.T) {
	source := openConn(t, "source")
	target := openConn(t, "target")

	client := models.Client{Nom: "Studio Nord"}
	require.NoError(t, source.DB.Create(&client).Error)
	project := models.Project{ClientID: client.ID, Titre: "Site vitrine"}
	require.NoError(t, source.DB.Create(&project).Error)
	ticket := models.Ticket{ProjectID: project.ID, ClientID: client.ID, Titre: "Logo flou"}
	require.NoError(t, source.DB.Create(&ticket).Error)
	require.NoError(t, source.DB.Create(&models.TicketAttachment{TicketID: ticket.ID, FileName: "logo.png"}).Error)

	require.NoError(t, MigrateDataBetweenDatabases(source, target))

	var copied models.Project
	require.NoError(t, target.DB.First(&copied, "id = ?", project.ID).Error)
	assert.Equal(t, "Site vitrine", copied.Titre)

	var attachments int64
	require.NoError(t, target.DB.Model(&models.TicketAttachment{}).Count(&attachments).Error)
	assert.Equal(t, int64(1), attachments)
}
