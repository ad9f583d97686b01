package admin

import (
	"database/sql"

	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/models"
)

const adminsTable = "admins"

// AdminRow represents the database row for an admin
type AdminRow struct {
	ID             int64          `db:"id" fieldtag:"pk"`
	Identifiant    sql.NullString `db:"identifiant"`
	MotDePasseHash sql.NullString `db:"mot_de_passe_hash"`
}

// FromAdmin converts a domain model to a database row. The password hash is
// set by the repository.
func FromAdmin(a *models.Admin) *AdminRow {
	row := &AdminRow{
		Identifiant: database.NullString(a.Identifiant),
	}
	if a.ID != nil {
		row.ID = *a.ID
	}
	return row
}

// ToAdmin converts a database row to a domain model. The password never
// leaves the repository.
func ToAdmin(row *AdminRow) *models.Admin {
	id := row.ID
	return &models.Admin{
		ID:          &id,
		Identifiant: database.StringPtr(row.Identifiant),
	}
}

// ToAdmins converts a slice of database rows to domain models
func ToAdmins(rows []AdminRow) []*models.Admin {
	admins := make([]*models.Admin, len(rows))
	for i := range rows {
		admins[i] = ToAdmin(&rows[i])
	}
	return admins
}

// applyPatch copies the non-nil fields of patch onto existing.
func applyPatch(existing, patch *models.Admin) {
	if patch.Identifiant != nil {
		existing.Identifiant = patch.Identifiant
	}
	if patch.MotDePasse != nil {
		existing.MotDePasse = patch.MotDePasse
	}
}
