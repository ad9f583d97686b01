package cartebancaire

import (
	"database/sql"

	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/models"
)

const carteBancairesTable = "carte_bancaires"

// CarteBancaireRow represents the database row for a card
type CarteBancaireRow struct {
	ID             int64          `db:"id" fieldtag:"pk"`
	Numero         sql.NullString `db:"numero"`
	Titulaire      sql.NullString `db:"titulaire"`
	DateExpiration sql.NullString `db:"date_expiration"`
}

// FromCarteBancaire converts a domain model to a database row
func FromCarteBancaire(c *models.CarteBancaire) *CarteBancaireRow {
	row := &CarteBancaireRow{
		Numero:         database.NullString(c.Numero),
		Titulaire:      database.NullString(c.Titulaire),
		DateExpiration: database.NullString(c.DateExpiration),
	}
	if c.ID != nil {
		row.ID = *c.ID
	}
	return row
}

// ToCarteBancaire converts a database row to a domain model
func ToCarteBancaire(row *CarteBancaireRow) *models.CarteBancaire {
	id := row.ID
	return &models.CarteBancaire{
		ID:             &id,
		Numero:         database.StringPtr(row.Numero),
		Titulaire:      database.StringPtr(row.Titulaire),
		DateExpiration: database.StringPtr(row.DateExpiration),
	}
}

// ToCarteBancaires converts a slice of database rows to domain models
func ToCarteBancaires(rows []CarteBancaireRow) []*models.CarteBancaire {
	cartes := make([]*models.CarteBancaire, len(rows))
	for i := range rows {
		cartes[i] = ToCarteBancaire(&rows[i])
	}
	return cartes
}

func applyPatch(existing, patch *models.CarteBancaire) {
	if patch.Numero != nil {
		existing.Numero = patch.Numero
	}
	if patch.Titulaire != nil {
		existing.Titulaire = patch.Titulaire
	}
	if patch.DateExpiration != nil {
		existing.DateExpiration = patch.DateExpiration
	}
}
