package avis

import (
	"database/sql"

	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/models"
)

const avisTable = "avis"

// AvisRow represents the database row for a review
type AvisRow struct {
	ID          int64          `db:"id" fieldtag:"pk"`
	Note        sql.NullInt64  `db:"note"`
	Commentaire sql.NullString `db:"commentaire"`
	DateAvis    sql.NullTime   `db:"date_avis"`
	ProduitID   sql.NullInt64  `db:"produit_id"`
}

// FromAvis converts a domain model to a database row
func FromAvis(a *models.Avis) *AvisRow {
	row := &AvisRow{
		Note:        database.NullInt(a.Note),
		Commentaire: database.NullString(a.Commentaire),
		DateAvis:    database.NullTime(a.Date),
	}
	if a.ID != nil {
		row.ID = *a.ID
	}
	if a.Produit != nil {
		row.ProduitID = database.NullID(a.Produit.ID)
	}
	return row
}

// ToAvis converts a database row to a domain model. The product reference
// only carries its id.
func ToAvis(row *AvisRow) *models.Avis {
	id := row.ID
	a := &models.Avis{
		ID:          &id,
		Note:        database.IntPtr(row.Note),
		Commentaire: database.StringPtr(row.Commentaire),
		Date:        database.TimePtr(row.DateAvis),
	}
	if produitID := database.IDPtr(row.ProduitID); produitID != nil {
		a.Produit = &models.Produit{ID: produitID}
	}
	return a
}

func ToAvisList(rows []AvisRow) []*models.Avis {
	list := make([]*models.Avis, len(rows))
	for i := range rows {
		list[i] = ToAvis(&rows[i])
	}
	return list
}

func applyPatch(existing, patch *models.Avis) {
	if patch.Note != nil {
		existing.Note = patch.Note
	}
	if patch.Commentaire != nil {
		existing.Commentaire = patch.Commentaire
	}
	if patch.Date != nil {
		existing.Date = patch.Date
	}
	if patch.Produit != nil {
		existing.Produit = patch.Produit
	}
}
