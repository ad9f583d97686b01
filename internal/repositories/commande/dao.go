package commande

import (
	"database/sql"

	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/models"
)

const commandesTable = "commandes"

// CommandeRow represents the database row for an order
type CommandeRow struct {
	ID              int64           `db:"id" fieldtag:"pk"`
	DateCommande    sql.NullTime    `db:"date_commande"`
	Statut          sql.NullString  `db:"statut"`
	MontantTotal    sql.NullFloat64 `db:"montant_total"`
	CarteBancaireID sql.NullInt64   `db:"carte_bancaire_id"`
}

// FromCommande converts a domain model to a database row
func FromCommande(c *models.Commande) *CommandeRow {
	row := &CommandeRow{
		DateCommande: database.NullTime(c.DateCommande),
		MontantTotal: database.NullFloat32(c.MontantTotal),
	}
	if c.ID != nil {
		row.ID = *c.ID
	}
	if c.Statut != nil {
		row.Statut = sql.NullString{String: string(*c.Statut), Valid: true}
	}
	if c.CarteBancaire != nil {
		row.CarteBancaireID = database.NullID(c.CarteBancaire.ID)
	}
	return row
}

// ToCommande converts a database row to a domain model
func ToCommande(row *CommandeRow) *models.Commande {
	id := row.ID
	c := &models.Commande{
		ID:           &id,
		DateCommande: database.TimePtr(row.DateCommande),
		MontantTotal: database.Float32Ptr(row.MontantTotal),
	}
	if row.Statut.Valid {
		statut := models.StatutCommande(row.Statut.String)
		c.Statut = &statut
	}
	if carteID := database.IDPtr(row.CarteBancaireID); carteID != nil {
		c.CarteBancaire = &models.CarteBancaire{ID: carteID}
	}
	return c
}

// ToCommandes converts a slice of database rows to domain models
func ToCommandes(rows []CommandeRow) []*models.Commande {
	commandes := make([]*models.Commande, len(rows))
	for i := range rows {
		commandes[i] = ToCommande(&rows[i])
	}
	return commandes
}

func applyPatch(existing, patch *models.Commande) {
	if patch.DateCommande != nil {
		existing.DateCommande = patch.DateCommande
	}
	if patch.Statut != nil {
		existing.Statut = patch.Statut
	}
	if patch.MontantTotal != nil {
		existing.MontantTotal = patch.MontantTotal
	}
	if patch.CarteBancaire != nil {
		existing.CarteBancaire = patch.CarteBancaire
	}
}
