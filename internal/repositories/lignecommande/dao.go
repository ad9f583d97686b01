package lignecommande

import (
	"database/sql"

	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/models"
)

const ligneCommandesTable = "ligne_commandes"

// LigneCommandeRow represents the database row for an order line
type LigneCommandeRow struct {
	ID         int64           `db:"id" fieldtag:"pk"`
	Quantite   sql.NullInt64   `db:"quantite"`
	Prix       sql.NullFloat64 `db:"prix"`
	CommandeID sql.NullInt64   `db:"commande_id"`
	ProduitID  sql.NullInt64   `db:"produit_id"`
}

// FromLigneCommande converts a domain model to a database row
func FromLigneCommande(l *models.LigneCommande) *LigneCommandeRow {
	row := &LigneCommandeRow{
		Quantite: database.NullInt(l.Quantite),
		Prix:     database.NullFloat32(l.Prix),
	}
	if l.ID != nil {
		row.ID = *l.ID
	}
	if l.Commande != nil {
		row.CommandeID = database.NullID(l.Commande.ID)
	}
	if l.Produit != nil {
		row.ProduitID = database.NullID(l.Produit.ID)
	}
	return row
}

// ToLigneCommande converts a database row to a domain model
func ToLigneCommande(row *LigneCommandeRow) *models.LigneCommande {
	id := row.ID
	l := &models.LigneCommande{
		ID:       &id,
		Quantite: database.IntPtr(row.Quantite),
		Prix:     database.Float32Ptr(row.Prix),
	}
	if commandeID := database.IDPtr(row.CommandeID); commandeID != nil {
		l.Commande = &models.Commande{ID: commandeID}
	}
	if produitID := database.IDPtr(row.ProduitID); produitID != nil {
		l.Produit = &models.Produit{ID: produitID}
	}
	return l
}

// ToLigneCommandes converts a slice of database rows to domain models
func ToLigneCommandes(rows []LigneCommandeRow) []*models.LigneCommande {
	lignes := make([]*models.LigneCommande, len(rows))
	for i := range rows {
		lignes[i] = ToLigneCommande(&rows[i])
	}
	return lignes
}

func applyPatch(existing, patch *models.LigneCommande) {
	if patch.Quantite != nil {
		existing.Quantite = patch.Quantite
	}
	if patch.Prix != nil {
		existing.Prix = patch.Prix
	}
	if patch.Commande != nil {
		existing.Commande = patch.Commande
	}
	if patch.Produit != nil {
		existing.Produit = patch.Produit
	}
}
