package produit

import (
	"database/sql"

	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/models"
)

const (
	produitsTable      = "produits"
	gestionnairesTable = "produit_gestionnaires"
)

// ProduitRow represents the database row for a product
type ProduitRow struct {
	ID          int64           `db:"id" fieldtag:"pk"`
	Nom         sql.NullString  `db:"nom"`
	Description sql.NullString  `db:"description"`
	Prix        sql.NullFloat64 `db:"prix"`
	Stock       sql.NullInt64   `db:"stock"`
	Categorie   sql.NullString  `db:"categorie"`
}

// GestionnaireRow is one admin managing a product, joined with the admin.
type GestionnaireRow struct {
	ProduitID   int64          `db:"produit_id"`
	AdminID     int64          `db:"admin_id"`
	Identifiant sql.NullString `db:"identifiant"`
}

// FromProduit converts a domain model to a database row
func FromProduit(p *models.Produit) *ProduitRow {
	row := &ProduitRow{
		Nom:         database.NullString(p.Nom),
		Description: database.NullString(p.Description),
		Prix:        database.NullFloat32(p.Prix),
		Stock:       database.NullInt(p.Stock),
		Categorie:   database.NullString(p.Categorie),
	}
	if p.ID != nil {
		row.ID = *p.ID
	}
	return row
}

// ToProduit converts a database row and its managers to a domain model
func ToProduit(row *ProduitRow, gestionnaires []GestionnaireRow) *models.Produit {
	id := row.ID
	p := &models.Produit{
		ID:          &id,
		Nom:         database.StringPtr(row.Nom),
		Description: database.StringPtr(row.Description),
		Prix:        database.Float32Ptr(row.Prix),
		Stock:       database.IntPtr(row.Stock),
		Categorie:   database.StringPtr(row.Categorie),
	}
	for _, g := range gestionnaires {
		adminID := g.AdminID
		p.Gestionnaires = append(p.Gestionnaires, &models.Admin{
			ID:          &adminID,
			Identifiant: database.StringPtr(g.Identifiant),
		})
	}
	return p
}

// gestionnaireIDs returns the distinct persisted admin ids of a product, in order.
func gestionnaireIDs(p *models.Produit) []int64 {
	seen := make(map[int64]bool, len(p.Gestionnaires))
	var ids []int64
	for _, admin := range p.Gestionnaires {
		if admin == nil || admin.ID == nil || seen[*admin.ID] {
			continue
		}
		seen[*admin.ID] = true
		ids = append(ids, *admin.ID)
	}
	return ids
}

func applyPatch(existing, patch *models.Produit) {
	if patch.Nom != nil {
		existing.Nom = patch.Nom
	}
	if patch.Description != nil {
		existing.Description = patch.Description
	}
	if patch.Prix != nil {
		existing.Prix = patch.Prix
	}
	if patch.Stock != nil {
		existing.Stock = patch.Stock
	}
	if patch.Categorie != nil {
		existing.Categorie = patch.Categorie
	}
	if patch.Gestionnaires != nil {
		existing.Gestionnaires = patch.Gestionnaires
	}
}
