package models

// Produit is a product of the catalog.
type Produit struct {
	ID          *int64   `json:"id"`
	Nom         *string  `json:"nom" validate:"required,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Prix        *float32 `json:"prix" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Categorie   *string  `json:"categorie" validate:"omitempty,max=100"`
	// Gestionnaires are the admins managing the product (many-to-many).
	// Only id and identifiant are populated on reads.
	Gestionnaires []*Admin `json:"gestionnaires,omitempty"`
}

// ProduitIdentifier returns the identifier of a product.
func ProduitIdentifier(p *Produit) (int64, bool) { return Identifier(p.ID) }

// CompareProduit reports whether two products are the same record.
func CompareProduit(a, b *Produit) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || SameIdentifier(a.ID, b.ID)
}

// ProduitCriteria filters the product list. Nil fields do not filter.
type ProduitCriteria struct {
	NomContains            *string
	CategorieEquals        *string
	PrixGreaterThanOrEqual *float32
	PrixLessThanOrEqual    *float32
	StockGreaterThan       *int
	GestionnairesIDEquals  *int64
	IDIn                   []int64
}

// IsEmpty reports whether no criterion is set.
func (c ProduitCriteria) IsEmpty() bool {
	return c.NomContains == nil && c.CategorieEquals == nil &&
		c.PrixGreaterThanOrEqual == nil && c.PrixLessThanOrEqual == nil &&
		c.StockGreaterThan == nil && c.GestionnairesIDEquals == nil && len(c.IDIn) == 0
}
