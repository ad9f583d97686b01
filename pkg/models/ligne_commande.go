package models

// LigneCommande is one product line of an order.
type LigneCommande struct {
	ID       *int64    `json:"id"`
	Quantite *int      `json:"quantite" validate:"omitempty,gte=0"`
	Prix     *float32  `json:"prix" validate:"omitempty,gte=0"`
	Commande *Commande `json:"commande" validate:"-"`
	Produit  *Produit  `json:"produit" validate:"-"`
}

// LigneCommandeIdentifier returns the identifier of an order line.
func LigneCommandeIdentifier(l *LigneCommande) (int64, bool) { return Identifier(l.ID) }

// CompareLigneCommande reports whether two order lines are the same record.
func CompareLigneCommande(a, b *LigneCommande) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || SameIdentifier(a.ID, b.ID)
}
