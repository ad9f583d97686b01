package models

// CarteBancaire is a payment card attached to orders.
type CarteBancaire struct {
	ID             *int64  `json:"id"`
	Numero         *string `json:"numero" validate:"required,numeric,min=12,max=19"`
	Titulaire      *string `json:"titulaire" validate:"omitempty,max=100"`
	DateExpiration *string `json:"dateExpiration" validate:"omitempty,expiry"`
}

// CarteBancaireIdentifier returns the identifier of a card.
func CarteBancaireIdentifier(c *CarteBancaire) (int64, bool) { return Identifier(c.ID) }

// CompareCarteBancaire reports whether two cards are the same record.
func CompareCarteBancaire(a, b *CarteBancaire) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || SameIdentifier(a.ID, b.ID)
}
