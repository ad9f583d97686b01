package models

import "time"

// Avis is a customer review of a product.
type Avis struct {
	ID          *int64     `json:"id"`
	Note        *int       `json:"note" validate:"omitempty,min=0,max=5"`
	Commentaire *string    `json:"commentaire" validate:"omitempty,max=2000"`
	Date        *time.Time `json:"date"`
	Produit     *Produit   `json:"produit" validate:"-"`
}

// AvisIdentifier returns the identifier of a review.
func AvisIdentifier(a *Avis) (int64, bool) { return Identifier(a.ID) }

// CompareAvis reports whether two reviews are the same record.
func CompareAvis(a, b *Avis) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || SameIdentifier(a.ID, b.ID)
}
