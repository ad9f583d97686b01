package models

import "time"

// StatutCommande is the lifecycle state of an order.
type StatutCommande string

const (
	StatutEnAttente StatutCommande = "EN_ATTENTE"
	StatutValidee   StatutCommande = "VALIDEE"
	StatutExpediee  StatutCommande = "EXPEDIEE"
	StatutLivree    StatutCommande = "LIVREE"
	StatutAnnulee   StatutCommande = "ANNULEE"
)

// StatutsCommande lists every order state.
var StatutsCommande = []StatutCommande{StatutEnAttente, StatutValidee, StatutExpediee, StatutLivree, StatutAnnulee}

// Commande is a customer order.
type Commande struct {
	ID            *int64          `json:"id"`
	DateCommande  *time.Time      `json:"dateCommande"`
	Statut        *StatutCommande `json:"statut" validate:"omitempty,oneof=EN_ATTENTE VALIDEE EXPEDIEE LIVREE ANNULEE"`
	MontantTotal  *float32        `json:"montantTotal" validate:"omitempty,gte=0"`
	CarteBancaire *CarteBancaire  `json:"carteBancaire" validate:"-"`
}

// CommandeIdentifier returns the identifier of an order.
func CommandeIdentifier(c *Commande) (int64, bool) { return Identifier(c.ID) }

// CompareCommande reports whether two orders are the same record.
func CompareCommande(a, b *Commande) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || SameIdentifier(a.ID, b.ID)
}
