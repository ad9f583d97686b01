package models

// Admin is a back office account.
type Admin struct {
	ID          *int64  `json:"id"`
	Identifiant *string `json:"identifiant" validate:"required,min=3,max=50"`
	// MotDePasse is write only: it is hashed on save and never returned.
	MotDePasse *string `json:"motDePasse,omitempty" validate:"omitempty,min=8,max=100"`
}

// AdminIdentifier returns the identifier of an admin.
func AdminIdentifier(a *Admin) (int64, bool) { return Identifier(a.ID) }

// CompareAdmin reports whether two admins are the same record.
func CompareAdmin(a, b *Admin) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || SameIdentifier(a.ID, b.ID)
}
