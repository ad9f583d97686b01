package lignecommande

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/tracing"
)

// LigneCommandeRepository defines the interface for order line data access
type LigneCommandeRepository interface {
	Create(ctx context.Context, ligne *models.LigneCommande) (*models.LigneCommande, error)
	Update(ctx context.Context, ligne *models.LigneCommande) (*models.LigneCommande, error)
	PartialUpdate(ctx context.Context, patch *models.LigneCommande) (*models.LigneCommande, error)
	FindAll(ctx context.Context) ([]*models.LigneCommande, error)
	FindOne(ctx context.Context, id int64) (*models.LigneCommande, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Repository implements LigneCommandeRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
	rows   *sqlbuilder.Struct
}

// NewRepository creates a new order line repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
		rows:   database.NewStruct(new(LigneCommandeRow), db.Flavor()),
	}
}

// Create inserts a new order line
func (r *Repository) Create(ctx context.Context, ligne *models.LigneCommande) (*models.LigneCommande, error) {
	ctx, span := tracing.StartSpan(ctx, "LigneCommandeRepository.Create")
	defer span.End()

	query, args := database.InsertReturningID(r.rows, ligneCommandesTable, FromLigneCommande(ligne))

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create ligne commande")
		return nil, fmt.Errorf("failed to create ligne commande: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("created ligne commande")

	return r.FindOne(ctx, id)
}

// Update replaces every field of an existing order line. It returns nil when the
// order line does not exist.
func (r *Repository) Update(ctx context.Context, ligne *models.LigneCommande) (*models.LigneCommande, error) {
	ctx, span := tracing.StartSpan(ctx, "LigneCommandeRepository.Update")
	defer span.End()

	if ligne.ID == nil {
		return nil, errors.New("ligne commande id is required for update")
	}

	query, args := database.UpdateByID(r.rows, ligneCommandesTable, *ligne.ID, FromLigneCommande(ligne))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update ligne commande")
		return nil, fmt.Errorf("failed to update ligne commande: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            *ligne.ID,
		"rows_affected": rowsAffected,
	}).Info("updated ligne commande")

	if rowsAffected == 0 {
		return nil, nil
	}
	return r.FindOne(ctx, *ligne.ID)
}

// PartialUpdate applies the non-nil fields of patch
func (r *Repository) PartialUpdate(ctx context.Context, patch *models.LigneCommande) (*models.LigneCommande, error) {
	ctx, span := tracing.StartSpan(ctx, "LigneCommandeRepository.PartialUpdate")
	defer span.End()

	if patch.ID == nil {
		return nil, errors.New("ligne commande id is required for partial update")
	}

	existing, err := r.FindOne(ctx, *patch.ID)
	if err != nil || existing == nil {
		return nil, err
	}

	applyPatch(existing, patch)
	return r.Update(ctx, existing)
}

// FindAll returns every order line ordered by id
func (r *Repository) FindAll(ctx context.Context) ([]*models.LigneCommande, error) {
	ctx, span := tracing.StartSpan(ctx, "LigneCommandeRepository.FindAll")
	defer span.End()

	sb := r.rows.SelectFrom(ligneCommandesTable)
	sb.OrderBy("id").Asc()
	query, args := sb.Build()

	var rows []LigneCommandeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list ligne commandes")
		return nil, fmt.Errorf("failed to list ligne commandes: %w", err)
	}

	return ToLigneCommandes(rows), nil
}

// FindOne returns the order line with id, or nil
func (r *Repository) FindOne(ctx context.Context, id int64) (*models.LigneCommande, error) {
	ctx, span := tracing.StartSpan(ctx, "LigneCommandeRepository.FindOne")
	defer span.End()

	sb := r.rows.SelectFrom(ligneCommandesTable)
	sb.Where(sb.Equal("id", id))
	query, args := sb.Build()

	var row LigneCommandeRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get ligne commande by ID")
		return nil, fmt.Errorf("failed to get ligne commande: %w", err)
	}

	return ToLigneCommande(&row), nil
}

// ExistsByID reports whether an order line with id exists
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "LigneCommandeRepository.ExistsByID")
	defer span.End()

	return database.ExistsByID(ctx, r.db, r.db.Flavor(), ligneCommandesTable, id)
}

// Delete removes an order line
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "LigneCommandeRepository.Delete")
	defer span.End()

	rowsAffected, err := database.DeleteByID(ctx, r.db, r.db.Flavor(), ligneCommandesTable, id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete ligne commande")
		return fmt.Errorf("failed to delete ligne commande: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            id,
		"rows_affected": rowsAffected,
	}).Info("deleted ligne commande")

	return nil
}
