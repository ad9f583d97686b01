package cartebancaire

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

// CarteBancaireRepository defines the interface for card data access
type CarteBancaireRepository interface {
	Create(ctx context.Context, carte *models.CarteBancaire) (*models.CarteBancaire, error)
	Update(ctx context.Context, carte *models.CarteBancaire) (*models.CarteBancaire, error)
	PartialUpdate(ctx context.Context, patch *models.CarteBancaire) (*models.CarteBancaire, error)
	FindAll(ctx context.Context) ([]*models.CarteBancaire, error)
	FindOne(ctx context.Context, id int64) (*models.CarteBancaire, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Repository implements CarteBancaireRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
	rows   *sqlbuilder.Struct
}

// NewRepository creates a new card repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
		rows:   database.NewStruct(new(CarteBancaireRow), db.Flavor()),
	}
}

// Create inserts a new card
func (r *Repository) Create(ctx context.Context, carte *models.CarteBancaire) (*models.CarteBancaire, error) {
	ctx, span := tracing.StartSpan(ctx, "CarteBancaireRepository.Create")
	defer span.End()

	query, args := database.InsertReturningID(r.rows, carteBancairesTable, FromCarteBancaire(carte))

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create carte bancaire")
		return nil, fmt.Errorf("failed to create carte bancaire: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("created carte bancaire")

	return r.FindOne(ctx, id)
}

// Update replaces every field of an existing card. It returns nil when the
// card does not exist.
func (r *Repository) Update(ctx context.Context, carte *models.CarteBancaire) (*models.CarteBancaire, error) {
	ctx, span := tracing.StartSpan(ctx, "CarteBancaireRepository.Update")
	defer span.End()

	if carte.ID == nil {
		return nil, errors.New("carte bancaire id is required for update")
	}

	query, args := database.UpdateByID(r.rows, carteBancairesTable, *carte.ID, FromCarteBancaire(carte))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update carte bancaire")
		return nil, fmt.Errorf("failed to update carte bancaire: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            *carte.ID,
		"rows_affected": rowsAffected,
	}).Info("updated carte bancaire")

	if rowsAffected == 0 {
		return nil, nil
	}
	return r.FindOne(ctx, *carte.ID)
}

// PartialUpdate applies the non-nil fields of patch
func (r *Repository) PartialUpdate(ctx context.Context, patch *models.CarteBancaire) (*models.CarteBancaire, error) {
	ctx, span := tracing.StartSpan(ctx, "CarteBancaireRepository.PartialUpdate")
	defer span.End()

	if patch.ID == nil {
		return nil, errors.New("carte bancaire id is required for partial update")
	}

	existing, err := r.FindOne(ctx, *patch.ID)
	if err != nil || existing == nil {
		return nil, err
	}

	applyPatch(existing, patch)
	return r.Update(ctx, existing)
}

// FindAll returns every card ordered by id
func (r *Repository) FindAll(ctx context.Context) ([]*models.CarteBancaire, error) {
	ctx, span := tracing.StartSpan(ctx, "CarteBancaireRepository.FindAll")
	defer span.End()

	sb := r.rows.SelectFrom(carteBancairesTable)
	sb.OrderBy("id").Asc()
	query, args := sb.Build()

	var rows []CarteBancaireRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list cartes bancaires")
		return nil, fmt.Errorf("failed to list cartes bancaires: %w", err)
	}

	return ToCarteBancaires(rows), nil
}

// FindOne returns the card with id, or nil
func (r *Repository) FindOne(ctx context.Context, id int64) (*models.CarteBancaire, error) {
	ctx, span := tracing.StartSpan(ctx, "CarteBancaireRepository.FindOne")
	defer span.End()

	sb := r.rows.SelectFrom(carteBancairesTable)
	sb.Where(sb.Equal("id", id))
	query, args := sb.Build()

	var row CarteBancaireRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get carte bancaire by ID")
		return nil, fmt.Errorf("failed to get carte bancaire: %w", err)
	}

	return ToCarteBancaire(&row), nil
}

// ExistsByID reports whether a card with id exists
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "CarteBancaireRepository.ExistsByID")
	defer span.End()

	return database.ExistsByID(ctx, r.db, r.db.Flavor(), carteBancairesTable, id)
}

// Delete removes a card
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "CarteBancaireRepository.Delete")
	defer span.End()

	rowsAffected, err := database.DeleteByID(ctx, r.db, r.db.Flavor(), carteBancairesTable, id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete carte bancaire")
		return fmt.Errorf("failed to delete carte bancaire: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            id,
		"rows_affected": rowsAffected,
	}).Info("deleted carte bancaire")

	return nil
}
