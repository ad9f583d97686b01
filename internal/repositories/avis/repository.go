package avis

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

// AvisRepository defines the interface for review data access
type AvisRepository interface {
	Create(ctx context.Context, avis *models.Avis) (*models.Avis, error)
	Update(ctx context.Context, avis *models.Avis) (*models.Avis, error)
	PartialUpdate(ctx context.Context, patch *models.Avis) (*models.Avis, error)
	FindAll(ctx context.Context) ([]*models.Avis, error)
	FindOne(ctx context.Context, id int64) (*models.Avis, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Repository implements AvisRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
	rows   *sqlbuilder.Struct
}

// NewRepository creates a new review repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
		rows:   database.NewStruct(new(AvisRow), db.Flavor()),
	}
}

// Create inserts a new review
func (r *Repository) Create(ctx context.Context, avis *models.Avis) (*models.Avis, error) {
	ctx, span := tracing.StartSpan(ctx, "AvisRepository.Create")
	defer span.End()

	query, args := database.InsertReturningID(r.rows, avisTable, FromAvis(avis))

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create avis")
		return nil, fmt.Errorf("failed to create avis: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("created avis")

	return r.FindOne(ctx, id)
}

// Update replaces every field of an existing review. It returns nil when the
// review does not exist.
func (r *Repository) Update(ctx context.Context, avis *models.Avis) (*models.Avis, error) {
	ctx, span := tracing.StartSpan(ctx, "AvisRepository.Update")
	defer span.End()

	if avis.ID == nil {
		return nil, errors.New("avis id is required for update")
	}

	query, args := database.UpdateByID(r.rows, avisTable, *avis.ID, FromAvis(avis))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update avis")
		return nil, fmt.Errorf("failed to update avis: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            *avis.ID,
		"rows_affected": rowsAffected,
	}).Info("updated avis")

	if rowsAffected == 0 {
		return nil, nil
	}
	return r.FindOne(ctx, *avis.ID)
}

// PartialUpdate applies the non-nil fields of patch
func (r *Repository) PartialUpdate(ctx context.Context, patch *models.Avis) (*models.Avis, error) {
	ctx, span := tracing.StartSpan(ctx, "AvisRepository.PartialUpdate")
	defer span.End()

	if patch.ID == nil {
		return nil, errors.New("avis id is required for partial update")
	}

	existing, err := r.FindOne(ctx, *patch.ID)
	if err != nil || existing == nil {
		return nil, err
	}

	applyPatch(existing, patch)
	return r.Update(ctx, existing)
}

// FindAll returns every review ordered by id
func (r *Repository) FindAll(ctx context.Context) ([]*models.Avis, error) {
	ctx, span := tracing.StartSpan(ctx, "AvisRepository.FindAll")
	defer span.End()

	sb := r.rows.SelectFrom(avisTable)
	sb.OrderBy("id").Asc()
	query, args := sb.Build()

	var rows []AvisRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list avis")
		return nil, fmt.Errorf("failed to list avis: %w", err)
	}

	return ToAvisList(rows), nil
}

// FindOne returns the review with id, or nil
func (r *Repository) FindOne(ctx context.Context, id int64) (*models.Avis, error) {
	ctx, span := tracing.StartSpan(ctx, "AvisRepository.FindOne")
	defer span.End()

	sb := r.rows.SelectFrom(avisTable)
	sb.Where(sb.Equal("id", id))
	query, args := sb.Build()

	var row AvisRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get avis by ID")
		return nil, fmt.Errorf("failed to get avis: %w", err)
	}

	return ToAvis(&row), nil
}

// ExistsByID reports whether a review with id exists
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "AvisRepository.ExistsByID")
	defer span.End()

	return database.ExistsByID(ctx, r.db, r.db.Flavor(), avisTable, id)
}

// Delete removes a review
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "AvisRepository.Delete")
	defer span.End()

	rowsAffected, err := database.DeleteByID(ctx, r.db, r.db.Flavor(), avisTable, id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete avis")
		return fmt.Errorf("failed to delete avis: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            id,
		"rows_affected": rowsAffected,
	}).Info("deleted avis")

	return nil
}
