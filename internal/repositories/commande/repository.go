package commande

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

// CommandeRepository defines the interface for order data access
type CommandeRepository interface {
	Create(ctx context.Context, commande *models.Commande) (*models.Commande, error)
	Update(ctx context.Context, commande *models.Commande) (*models.Commande, error)
	PartialUpdate(ctx context.Context, patch *models.Commande) (*models.Commande, error)
	FindAll(ctx context.Context) ([]*models.Commande, error)
	FindOne(ctx context.Context, id int64) (*models.Commande, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Repository implements CommandeRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
	rows   *sqlbuilder.Struct
}

// NewRepository creates a new order repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
		rows:   database.NewStruct(new(CommandeRow), db.Flavor()),
	}
}

// Create inserts a new order
func (r *Repository) Create(ctx context.Context, commande *models.Commande) (*models.Commande, error) {
	ctx, span := tracing.StartSpan(ctx, "CommandeRepository.Create")
	defer span.End()

	query, args := database.InsertReturningID(r.rows, commandesTable, FromCommande(commande))

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create commande")
		return nil, fmt.Errorf("failed to create commande: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("created commande")

	return r.FindOne(ctx, id)
}

// Update replaces every field of an existing order. It returns nil when the
// order does not exist.
func (r *Repository) Update(ctx context.Context, commande *models.Commande) (*models.Commande, error) {
	ctx, span := tracing.StartSpan(ctx, "CommandeRepository.Update")
	defer span.End()

	if commande.ID == nil {
		return nil, errors.New("commande id is required for update")
	}

	query, args := database.UpdateByID(r.rows, commandesTable, *commande.ID, FromCommande(commande))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update commande")
		return nil, fmt.Errorf("failed to update commande: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            *commande.ID,
		"rows_affected": rowsAffected,
	}).Info("updated commande")

	if rowsAffected == 0 {
		return nil, nil
	}
	return r.FindOne(ctx, *commande.ID)
}

// PartialUpdate applies the non-nil fields of patch
func (r *Repository) PartialUpdate(ctx context.Context, patch *models.Commande) (*models.Commande, error) {
	ctx, span := tracing.StartSpan(ctx, "CommandeRepository.PartialUpdate")
	defer span.End()

	if patch.ID == nil {
		return nil, errors.New("commande id is required for partial update")
	}

	existing, err := r.FindOne(ctx, *patch.ID)
	if err != nil || existing == nil {
		return nil, err
	}

	applyPatch(existing, patch)
	return r.Update(ctx, existing)
}

// FindAll returns every order ordered by id
func (r *Repository) FindAll(ctx context.Context) ([]*models.Commande, error) {
	ctx, span := tracing.StartSpan(ctx, "CommandeRepository.FindAll")
	defer span.End()

	sb := r.rows.SelectFrom(commandesTable)
	sb.OrderBy("id").Asc()
	query, args := sb.Build()

	var rows []CommandeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list commandes")
		return nil, fmt.Errorf("failed to list commandes: %w", err)
	}

	return ToCommandes(rows), nil
}

// FindOne returns the order with id, or nil
func (r *Repository) FindOne(ctx context.Context, id int64) (*models.Commande, error) {
	ctx, span := tracing.StartSpan(ctx, "CommandeRepository.FindOne")
	defer span.End()

	sb := r.rows.SelectFrom(commandesTable)
	sb.Where(sb.Equal("id", id))
	query, args := sb.Build()

	var row CommandeRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get commande by ID")
		return nil, fmt.Errorf("failed to get commande: %w", err)
	}

	return ToCommande(&row), nil
}

// ExistsByID reports whether an order with id exists
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "CommandeRepository.ExistsByID")
	defer span.End()

	return database.ExistsByID(ctx, r.db, r.db.Flavor(), commandesTable, id)
}

// Delete removes an order
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "CommandeRepository.Delete")
	defer span.End()

	rowsAffected, err := database.DeleteByID(ctx, r.db, r.db.Flavor(), commandesTable, id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete commande")
		return fmt.Errorf("failed to delete commande: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            id,
		"rows_affected": rowsAffected,
	}).Info("deleted commande")

	return nil
}
