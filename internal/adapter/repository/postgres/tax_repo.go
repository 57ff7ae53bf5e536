package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/infrastructure/postgres/generated"
)

// TaxRepository implements usecase.TaxRepository.
type TaxRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTaxRepository creates a new TaxRepository.
func NewTaxRepository(pool *pgxpool.Pool) *TaxRepository {
	return &TaxRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new tax definition.
func (r *TaxRepository) Create(ctx context.Context, def *domain.TaxDefinition) error {
	_, err := r.queries.CreateTax(ctx, generated.CreateTaxParams{
		ID:              def.ID,
		Name:            def.Name,
		Code:            def.Code,
		Rate:            decimalToNumeric(def.Rate),
		CalculationType: string(def.CalculationType),
		BaseType:        string(def.BaseType),
		IsActive:        def.IsActive,
		SortOrder:       def.Order,
		CreatedAt:       timeToPgTimestamptz(def.CreatedAt),
		UpdatedAt:       timeToPgTimestamptz(def.UpdatedAt),
	})

	return err
}

// Update rewrites an existing definition.
func (r *TaxRepository) Update(ctx context.Context, def *domain.TaxDefinition) error {
	return r.queries.UpdateTax(ctx, generated.UpdateTaxParams{
		ID:              def.ID,
		Name:            def.Name,
		Code:            def.Code,
		Rate:            decimalToNumeric(def.Rate),
		CalculationType: string(def.CalculationType),
		BaseType:        string(def.BaseType),
		SortOrder:       def.Order,
		UpdatedAt:       timeToPgTimestamptz(def.UpdatedAt),
	})
}

// GetByID retrieves a tax definition by ID.
func (r *TaxRepository) GetByID(ctx context.Context, id string) (*domain.TaxDefinition, error) {
	row, err := r.queries.GetTaxByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaxNotFound
		}

		return nil, err
	}

	return rowToTax(row), nil
}

// ListActive retrieves the active definitions in cascade order.
func (r *TaxRepository) ListActive(ctx context.Context) ([]*domain.TaxDefinition, error) {
	rows, err := r.queries.ListActiveTaxes(ctx)
	if err != nil {
		return nil, err
	}

	defs := make([]*domain.TaxDefinition, 0, len(rows))
	for _, row := range rows {
		defs = append(defs, rowToTax(row))
	}

	return defs, nil
}

// List retrieves definitions with pagination, inactive ones included.
func (r *TaxRepository) List(ctx context.Context, limit, offset int) ([]*domain.TaxDefinition, error) {
	rows, err := r.queries.ListTaxes(ctx, generated.ListTaxesParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	defs := make([]*domain.TaxDefinition, 0, len(rows))
	for _, row := range rows {
		defs = append(defs, rowToTax(row))
	}

	return defs, nil
}

// SetActive flips a definition's active flag.
func (r *TaxRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	return r.queries.SetTaxActive(ctx, generated.SetTaxActiveParams{
		ID:        id,
		IsActive:  active,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

func rowToTax(row generated.Tax) *domain.TaxDefinition {
	return &domain.TaxDefinition{
		ID:              row.ID,
		Name:            row.Name,
		Code:            row.Code,
		Rate:            numericToDecimal(row.Rate),
		CalculationType: domain.TaxCalculationType(row.CalculationType),
		BaseType:        domain.TaxBaseType(row.BaseType),
		IsActive:        row.IsActive,
		Order:           row.SortOrder,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func pgTimestamptzToTimePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}

	t := ts.Time

	return &t
}

func strToPgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func strPtrToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: *s, Valid: true}
}

func pgTextToStrPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}

	s := t.String

	return &s
}
