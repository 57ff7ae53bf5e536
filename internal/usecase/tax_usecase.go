package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/infrastructure/metrics"
)

// TaxUseCase manages the administrator-facing tax definition lifecycle.
// Definitions are never deleted, only deactivated, so historical line item
// snapshots keep a resolvable tax id.
type TaxUseCase struct {
	taxRepo TaxRepository
	cache   Cache
	idGen   IDGenerator
	metrics *metrics.Metrics
}

// NewTaxUseCase creates a new TaxUseCase.
func NewTaxUseCase(taxRepo TaxRepository, cache Cache, idGen IDGenerator, metrics *metrics.Metrics) *TaxUseCase {
	return &TaxUseCase{
		taxRepo: taxRepo,
		cache:   cache,
		idGen:   idGen,
		metrics: metrics,
	}
}

// CreateTaxInput represents input for creating a tax definition.
type CreateTaxInput struct {
	Name            string
	Code            string
	Rate            decimal.Decimal
	CalculationType domain.TaxCalculationType
	BaseType        domain.TaxBaseType
	Order           int32
}

// CreateTax creates an active tax definition.
func (uc *TaxUseCase) CreateTax(ctx context.Context, input CreateTaxInput) (*domain.TaxDefinition, error) {
	now := time.Now().UTC()

	def := &domain.TaxDefinition{
		ID:              uc.idGen.Generate(),
		Name:            input.Name,
		Code:            input.Code,
		Rate:            input.Rate,
		CalculationType: input.CalculationType,
		BaseType:        input.BaseType,
		IsActive:        true,
		Order:           input.Order,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	if err := uc.taxRepo.Create(ctx, def); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)

	return def, nil
}

// UpdateTaxInput represents input for updating a tax definition.
type UpdateTaxInput struct {
	Name            string
	Code            string
	Rate            decimal.Decimal
	CalculationType domain.TaxCalculationType
	BaseType        domain.TaxBaseType
	Order           int32
}

// UpdateTax edits a definition. Historical line items are snapshots and are
// not touched.
func (uc *TaxUseCase) UpdateTax(ctx context.Context, id string, input UpdateTaxInput) (*domain.TaxDefinition, error) {
	def, err := uc.taxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	def.Name = input.Name
	def.Code = input.Code
	def.Rate = input.Rate
	def.CalculationType = input.CalculationType
	def.BaseType = input.BaseType
	def.Order = input.Order
	def.UpdatedAt = time.Now().UTC()

	if err := def.Validate(); err != nil {
		return nil, err
	}

	if err := uc.taxRepo.Update(ctx, def); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)

	return def, nil
}

// DeactivateTax removes a definition from the cascade without deleting it.
func (uc *TaxUseCase) DeactivateTax(ctx context.Context, id string) error {
	if _, err := uc.taxRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.taxRepo.SetActive(ctx, id, false, time.Now().UTC()); err != nil {
		return err
	}

	uc.invalidate(ctx)

	return nil
}

// GetTax retrieves a definition by ID.
func (uc *TaxUseCase) GetTax(ctx context.Context, id string) (*domain.TaxDefinition, error) {
	return uc.taxRepo.GetByID(ctx, id)
}

// ListTaxes lists definitions with pagination, inactive ones included.
func (uc *TaxUseCase) ListTaxes(ctx context.Context, limit, offset int) ([]*domain.TaxDefinition, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.taxRepo.List(ctx, limit, offset)
}

// ListActiveTaxes returns the active definitions in cascade order. The list
// is cached; every write through this use case invalidates it.
func (uc *TaxUseCase) ListActiveTaxes(ctx context.Context) ([]*domain.TaxDefinition, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, ActiveTaxCacheKey); err == nil && len(data) > 0 {
			var defs []*domain.TaxDefinition
			if err := json.Unmarshal(data, &defs); err == nil {
				uc.countCache(true)
				return defs, nil
			}
		}
		uc.countCache(false)
	}

	defs, err := uc.taxRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(defs); err == nil {
			_ = uc.cache.Set(ctx, ActiveTaxCacheKey, data, ActiveTaxCacheTTL)
		}
	}

	return defs, nil
}

func (uc *TaxUseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, ActiveTaxCacheKey)
	}
}

func (uc *TaxUseCase) countCache(hit bool) {
	if uc.metrics == nil {
		return
	}

	if hit {
		uc.metrics.CacheHits.WithLabelValues("active_taxes").Inc()
	} else {
		uc.metrics.CacheMisses.WithLabelValues("active_taxes").Inc()
	}
}
