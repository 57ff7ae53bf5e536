package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ozgun/fincore/internal/adapter/http/dto"
	"github.com/ozgun/fincore/internal/domain"
	"github.com/ozgun/fincore/internal/usecase"
)

type taxServiceStub struct {
	createFn     func(ctx context.Context, input usecase.CreateTaxInput) (*domain.TaxDefinition, error)
	updateFn     func(ctx context.Context, id string, input usecase.UpdateTaxInput) (*domain.TaxDefinition, error)
	deactivateFn func(ctx context.Context, id string) error
	getFn        func(ctx context.Context, id string) (*domain.TaxDefinition, error)
	listFn       func(ctx context.Context, limit, offset int) ([]*domain.TaxDefinition, error)
	listActiveFn func(ctx context.Context) ([]*domain.TaxDefinition, error)
}

func (s *taxServiceStub) CreateTax(ctx context.Context, input usecase.CreateTaxInput) (*domain.TaxDefinition, error) {
	return s.createFn(ctx, input)
}

func (s *taxServiceStub) UpdateTax(ctx context.Context, id string, input usecase.UpdateTaxInput) (*domain.TaxDefinition, error) {
	return s.updateFn(ctx, id, input)
}

func (s *taxServiceStub) DeactivateTax(ctx context.Context, id string) error {
	return s.deactivateFn(ctx, id)
}

func (s *taxServiceStub) GetTax(ctx context.Context, id string) (*domain.TaxDefinition, error) {
	return s.getFn(ctx, id)
}

func (s *taxServiceStub) ListTaxes(ctx context.Context, limit, offset int) ([]*domain.TaxDefinition, error) {
	return s.listFn(ctx, limit, offset)
}

func (s *taxServiceStub) ListActiveTaxes(ctx context.Context) ([]*domain.TaxDefinition, error) {
	return s.listActiveFn(ctx)
}

func TestTaxHandler_Create_Success(t *testing.T) {
	kdv := &domain.TaxDefinition{
		ID:              "tax-1",
		Name:            "KDV %20",
		Code:            "kdv20",
		Rate:            decimal.NewFromInt(20),
		CalculationType: domain.TaxCalculationPercentage,
		BaseType:        domain.TaxBaseAmount,
		IsActive:        true,
	}

	var captured usecase.CreateTaxInput
	handler := NewTaxHandler(&taxServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTaxInput) (*domain.TaxDefinition, error) {
			captured = input
			return kdv, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTaxRequest{
		Name:            "KDV %20",
		Code:            "kdv20",
		Rate:            decimal.NewFromInt(20),
		CalculationType: "percentage",
		BaseType:        "amount",
	})

	req := httptest.NewRequest(http.MethodPost, "/taxes", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Code != "kdv20" || captured.CalculationType != domain.TaxCalculationPercentage {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.TaxResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "tax-1" {
		t.Fatalf("expected tax ID tax-1, got %s", resp.ID)
	}
}

func TestTaxHandler_Create_Misconfigured(t *testing.T) {
	handler := NewTaxHandler(&taxServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTaxInput) (*domain.TaxDefinition, error) {
			return nil, domain.ErrTaxConfiguration
		},
	})

	body, _ := json.Marshal(dto.CreateTaxRequest{Name: "broken", CalculationType: "compound"})
	req := httptest.NewRequest(http.MethodPost, "/taxes", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaxHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewTaxHandler(&taxServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTaxInput) (*domain.TaxDefinition, error) {
			t.Fatal("CreateTax should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/taxes", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaxHandler_Get_NotFound(t *testing.T) {
	handler := NewTaxHandler(&taxServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.TaxDefinition, error) {
			return nil, domain.ErrTaxNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/taxes/tax-1", nil)
	req = setChiURLParam(req, "id", "tax-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTaxHandler_List_Active(t *testing.T) {
	handler := NewTaxHandler(&taxServiceStub{
		listActiveFn: func(ctx context.Context) ([]*domain.TaxDefinition, error) {
			return []*domain.TaxDefinition{{ID: "tax-1"}, {ID: "tax-2"}}, nil
		},
		listFn: func(ctx context.Context, limit, offset int) ([]*domain.TaxDefinition, error) {
			t.Fatal("ListTaxes should not be called when active=true")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/taxes?active=true", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListTaxesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Taxes) != 2 {
		t.Fatalf("expected 2 taxes, got %d", len(resp.Taxes))
	}
}

func TestTaxHandler_List_Paged(t *testing.T) {
	handler := NewTaxHandler(&taxServiceStub{
		listFn: func(ctx context.Context, limit, offset int) ([]*domain.TaxDefinition, error) {
			if limit != 5 || offset != 2 {
				t.Fatalf("expected limit=5 offset=2, got limit=%d offset=%d", limit, offset)
			}
			return []*domain.TaxDefinition{{ID: "tax-1"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/taxes?limit=5&offset=2", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaxHandler_Deactivate(t *testing.T) {
	var deactivated string
	handler := NewTaxHandler(&taxServiceStub{
		deactivateFn: func(ctx context.Context, id string) error {
			deactivated = id
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/taxes/tax-1", nil)
	req = setChiURLParam(req, "id", "tax-1")
	rec := httptest.NewRecorder()

	handler.Deactivate(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deactivated != "tax-1" {
		t.Fatalf("expected tax-1 to be deactivated, got %q", deactivated)
	}
}

func TestTaxHandler_Update_ServiceError(t *testing.T) {
	handler := NewTaxHandler(&taxServiceStub{
		updateFn: func(ctx context.Context, id string, input usecase.UpdateTaxInput) (*domain.TaxDefinition, error) {
			return nil, errors.New("db error")
		},
	})

	body, _ := json.Marshal(dto.UpdateTaxRequest{Name: "KDV %18"})
	req := httptest.NewRequest(http.MethodPut, "/taxes/tax-1", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "tax-1")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
