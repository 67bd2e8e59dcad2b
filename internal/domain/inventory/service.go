package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/validate"
)

type Service struct {
	products Repository
}

func NewService(products Repository) *Service {
	return &Service{products: products}
}

func (s *Service) validate(p *Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return validate.Errorf("product name is required")
	}
	if strings.TrimSpace(p.SKU) == "" {
		return validate.Errorf("sku is required")
	}
	if p.UnitPrice < 0 {
		return validate.Errorf("unit_price must not be negative")
	}
	if p.StockLevel < 0 {
		return validate.Errorf("stock_level must not be negative")
	}
	p.SKU = strings.ToUpper(strings.TrimSpace(p.SKU))
	return nil
}

func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.products.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.products.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, query string, limit, offset int) ([]*Product, int, error) {
	return s.products.List(ctx, query, limit, offset)
}
