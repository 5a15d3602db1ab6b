// Package bar manages the concession catalog and its stock levels.
package bar

import (
	"strings"

	"cinemabackend/internal/data"
	"cinemabackend/internal/logger"
)

// Service validates bar selections against the product catalog and keeps
// stock levels current. Prices are always resolved server-side from the
// catalog, never trusted from the client.
type Service struct {
	products data.ProductRepository
}

func NewService(products data.ProductRepository) *Service {
	return &Service{products: products}
}

func (s *Service) GetProducts() ([]data.Product, error) {
	return s.products.List()
}

func (s *Service) GetProduct(id int) (*data.Product, error) {
	return s.products.GetByID(id)
}

// ResolveItems validates a selection and fills in catalog names and prices.
// Returns the resolved items and the bar total (sum of quantity*price,
// rounded to cents).
func (s *Service) ResolveItems(selection []data.BarItem) ([]data.BarItem, float64, error) {
	if len(selection) == 0 {
		return []data.BarItem{}, 0, nil
	}

	catalog, err := s.products.List()
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int]data.Product, len(catalog))
	for _, product := range catalog {
		byID[product.ID] = product
	}

	resolved := make([]data.BarItem, 0, len(selection))
	total := 0.0
	for _, item := range selection {
		product, exists := byID[item.ID]
		if !exists {
			return nil, 0, data.Validationf("invalid bar item: %d", item.ID)
		}
		if item.Quantity <= 0 {
			return nil, 0, data.Validationf("bar item %s must have a positive quantity", product.Name)
		}
		resolved = append(resolved, data.BarItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: item.Quantity,
		})
		total += product.Price * float64(item.Quantity)
	}

	return resolved, RoundCents(total), nil
}

// DecrementStock reduces stock for every purchased item. Stock floors at 0,
// it never goes negative. Unknown products are skipped with a warning rather
// than failing a purchase that already went through.
func (s *Service) DecrementStock(items []data.BarItem) error {
	for _, item := range items {
		product, err := s.products.GetByID(item.ID)
		if err != nil {
			if data.IsNotFound(err) {
				logger.LogWarn("Stock decrement skipped for unknown product %d", item.ID)
				continue
			}
			return err
		}
		product.Stock -= item.Quantity
		if product.Stock < 0 {
			product.Stock = 0
		}
		if err := s.products.Update(*product); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) CreateProduct(product data.Product) (data.Product, error) {
	if err := validateProduct(product); err != nil {
		return data.Product{}, err
	}
	return s.products.Insert(product)
}

func (s *Service) UpdateProduct(product data.Product) (data.Product, error) {
	if err := validateProduct(product); err != nil {
		return data.Product{}, err
	}
	if err := s.products.Update(product); err != nil {
		return data.Product{}, err
	}
	return product, nil
}

func (s *Service) DeleteProduct(id int) error {
	return s.products.Delete(id)
}

func validateProduct(product data.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return data.Validationf("product name is required")
	}
	if product.Price < 0 {
		return data.Validationf("product price cannot be negative")
	}
	if product.Stock < 0 {
		return data.Validationf("product stock cannot be negative")
	}
	return nil
}

// RoundCents rounds to 2 decimal places to prevent floating point issues.
func RoundCents(amount float64) float64 {
	return float64(int(amount*100+0.5)) / 100
}
