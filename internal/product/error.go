package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrNameRequired    = errors.New("product name is required")
	ErrNotShopOwner    = errors.New("product does not belong to your shop")
)
