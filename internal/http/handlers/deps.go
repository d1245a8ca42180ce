package handlers

import (
	"techreads/internal/backend"
	"techreads/internal/cart"
	"techreads/internal/credstore"
	"techreads/internal/services"
)

type Deps struct {
	BookHandler        *BookHandler
	CartHandler        *CartHandler
	TransactionHandler *TransactionHandler
	AuthHandler        *AuthHandler
	Auth               *services.AuthService
	Carts              *cart.Store
}

func NewDeps(api *backend.Client, carts *cart.Store, tokens *credstore.Store) *Deps {
	catalogSvc := services.NewCatalogService(api)
	bookSvc := services.NewBookService(api)
	checkoutSvc := services.NewCheckoutService(api, carts)
	historySvc := services.NewHistoryService(api)
	authSvc := services.NewAuthService(api, tokens)

	return &Deps{
		BookHandler:        &BookHandler{Catalog: catalogSvc, Books: bookSvc, Auth: authSvc},
		CartHandler:        &CartHandler{Catalog: catalogSvc, Carts: carts, Auth: authSvc},
		TransactionHandler: &TransactionHandler{Checkout: checkoutSvc, History: historySvc, Carts: carts, Auth: authSvc},
		AuthHandler:        &AuthHandler{Auth: authSvc, Carts: carts},
		Auth:               authSvc,
		Carts:              carts,
	}
}
