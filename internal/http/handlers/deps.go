package handlers

import (
	"marketplace/internal/config"
	"marketplace/internal/repos"
	"marketplace/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	AccountHandler *AccountHandler
	AuthHandler    *AuthHandler
	ItemHandler    *ItemHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	accountRepo := repos.NewAccountRepo(db)
	categoryRepo := repos.NewCategoryRepo(db)
	itemRepo := repos.NewItemRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := services.NewAuthService(accountRepo, cfg.JWTSecret, cfg.TokenTTL)
	accountSvc := services.NewAccountService(accountRepo, itemRepo)
	catalogSvc := services.NewCatalogService(itemRepo, categoryRepo)
	cartSvc := services.NewCartService(cartRepo, itemRepo)
	orderSvc := services.NewOrderService(orderRepo, itemRepo, cartRepo)
	orderSvc.ClearCartOnOrder = cfg.ClearCartOnOrder

	return &Deps{
		Auth:           authSvc,
		AccountHandler: &AccountHandler{Auth: authSvc, Accounts: accountSvc},
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ItemHandler:    &ItemHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc, Catalog: catalogSvc},
	}
}
