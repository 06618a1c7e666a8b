package httpserver

import (
	"context"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/storage"
	"storefront-gateway/internal/wordpress"
)

// Catalog serves product reads from the upstream store.
type Catalog interface {
	Products(ctx context.Context, categorySlug string) ([]domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
}

// Authenticator handles account flows against the upstream store.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*wordpress.Session, error)
	Register(ctx context.Context, in wordpress.RegisterInput) (*wordpress.Session, error)
	Refresh(ctx context.Context, token string) (string, int64, error)
	ForgotPassword(ctx context.Context, email string)
}

// FormSender delivers newsletter signups and contact submissions upstream.
type FormSender interface {
	Subscribe(ctx context.Context, email string) (bool, error)
	SendContact(ctx context.Context, in wordpress.ContactInput) error
}

// CheckoutLinker builds the upstream checkout redirect for cart lines.
type CheckoutLinker interface {
	CheckoutURL(items []wordpress.CheckoutItem) (string, error)
	BaseURL() string
}

// Deps carries the collaborators handlers need. Store backs the per-session
// cart and wishlist collections.
type Deps struct {
	Catalog  Catalog
	Auth     Authenticator
	Forms    FormSender
	Checkout CheckoutLinker
	Store    storage.Adapter

	AllowedOrigins []string
}
