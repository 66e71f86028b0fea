package settings

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for settings.
//
// Lookups by (category, key) without a tenant are global-scope: they match
// regardless of tenant_id. Tenant-scoped lookups match tenant_id exactly
// (including NULL when tenantID is nil).
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Setting, error)

	// FindAll returns every setting, optionally filtered to one category.
	// An empty category means no filter. Empty result is not an error.
	FindAll(ctx context.Context, category string) ([]Setting, error)

	// FindByCategoryAndKey returns the first setting matching category and
	// key regardless of tenant. Returns shared.ErrNotFound when absent.
	FindByCategoryAndKey(ctx context.Context, category, key string) (*Setting, error)

	// FindAllForTenant returns every setting whose tenant_id matches.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Setting, error)

	// FindForTenantByCategoryAndKey locates the unique row for the
	// (tenant, category, key) triple. Returns shared.ErrNotFound when absent.
	FindForTenantByCategoryAndKey(ctx context.Context, tenantID uuid.UUID, category, key string) (*Setting, error)

	// ExistsByCategoryAndKey reports whether any row has this category and
	// key, regardless of tenant.
	ExistsByCategoryAndKey(ctx context.Context, category, key string) (bool, error)

	// Save inserts or updates a setting by primary key.
	Save(ctx context.Context, setting *Setting) error

	// Delete removes a setting by ID. Returns shared.ErrNotFound when no
	// row was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
