package models

import (
	"context"

	"github.com/supabase-community/postgrest-go"
)

type PackageRepo interface {
	ListPackages(ctx context.Context) ([]Package, error)
	GetPackage(ctx context.Context, id string) (*Package, error)
	CreatePackage(ctx context.Context, pkg *Package) (*Package, error)
	UpdatePackage(ctx context.Context, id string, fields map[string]any) (*Package, error)
	DeletePackage(ctx context.Context, id string) error
}

func (su *SupabaseRepo) ListPackages(ctx context.Context) ([]Package, error) {
	return selectRows[Package](ctx, su, PackagesTable, PackageFields, func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Order(PackageFields.Column("createdAt"), newestFirst)
	})
}

func (su *SupabaseRepo) GetPackage(ctx context.Context, id string) (*Package, error) {
	return selectByID[Package](ctx, su, PackagesTable, PackageFields, id, "Package")
}

func (su *SupabaseRepo) CreatePackage(ctx context.Context, pkg *Package) (*Package, error) {
	return insertRow[Package](ctx, su, PackagesTable, PackageFields, pkg)
}

func (su *SupabaseRepo) UpdatePackage(ctx context.Context, id string, fields map[string]any) (*Package, error) {
	return updateRow[Package](ctx, su, PackagesTable, PackageFields, id, fields, "Package")
}

func (su *SupabaseRepo) DeletePackage(ctx context.Context, id string) error {
	return deleteRow(ctx, su, PackagesTable, id, "Package")
}
