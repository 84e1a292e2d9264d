package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/eventrentals/internal/apperrors"
	"github.com/joshua-takyi/eventrentals/internal/helpers"
	"github.com/joshua-takyi/eventrentals/internal/models"
)

type PackageService struct {
	stores *Failover
	images ImageStore
}

func NewPackageService(stores *Failover, images ImageStore) *PackageService {
	return &PackageService{
		stores: stores,
		images: images,
	}
}

func (ps *PackageService) ListPackages(ctx context.Context, featuredOnly bool) ([]models.Package, error) {
	packages, err := WithFallback(ctx, ps.stores, "packages.list", func(ctx context.Context, store models.Store) ([]models.Package, error) {
		return store.ListPackages(ctx)
	})
	if err != nil {
		return nil, err
	}
	if !featuredOnly {
		return packages, nil
	}
	featured := make([]models.Package, 0, len(packages))
	for _, p := range packages {
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

func (ps *PackageService) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	if id == "" {
		return nil, apperrors.Validation("Package id is required")
	}
	return WithFallback(ctx, ps.stores, "packages.get", func(ctx context.Context, store models.Store) (*models.Package, error) {
		return store.GetPackage(ctx, id)
	})
}

func (ps *PackageService) CreatePackage(ctx context.Context, pkg *models.Package) (*models.Package, error) {
	pkg.Sanitize()
	if err := models.Validate.Struct(pkg); err != nil {
		return nil, apperrors.Validation("%s", models.ValidationMessage(err))
	}
	if ps.images != nil {
		urls, err := ps.images.UploadImages(ctx, pkg.Images, helpers.PackagesFolder)
		if err != nil {
			return nil, apperrors.Internal("failed to upload images", err)
		}
		pkg.Images = urls
	}
	pkg.ID = uuid.NewString()
	pkg.CreatedAt = time.Now().UTC()

	return OnAuthoritative(ctx, ps.stores, func(ctx context.Context, store models.Store) (*models.Package, error) {
		return store.CreatePackage(ctx, pkg)
	})
}

func (ps *PackageService) UpdatePackage(ctx context.Context, id string, upd models.PackageUpdate) (*models.Package, error) {
	if id == "" {
		return nil, apperrors.Validation("Package id is required")
	}
	if err := models.Validate.Struct(upd); err != nil {
		return nil, apperrors.Validation("%s", models.ValidationMessage(err))
	}
	fields := upd.Fields()
	if len(fields) == 0 {
		return nil, apperrors.Validation("No fields to update")
	}
	if upd.Images != nil && ps.images != nil {
		urls, err := ps.images.UploadImages(ctx, *upd.Images, helpers.PackagesFolder)
		if err != nil {
			return nil, apperrors.Internal("failed to upload images", err)
		}
		fields["images"] = urls
	}

	return OnAuthoritative(ctx, ps.stores, func(ctx context.Context, store models.Store) (*models.Package, error) {
		return store.UpdatePackage(ctx, id, fields)
	})
}

func (ps *PackageService) DeletePackage(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("Package id is required")
	}
	_, err := OnAuthoritative(ctx, ps.stores, func(ctx context.Context, store models.Store) (struct{}, error) {
		return struct{}{}, store.DeletePackage(ctx, id)
	})
	return err
}
