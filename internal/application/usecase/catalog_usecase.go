// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	fooddom "foodhall/internal/domain/fooditem"
)

var (
	ErrCatalogInvalidArgument = errors.New("catalog_usecase: invalid argument")
	ErrCatalogImageRequired   = errors.New("catalog_usecase: image file is required")
)

// AddFoodInput carries the multipart fields of a catalog-create request.
// Image is the raw uploaded buffer; it is never persisted locally.
type AddFoodInput struct {
	Name             string
	Description      string
	Price            float64
	Category         string
	Image            []byte
	ImageContentType string
}

// CatalogUsecase coordinates catalog reads and the create/delete operations.
//
// Create ordering is a hard invariant: the image is pushed to object storage
// first, and the record is inserted only after a durable URL came back.
// An upload failure aborts the operation with no partial record written.
type CatalogUsecase struct {
	repo     fooddom.Repository
	uploader fooddom.ImageUploader
	clock    Clock
}

func NewCatalogUsecase(repo fooddom.Repository, uploader fooddom.ImageUploader) *CatalogUsecase {
	return &CatalogUsecase{
		repo:     repo,
		uploader: uploader,
		clock:    systemClock{},
	}
}

// NewCatalogUsecaseWithClock is useful for tests.
func NewCatalogUsecaseWithClock(repo fooddom.Repository, uploader fooddom.ImageUploader, clock Clock) *CatalogUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CatalogUsecase{repo: repo, uploader: uploader, clock: clock}
}

// List returns the full catalog.
func (uc *CatalogUsecase) List(ctx context.Context) ([]fooddom.FoodItem, error) {
	return uc.repo.List(ctx)
}

// Add uploads the image and then persists the record.
func (uc *CatalogUsecase) Add(ctx context.Context, in AddFoodInput) (fooddom.FoodItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fooddom.FoodItem{}, ErrCatalogInvalidArgument
	}
	if in.Price < 0 {
		return fooddom.FoodItem{}, ErrCatalogInvalidArgument
	}
	if len(in.Image) == 0 {
		return fooddom.FoodItem{}, ErrCatalogImageRequired
	}

	// 1) image first; no record exists until this returns a durable URL
	imageURL, err := uc.uploader.Upload(ctx, in.Image, in.ImageContentType)
	if err != nil {
		log.Printf("[catalog_usecase] image upload failed name=%q err=%v", name, err)
		return fooddom.FoodItem{}, err
	}

	now := uc.clock.Now()
	item, err := fooddom.NewFoodItem(newID(), name, in.Description, in.Price, in.Category, imageURL, now)
	if err != nil {
		return fooddom.FoodItem{}, err
	}

	// 2) record after the asset is durable
	created, err := uc.repo.Create(ctx, item)
	if err != nil {
		return fooddom.FoodItem{}, err
	}

	log.Printf("[catalog_usecase] food added id=%s name=%q price=%.2f", created.ID, created.Name, created.Price)
	return created, nil
}

// Remove deletes a record by id. Unknown id -> fooditem.ErrNotFound.
func (uc *CatalogUsecase) Remove(ctx context.Context, id string) error {
	fid := strings.TrimSpace(id)
	if fid == "" {
		return ErrCatalogInvalidArgument
	}
	return uc.repo.Delete(ctx, fid)
}

func newID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		// fallback: timestamp-based
		return "fi_" + time.Now().UTC().Format("20060102T150405.000000000Z")
	}
	return hex.EncodeToString(b[:])
}
