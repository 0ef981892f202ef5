package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/model"
)

type CountryRepository interface {
	Exists(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Country, error)
	List(ctx context.Context) ([]model.Country, error)
	FindByAuthor(ctx context.Context, authorID uint) (*model.Country, error)
	ListAuthors(ctx context.Context, countryID uint) ([]model.Author, error)
	CountAuthors(ctx context.Context, countryID uint) (int64, error)
	IsDuplicateName(ctx context.Context, id uint, name string) (bool, error)
	Create(ctx context.Context, country *model.Country) error
	Update(ctx context.Context, country *model.Country) error
	Delete(ctx context.Context, country *model.Country) error
}

type GormCountryRepository struct {
	db *gorm.DB
}

func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

func (r *GormCountryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &model.Country{}, id)
}

func (r *GormCountryRepository) FindByID(ctx context.Context, id uint) (*model.Country, error) {
	var country model.Country
	if err := r.db.WithContext(ctx).First(&country, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *GormCountryRepository) List(ctx context.Context) ([]model.Country, error) {
	var countries []model.Country
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&countries).Error; err != nil {

		return nil, err
	}
	return countries, nil
}

func (r *GormCountryRepository) FindByAuthor(ctx context.Context, authorID uint) (*model.Country, error) {
	var country model.Country
	if err := r.db.WithContext(ctx).
		Joins("JOIN authors ON authors.country_id = countries.id").
		Where("authors.id = ?", authorID).
		First(&country).Error; err != nil {

		return nil, err
	}
	return &country, nil
}

func (r *GormCountryRepository) ListAuthors(ctx context.Context, countryID uint) ([]model.Author, error) {
	var authors []model.Author
	if err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order("last_name ASC").
		Order("id ASC").
		Find(&authors).Error; err != nil {

		return nil, err
	}
	return authors, nil
}

func (r *GormCountryRepository) CountAuthors(ctx context.Context, countryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Author{}).
		Where("country_id = ?", countryID).
		Count(&count).Error
	return count, err
}

// IsDuplicateName compares the folded name key and ignores the country with
// the given id.
func (r *GormCountryRepository) IsDuplicateName(ctx context.Context, id uint, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Country{}).
		Where("name_key = ? AND id <> ?", model.CountryNameKey(name), id).
		Count(&count).Error
	return count > 0, err
}

func (r *GormCountryRepository) Create(ctx context.Context, country *model.Country) error {
	return r.db.WithContext(ctx).Create(country).Error
}

func (r *GormCountryRepository) Update(ctx context.Context, country *model.Country) error {
	return updateColumns(r.db.WithContext(ctx), &model.Country{}, country.ID, map[string]any{
		"name":     strings.TrimSpace(country.Name),
		"name_key": model.CountryNameKey(country.Name),
	})
}

func (r *GormCountryRepository) Delete(ctx context.Context, country *model.Country) error {
	return deleteByID(r.db.WithContext(ctx), &model.Country{}, country.ID)
}
