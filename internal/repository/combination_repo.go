package repository

import (
	"context"

	"github.com/seatwise/floor-service/internal/models"
	"gorm.io/gorm"
)

type CombinationRepository interface {
	Create(ctx context.Context, combo *models.TableCombination) error
	FindByID(ctx context.Context, id uint) (*models.TableCombination, error)
	FindByRestaurant(ctx context.Context, restaurantID uint) ([]models.TableCombination, error)
}

type combinationRepository struct {
	db *gorm.DB
}

func NewCombinationRepository(db *gorm.DB) CombinationRepository {
	return &combinationRepository{db: db}
}

func (r *combinationRepository) Create(ctx context.Context, combo *models.TableCombination) error {
	return r.db.WithContext(ctx).Create(combo).Error
}

func (r *combinationRepository) FindByID(ctx context.Context, id uint) (*models.TableCombination, error) {
	var combo models.TableCombination
	err := r.db.WithContext(ctx).
		Preload("PrimaryTable").
		Preload("SecondaryTable").
		First(&combo, id).Error
	if err != nil {
		return nil, err
	}
	return &combo, nil
}

func (r *combinationRepository) FindByRestaurant(ctx context.Context, restaurantID uint) ([]models.TableCombination, error) {
	var combos []models.TableCombination
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("combined_capacity ASC").
		Find(&combos).Error
	if err != nil {
		return nil, err
	}
	return combos, nil
}
