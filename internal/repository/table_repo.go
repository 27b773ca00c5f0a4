package repository

import (
	"context"

	"github.com/seatwise/floor-service/internal/models"
	"gorm.io/gorm"
)

type TableRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Table, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Table, error)
	FindActiveByRestaurant(ctx context.Context, restaurantID uint) ([]models.Table, error)
	FindAllByRestaurant(ctx context.Context, restaurantID uint) ([]models.Table, error)
	ListRestaurantIDs(ctx context.Context) ([]uint, error)
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) FindByID(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	if err := r.db.WithContext(ctx).First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Table, error) {
	var tables []models.Table
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *tableRepository) FindActiveByRestaurant(ctx context.Context, restaurantID uint) ([]models.Table, error) {
	var tables []models.Table
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("table_number ASC").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// ListRestaurantIDs returns every restaurant that has at least one active
// table, for the refresh loop to walk.
func (r *tableRepository) ListRestaurantIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Table{}).
		Where("is_active = ?", true).
		Distinct().
		Pluck("restaurant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *tableRepository) FindAllByRestaurant(ctx context.Context, restaurantID uint) ([]models.Table, error) {
	var tables []models.Table
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("table_number ASC").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}
