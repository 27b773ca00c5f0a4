package service

import (
	"context"
	"errors"

	"github.com/seatwise/floor-service/internal/combination"
	"github.com/seatwise/floor-service/internal/models"
	"github.com/seatwise/floor-service/internal/repository"
	"gorm.io/gorm"
)

type CombinationService interface {
	Create(ctx context.Context, restaurantID, primaryID, secondaryID uint, combinedCapacity int) (*models.TableCombination, error)
	List(ctx context.Context, restaurantID uint) ([]models.TableCombination, error)
	Suggest(ctx context.Context, primaryID, secondaryID uint) (int, error)
}

type combinationService struct {
	comboRepo repository.CombinationRepository
	tableRepo repository.TableRepository
}

func NewCombinationService(comboRepo repository.CombinationRepository, tableRepo repository.TableRepository) CombinationService {
	return &combinationService{comboRepo: comboRepo, tableRepo: tableRepo}
}

func (s *combinationService) Create(ctx context.Context, restaurantID, primaryID, secondaryID uint, combinedCapacity int) (*models.TableCombination, error) {
	primary, secondary, err := s.loadPair(ctx, primaryID, secondaryID)
	if err != nil {
		return nil, err
	}

	if err := combination.Validate(*primary, *secondary, combinedCapacity); err != nil {
		return nil, err
	}

	combo := &models.TableCombination{
		RestaurantID:     restaurantID,
		PrimaryTableID:   primaryID,
		SecondaryTableID: secondaryID,
		CombinedCapacity: combinedCapacity,
	}
	if err := s.comboRepo.Create(ctx, combo); err != nil {
		return nil, err
	}
	return combo, nil
}

func (s *combinationService) List(ctx context.Context, restaurantID uint) ([]models.TableCombination, error) {
	return s.comboRepo.FindByRestaurant(ctx, restaurantID)
}

// Suggest returns the arithmetic capacity sum the UI offers as a default; the
// operator may declare a different value.
func (s *combinationService) Suggest(ctx context.Context, primaryID, secondaryID uint) (int, error) {
	primary, secondary, err := s.loadPair(ctx, primaryID, secondaryID)
	if err != nil {
		return 0, err
	}
	return combination.SuggestedCapacity(*primary, *secondary), nil
}

func (s *combinationService) loadPair(ctx context.Context, primaryID, secondaryID uint) (*models.Table, *models.Table, error) {
	primary, err := s.tableRepo.FindByID(ctx, primaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTableNotFound
		}
		return nil, nil, err
	}
	secondary, err := s.tableRepo.FindByID(ctx, secondaryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTableNotFound
		}
		return nil, nil, err
	}
	return primary, secondary, nil
}
