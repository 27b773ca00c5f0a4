package service

import (
	"context"
	"testing"

	"github.com/seatwise/floor-service/internal/combination"
	"github.com/seatwise/floor-service/internal/models"
	"github.com/seatwise/floor-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCombinationService(t *testing.T) (CombinationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCombinationService(repository.NewCombinationRepository(db), repository.NewTableRepository(db))
	return svc, db
}

func TestCombinationCreate(t *testing.T) {
	svc, db := newCombinationService(t)
	primary := seedTable(t, db, models.Table{RestaurantID: 1, TableNumber: "T1", MaxCapacity: 4, IsActive: true, IsCombinable: true})
	secondary := seedTable(t, db, models.Table{RestaurantID: 1, TableNumber: "T2", MaxCapacity: 4, IsActive: true, IsCombinable: true})

	combo, err := svc.Create(context.Background(), 1, primary.ID, secondary.ID, 7)
	require.NoError(t, err)
	assert.NotZero(t, combo.ID)
	assert.Equal(t, 7, combo.CombinedCapacity)

	listed, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, combo.ID, listed[0].ID)
}

func TestCombinationCreate_RejectsNonCombinable(t *testing.T) {
	svc, db := newCombinationService(t)
	primary := seedTable(t, db, models.Table{RestaurantID: 1, TableNumber: "T1", MaxCapacity: 4, IsActive: true, IsCombinable: true})
	fixed := seedTable(t, db, models.Table{RestaurantID: 1, TableNumber: "T2", MaxCapacity: 4, IsActive: true})

	_, err := svc.Create(context.Background(), 1, primary.ID, fixed.ID, 8)
	assert.ErrorIs(t, err, combination.ErrNotCombinable)

	var count int64
	require.NoError(t, db.Model(&models.TableCombination{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCombinationCreate_UnknownTable(t *testing.T) {
	svc, db := newCombinationService(t)
	primary := seedTable(t, db, models.Table{RestaurantID: 1, TableNumber: "T1", MaxCapacity: 4, IsActive: true, IsCombinable: true})

	_, err := svc.Create(context.Background(), 1, primary.ID, 999, 8)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestCombinationSuggest(t *testing.T) {
	svc, db := newCombinationService(t)
	primary := seedTable(t, db, models.Table{RestaurantID: 1, TableNumber: "T1", MaxCapacity: 4, IsActive: true, IsCombinable: true})
	secondary := seedTable(t, db, models.Table{RestaurantID: 1, TableNumber: "T2", MaxCapacity: 6, IsActive: true, IsCombinable: true})

	sum, err := svc.Suggest(context.Background(), primary.ID, secondary.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, sum)
}

func TestCombinationList_OrderedByCapacity(t *testing.T) {
	svc, db := newCombinationService(t)
	t1 := seedTable(t, db, models.Table{RestaurantID: 1, TableNumber: "T1", MaxCapacity: 4, IsActive: true, IsCombinable: true})
	t2 := seedTable(t, db, models.Table{RestaurantID: 1, TableNumber: "T2", MaxCapacity: 4, IsActive: true, IsCombinable: true})
	t3 := seedTable(t, db, models.Table{RestaurantID: 1, TableNumber: "T3", MaxCapacity: 8, IsActive: true, IsCombinable: true})

	big, err := svc.Create(context.Background(), 1, t1.ID, t3.ID, 12)
	require.NoError(t, err)
	small, err := svc.Create(context.Background(), 1, t1.ID, t2.ID, 6)
	require.NoError(t, err)

	listed, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, small.ID, listed[0].ID)
	assert.Equal(t, big.ID, listed[1].ID)
}
