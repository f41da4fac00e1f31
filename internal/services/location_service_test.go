package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationHierarchy(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db)
	ctx := context.Background()

	india, err := svc.CreateCountry(ctx, "India")
	require.NoError(t, err)

	_, err = svc.CreateCountry(ctx, "India")
	assert.ErrorIs(t, err, ErrDuplicateLocation)

	kerala, err := svc.CreateState(ctx, india.ID, "Kerala")
	require.NoError(t, err)

	_, err = svc.CreateState(ctx, india.ID, "Kerala")
	assert.ErrorIs(t, err, ErrDuplicateLocation)

	_, err = svc.CreateState(ctx, uuid.New(), "Nowhere")
	assert.ErrorIs(t, err, ErrLocationNotFound)

	_, err = svc.CreateDistrict(ctx, kerala.ID, "Ernakulam")
	require.NoError(t, err)

	// The same name under a different parent is a new row, not a duplicate.
	karnataka, err := svc.CreateState(ctx, india.ID, "Karnataka")
	require.NoError(t, err)
	_, err = svc.CreateDistrict(ctx, karnataka.ID, "Ernakulam")
	assert.NoError(t, err)

	states, err := svc.ListStates(ctx, india.ID)
	require.NoError(t, err)
	assert.Len(t, states, 2)

	districts, err := svc.ListDistricts(ctx, kerala.ID)
	require.NoError(t, err)
	assert.Len(t, districts, 1)

	_, err = svc.ListStates(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestCreateShopType(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(db)
	ctx := context.Background()

	st, err := svc.CreateShopType(ctx, "Home Appliances", nil)
	require.NoError(t, err)
	assert.Equal(t, "home_appliances", st.Code)

	_, err = svc.CreateShopType(ctx, "Home Appliances", nil)
	assert.ErrorIs(t, err, ErrDuplicateLocation)

	types, err := svc.ListShopTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)
}
