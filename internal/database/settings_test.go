package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutSettingUpsert(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutSetting(ctx, "business_name", "Dress Atelier"))

	setting, err := store.GetSetting(ctx, "business_name")
	require.NoError(t, err)
	assert.Equal(t, "Dress Atelier", setting.Value)

	require.NoError(t, store.PutSetting(ctx, "business_name", "Renamed Atelier"))

	setting, err = store.GetSetting(ctx, "business_name")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Atelier", setting.Value)

	settings, err := store.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 1)
}

func TestGetSettingNotFound(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.GetSetting(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
