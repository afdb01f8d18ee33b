package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/choropleth-cli/internal/theme"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "styles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteSaveAndGetStyle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	style := theme.DefaultStyle()
	style.Method = "natural_breaks"
	style.NumClasses = 7

	saved, err := s.SaveStyle(ctx, "population", style)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "population", saved.Name)
	assert.Equal(t, style, saved.Style)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.GetStyle(ctx, "population")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, style, got.Style)
}

func TestSQLiteSaveStyleUpsertsByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.SaveStyle(ctx, "income", theme.DefaultStyle())
	require.NoError(t, err)

	updated := theme.DefaultStyle()
	updated.NumClasses = 9
	second, err := s.SaveStyle(ctx, "income", updated)
	require.NoError(t, err)

	// Same row, new document.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 9, second.Style.NumClasses)

	styles, err := s.ListStyles(ctx)
	require.NoError(t, err)
	assert.Len(t, styles, 1)
}

func TestSQLiteSaveStyleValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveStyle(ctx, "", theme.DefaultStyle())
	assert.Error(t, err)

	bad := theme.DefaultStyle()
	bad.NumClasses = 0
	_, err = s.SaveStyle(ctx, "bad", bad)
	assert.Error(t, err)
}

func TestSQLiteGetStyleNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetStyle(context.Background(), "absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "style not found")
}

func TestSQLiteListStylesSortedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"zoning", "acreage", "median_income"} {
		_, err := s.SaveStyle(ctx, name, theme.DefaultStyle())
		require.NoError(t, err)
	}

	styles, err := s.ListStyles(ctx)
	require.NoError(t, err)
	require.Len(t, styles, 3)
	assert.Equal(t, "acreage", styles[0].Name)
	assert.Equal(t, "median_income", styles[1].Name)
	assert.Equal(t, "zoning", styles[2].Name)
}

func TestSQLiteDeleteStyle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveStyle(ctx, "doomed", theme.DefaultStyle())
	require.NoError(t, err)

	require.NoError(t, s.DeleteStyle(ctx, "doomed"))

	err = s.DeleteStyle(ctx, "doomed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "style not found")
}
