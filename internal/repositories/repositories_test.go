package repositories

import (
	"context"
	"sync"
	"github.com/maxaizer/gb2260/pkg/gb2260"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func newTestDbContext(t *testing.T) *DbContext {
	dbCtx, err := NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbCtx.Close() })

	require.NoError(t, dbCtx.Migrate(gb2260.Default()))
	return dbCtx
}

func Test_Migrate_MirrorsEveryRevision(t *testing.T) {
	dbCtx := newTestDbContext(t)
	divisions := NewDivisionsRepository(dbCtx.DB)

	expected := 0
	for _, source := range []gb2260.Source{gb2260.GB, gb2260.Stats} {
		for _, revision := range gb2260.Revisions(source) {
			table, err := gb2260.Default().Table(source, revision)
			require.NoError(t, err)
			expected += table.Len()
		}
	}

	count, err := divisions.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(expected), count)

	require.NoError(t, dbCtx.Migrate(gb2260.Default()))
	count, err = divisions.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(expected), count)
}

func Test_Divisions_GetCodesByName(t *testing.T) {
	divisions := NewDivisionsRepository(newTestDbContext(t).DB)
	ctx := context.Background()

	codes, err := divisions.GetCodesByName(ctx, "gb", "200712", "拱墅 区")
	assert.NoError(t, err)
	assert.Equal(t, []string{"330105"}, codes)

	codes, err = divisions.GetCodesByName(ctx, "gb", "200712", "市辖区")
	assert.NoError(t, err)
	assert.Equal(t, []string{"110100", "310100", "330101", "330201"}, codes)

	codes, err = divisions.GetCodesByName(ctx, "gb", "200712", "拱墅")
	assert.NoError(t, err)
	assert.Empty(t, codes)
}

func Test_Data_SaveLoadRemove(t *testing.T) {
	data := NewDataRepository(newTestDbContext(t).DB)
	ctx := context.Background()

	value, err := data.Load(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, data.Save(ctx, "key", []byte("first")))
	require.NoError(t, data.Save(ctx, "key", []byte("second")))

	value, err = data.Load(ctx, "key")
	assert.NoError(t, err)
	assert.Equal(t, []byte("second"), value)

	require.NoError(t, data.Remove(ctx, "key"))
	value, err = data.Load(ctx, "key")
	assert.NoError(t, err)
	assert.Nil(t, value)
}

type mockDivisionRepo struct {
	mock.Mock
}

func (m *mockDivisionRepo) GetCodesByName(ctx context.Context, source, revision, name string) ([]string, error) {
	args := m.Called(ctx, source, revision, name)
	return args.Get(0).([]string), args.Error(1)
}

func Test_CachedDivisions_SecondCallHitsCache(t *testing.T) {
	repo := &mockDivisionRepo{}
	repo.On("GetCodesByName", mock.Anything, "gb", "200712", "拱墅区").Return([]string{"330105"}, nil).Once()

	cached := NewCachedDivisions(repo)
	for i := 0; i < 2; i++ {
		codes, err := cached.GetCodesByName(context.Background(), "gb", "200712", "拱墅区")
		assert.NoError(t, err)
		assert.Equal(t, []string{"330105"}, codes)
	}

	repo.AssertNumberOfCalls(t, "GetCodesByName", 1)
}

func Test_CachedDivisions_EmptyResultIsNotCached(t *testing.T) {
	repo := &mockDivisionRepo{}
	repo.On("GetCodesByName", mock.Anything, "gb", "200712", "nowhere").Return([]string{}, nil).Twice()

	cached := NewCachedDivisions(repo)
	for i := 0; i < 2; i++ {
		codes, err := cached.GetCodesByName(context.Background(), "gb", "200712", "nowhere")
		assert.NoError(t, err)
		assert.Empty(t, codes)
	}

	repo.AssertExpectations(t)
}

func Test_CachedDivisions_ConcurrentMissesShouldAllSucceed(t *testing.T) {
	repo := &mockDivisionRepo{}
	repo.On("GetCodesByName", mock.Anything, "gb", "200712", "西湖区").Return([]string{"330106"}, nil)

	cached := NewCachedDivisions(repo)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes, err := cached.GetCodesByName(context.Background(), "gb", "200712", "西湖区")
			assert.NoError(t, err)
			assert.Equal(t, []string{"330106"}, codes)
		}()
	}
	wg.Wait()
}

