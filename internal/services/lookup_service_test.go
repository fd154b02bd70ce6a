package services

import (
	"context"
	"errors"
	"github.com/maxaizer/gb2260/pkg/gb2260"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

type mockNames struct {
	mock.Mock
}

func (m *mockNames) GetCodesByName(ctx context.Context, source, revision, name string) ([]string, error) {
	args := m.Called(ctx, source, revision, name)
	return args.Get(0).([]string), args.Error(1)
}

func newTestStore(t *testing.T) *gb2260.Store {
	b := gb2260.NewBuilder()
	for _, row := range [][2]string{
		{"330000", "浙江省"},
		{"330100", "杭州市"},
		{"330105", "拱墅区"},
		{"330106", "西湖区"},
	} {
		require.NoError(t, b.Add(gb2260.GB, "200712", row[0], row[1]))
	}
	require.NoError(t, b.Add(gb2260.GB, "200212", "330000", "浙江省"))
	require.NoError(t, b.Add(gb2260.Stats, "2014", "330000", "浙江省"))
	return b.Build()
}

func Test_Resolve_WhenRevisionEmpty_ShouldUseLatest(t *testing.T) {
	service := NewLookupService(newTestStore(t), &mockNames{})

	q, err := service.Resolve("gb", "")
	assert.NoError(t, err)
	assert.Equal(t, Query{Source: gb2260.GB, Revision: "200712"}, q)

	q, err = service.Resolve("stats", "2014")
	assert.NoError(t, err)
	assert.Equal(t, "stats/2014", q.String())
}

func Test_Resolve_WhenUnknown_ShouldFail(t *testing.T) {
	service := NewLookupService(newTestStore(t), &mockNames{})

	_, err := service.Resolve("gb", "1999")
	assert.ErrorIs(t, err, gb2260.ErrUnknownRevision)

	_, err = service.Resolve("mca", "")
	assert.ErrorIs(t, err, gb2260.ErrUnknownSource)
}

func Test_Describe_County_ShouldIncludeParents(t *testing.T) {
	service := NewLookupService(newTestStore(t), &mockNames{})

	description, err := service.Describe(Query{Source: gb2260.GB, Revision: "200712"}, "330105")
	require.NoError(t, err)

	assert.Equal(t, "拱墅区", description.Division.Name)
	require.NotNil(t, description.Province)
	require.NotNil(t, description.Prefecture)
	assert.Equal(t, "330000", description.Province.Code)
	assert.Equal(t, "330100", description.Prefecture.Code)
}

func Test_Describe_Province_ShouldHaveNoParents(t *testing.T) {
	service := NewLookupService(newTestStore(t), &mockNames{})

	description, err := service.Describe(Query{Source: gb2260.GB, Revision: "200712"}, "330000")
	require.NoError(t, err)
	assert.Nil(t, description.Province)
	assert.Nil(t, description.Prefecture)
}

func Test_Describe_WhenUnknownCode_ShouldFail(t *testing.T) {
	service := NewLookupService(newTestStore(t), &mockNames{})

	_, err := service.Describe(Query{Source: gb2260.GB, Revision: "200212"}, "330105")
	assert.ErrorIs(t, err, gb2260.ErrUnknownCode)
}

func Test_Children(t *testing.T) {
	service := NewLookupService(newTestStore(t), &mockNames{})
	q := Query{Source: gb2260.GB, Revision: "200712"}

	children, ok, err := service.Children(q, "330100")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, children, 2)

	_, ok, err = service.Children(q, "330105")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func Test_FindByName_ShouldSkipCodesMissingFromRegistry(t *testing.T) {
	names := &mockNames{}
	names.On("GetCodesByName", mock.Anything, "gb", "200712", "拱墅区").
		Return([]string{"330105", "999999"}, nil)
	service := NewLookupService(newTestStore(t), names)

	divisions, err := service.FindByName(context.Background(), Query{Source: gb2260.GB, Revision: "200712"}, "拱墅区")
	assert.NoError(t, err)
	require.Len(t, divisions, 1)
	assert.Equal(t, "330105", divisions[0].Code)
}

func Test_FindByName_WhenRepositoryFails_ShouldReturnError(t *testing.T) {
	names := &mockNames{}
	names.On("GetCodesByName", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]string(nil), errors.New("db is down"))
	service := NewLookupService(newTestStore(t), names)

	_, err := service.FindByName(context.Background(), Query{Source: gb2260.GB, Revision: "200712"}, "拱墅区")
	assert.Error(t, err)
}
