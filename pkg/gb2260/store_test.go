package gb2260

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	b := NewBuilder()
	rows := []Entry{
		{"110000", "北京市"},
		{"110100", "市辖区"},
		{"110101", "东城区"},
		{"110102", "西城区"},
		{"110200", "县"},
		{"110228", "密云县"},
		{"120000", "天津市"},
		{"120100", "市辖区"},
		{"120101", "和平区"},
	}
	for _, row := range rows {
		require.NoError(t, b.Add(GB, "2014", row.Code, row.Name))
	}
	require.NoError(t, b.Add(GB, "2013", "110000", "北京市"))
	require.NoError(t, b.Add(Stats, "2014", "110000", "北京市"))
	return b.Build()
}

func Test_Store_Revisions_KeepInsertionOrder(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, []string{"2014", "2013"}, store.Revisions(GB))
	assert.Equal(t, []string{"2014"}, store.Revisions(Stats))

	latest, err := store.Latest(GB)
	assert.NoError(t, err)
	assert.Equal(t, "2014", latest)
}

func Test_Store_Get_WhenUnknownRevision_ShouldFail(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(GB, "1999", "110000")
	assert.ErrorIs(t, err, ErrUnknownRevision)
	assert.Panics(t, func() { store.MustGet(GB, "1999", "110000") })
}

func Test_Store_Get_WhenUnknownCode_ShouldFail(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(GB, "2013", "110101")
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func Test_Store_Get_ShouldResolveName(t *testing.T) {
	store := newTestStore(t)

	d, err := store.Get(GB, "2014", "110101")
	assert.NoError(t, err)
	assert.Equal(t, "东城区", d.Name)
	assert.Equal(t, GB, d.Source)
	assert.Equal(t, "2014", d.Revision)
}

func Test_Store_Listings_FollowLoadOrder(t *testing.T) {
	store := newTestStore(t)

	provinces, err := store.Provinces(GB, "2014")
	require.NoError(t, err)
	assert.Equal(t, []string{"110000", "120000"}, codes(provinces))

	prefectures, err := store.Prefectures(GB, "2014")
	require.NoError(t, err)
	assert.Equal(t, []string{"110100", "110200", "120100"}, codes(prefectures))

	counties, err := store.Counties(GB, "2014")
	require.NoError(t, err)
	assert.Equal(t, []string{"110101", "110102", "110228", "120101"}, codes(counties))

	_, err = store.Provinces(Stats, "1999")
	assert.ErrorIs(t, err, ErrUnknownRevision)
}

func Test_Store_Data_WhenSourceMissing_ShouldBeEmpty(t *testing.T) {
	store := NewBuilder().Build()

	assert.Empty(t, store.Revisions(Stats))
	_, err := store.Latest(Stats)
	assert.ErrorIs(t, err, ErrUnknownRevision)
}

func Test_Builder_WhenDuplicateCode_ShouldFail(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(GB, "2014", "110000", "北京市"))

	err := b.Add(GB, "2014", "110000", "北京")
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func Test_Table_EntriesAreCopied(t *testing.T) {
	store := newTestStore(t)
	table, err := store.Table(GB, "2014")
	require.NoError(t, err)

	entries := table.Entries()
	entries[0].Name = "changed"

	name, ok := table.Name("110000")
	assert.True(t, ok)
	assert.Equal(t, "北京市", name)
	assert.Equal(t, 9, table.Len())
}

func Test_Load_ReadsManifestAndTables(t *testing.T) {
	fsys := fstest.MapFS{
		"revisions.json": {Data: []byte(`{"gb": ["2014", "2013"], "stats": ["\"2014\""]}`)},
		"2014.tsv": {Data: []byte("Source\tRevision\tCode\tName\n" +
			"GB2260\t2014\t110000\t北京市\n" +
			"GB2260\t2014\t110100\t市辖区\n")},
		"2013.tsv":       {Data: []byte("Source\tRevision\tCode\tName\nGB2260\t2013\t110000\t北京市\n")},
		"stats/2014.tsv": {Data: []byte("Stats\t2014\t120000\t天津市\n")},
	}

	store, err := Load(fsys)
	require.NoError(t, err)

	assert.Equal(t, []string{"2014", "2013"}, store.Revisions(GB))
	assert.Equal(t, []string{"2014"}, store.Revisions(Stats))

	d, err := store.Get(Stats, "2014", "120000")
	assert.NoError(t, err)
	assert.Equal(t, "天津市", d.Name)
}

func Test_Load_WhenTableMissing_ShouldFail(t *testing.T) {
	fsys := fstest.MapFS{
		"revisions.json": {Data: []byte(`{"gb": ["2014"]}`)},
	}

	_, err := Load(fsys)
	assert.Error(t, err)
}

func Test_Load_WhenRowTooShort_ShouldFail(t *testing.T) {
	fsys := fstest.MapFS{
		"revisions.json": {Data: []byte(`{"gb": ["2014"]}`)},
		"2014.tsv":       {Data: []byte("GB2260\t2014\t110000\n")},
	}

	_, err := Load(fsys)
	assert.Error(t, err)
}

func codes(divisions []Division) []string {
	result := make([]string, 0, len(divisions))
	for _, d := range divisions {
		result = append(result, d.Code)
	}
	return result
}
