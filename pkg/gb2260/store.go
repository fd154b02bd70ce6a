package gb2260

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type Entry struct {
	Code string
	Name string
}

// Table is the code table of a single revision. Entries keep the order they were added in.
type Table struct {
	entries []Entry
	index   map[string]int
}

func newTable() *Table {
	return &Table{index: make(map[string]int)}
}

func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

func (t *Table) Name(code string) (string, bool) {
	i, ok := t.index[code]
	if !ok {
		return "", false
	}
	return t.entries[i].Name, true
}

func (t *Table) Len() int {
	return len(t.entries)
}

// RevisionTables holds every revision table of one source.
type RevisionTables struct {
	keys   []string
	tables map[string]*Table
}

func newRevisionTables() *RevisionTables {
	return &RevisionTables{tables: make(map[string]*Table)}
}

// Keys lists revision keys in the order they were loaded, which is not necessarily chronological.
func (r *RevisionTables) Keys() []string {
	return slices.Clone(r.keys)
}

func (r *RevisionTables) Table(revision string) (*Table, bool) {
	t, ok := r.tables[revision]
	return t, ok
}

// Store is the immutable source -> revision -> code -> name registry.
// It is safe for concurrent use once built.
type Store struct {
	sources map[Source]*RevisionTables
}

func (s *Store) Data(source Source) *RevisionTables {
	if r, ok := s.sources[source]; ok {
		return r
	}
	return newRevisionTables()
}

func (s *Store) Revisions(source Source) []string {
	return s.Data(source).Keys()
}

// Latest returns the first revision listed for the source.
func (s *Store) Latest(source Source) (string, error) {
	keys := s.Data(source).keys
	if len(keys) == 0 {
		return "", errors.Wrapf(ErrUnknownRevision, "no revisions for source %s", source)
	}
	return keys[0], nil
}

func (s *Store) Table(source Source, revision string) (*Table, error) {
	t, ok := s.Data(source).Table(revision)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRevision, "source %s, revision %q", source, revision)
	}
	return t, nil
}

func (s *Store) Get(source Source, revision string, code string) (Division, error) {
	t, err := s.Table(source, revision)
	if err != nil {
		return Division{}, err
	}
	name, ok := t.Name(code)
	if !ok {
		return Division{}, errors.Wrapf(ErrUnknownCode, "source %s, revision %q, code %q", source, revision, code)
	}
	return s.division(source, revision, Entry{Code: code, Name: name}), nil
}

// MustGet is like Get but panics on unknown revisions and codes.
func (s *Store) MustGet(source Source, revision string, code string) Division {
	d, err := s.Get(source, revision, code)
	if err != nil {
		panic(err)
	}
	return d
}

func (s *Store) Provinces(source Source, revision string) ([]Division, error) {
	return s.filter(source, revision, IsProvince)
}

func (s *Store) Prefectures(source Source, revision string) ([]Division, error) {
	return s.filter(source, revision, IsPrefecture)
}

func (s *Store) Counties(source Source, revision string) ([]Division, error) {
	return s.filter(source, revision, IsCounty)
}

func (s *Store) filter(source Source, revision string, keep func(code string) bool) ([]Division, error) {
	t, err := s.Table(source, revision)
	if err != nil {
		return nil, err
	}
	return lo.FilterMap(t.entries, func(e Entry, _ int) (Division, bool) {
		if !keep(e.Code) {
			return Division{}, false
		}
		return s.division(source, revision, e), true
	}), nil
}

func (s *Store) division(source Source, revision string, e Entry) Division {
	return Division{
		Source:   source,
		Revision: revision,
		Code:     e.Code,
		Name:     e.Name,
		store:    s,
	}
}

// Builder accumulates rows and produces a Store. It must not be used after Build.
type Builder struct {
	sources map[Source]*RevisionTables
}

func NewBuilder() *Builder {
	return &Builder{sources: make(map[Source]*RevisionTables)}
}

func (b *Builder) Add(source Source, revision string, code string, name string) error {
	b.AddRevision(source, revision)
	t := b.sources[source].tables[revision]

	if _, exists := t.index[code]; exists {
		return errors.Wrapf(ErrDuplicateCode, "source %s, revision %q, code %q", source, revision, code)
	}
	t.index[code] = len(t.entries)
	t.entries = append(t.entries, Entry{Code: code, Name: name})
	return nil
}

// AddRevision registers a revision without rows so it keeps its position in the revision order.
func (b *Builder) AddRevision(source Source, revision string) {
	revisions, ok := b.sources[source]
	if !ok {
		revisions = newRevisionTables()
		b.sources[source] = revisions
	}
	if _, ok := revisions.tables[revision]; !ok {
		revisions.tables[revision] = newTable()
		revisions.keys = append(revisions.keys, revision)
	}
}

func (b *Builder) Build() *Store {
	s := &Store{sources: b.sources}
	b.sources = nil
	return s
}
