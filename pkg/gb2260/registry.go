package gb2260

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed data
var embedded embed.FS

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the process-wide store built from the embedded tables.
// The tables are parsed on first use and never modified afterwards.
func Default() *Store {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			panic(err)
		}
		defaultStore, err = Load(sub)
		if err != nil {
			panic(err)
		}
	})
	return defaultStore
}

func Data(source Source) *RevisionTables {
	return Default().Data(source)
}

func Revisions(source Source) []string {
	return Default().Revisions(source)
}

func Get(source Source, revision string, code string) (Division, error) {
	return Default().Get(source, revision, code)
}

func MustGet(source Source, revision string, code string) Division {
	return Default().MustGet(source, revision, code)
}

func Provinces(source Source, revision string) ([]Division, error) {
	return Default().Provinces(source, revision)
}

func Prefectures(source Source, revision string) ([]Division, error) {
	return Default().Prefectures(source, revision)
}
