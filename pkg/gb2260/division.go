package gb2260

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Division is one named entity of the hierarchy, scoped to a source and a revision.
// Divisions constructed as literals navigate against the Default store.
//
// A resolved Division remembers the store it came from, so == and reflect.DeepEqual
// tell a resolved Division apart from an identical literal. Compare with Equal.
type Division struct {
	Source   Source
	Revision string
	Code     string
	Name     string

	store *Store
}

// Equal reports whether both divisions name the same code in the same source and revision.
func (d Division) Equal(other Division) bool {
	return d.Source == other.Source && d.SameEntry(other)
}

// SameEntry compares code, name and revision only, ignoring the source.
func (d Division) SameEntry(other Division) bool {
	return d.Code == other.Code && d.Name == other.Name && d.Revision == other.Revision
}

func (d Division) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.Code)
}

func (d Division) ParsedCode() (province, prefecture, county string, err error) {
	return ParseCode(d.Code)
}

func (d Division) Level() Level {
	return LevelOf(d.Code)
}

func (d Division) IsProvince() bool {
	return IsProvince(d.Code)
}

func (d Division) IsPrefecture() bool {
	return IsPrefecture(d.Code)
}

func (d Division) IsCounty() bool {
	return IsCounty(d.Code)
}

func (d Division) Province() (Division, error) {
	code, err := provinceCode(d.Code)
	if err != nil {
		return Division{}, err
	}
	return d.registry().Get(d.Source, d.Revision, code)
}

// Prefecture looks up the PPFF00 code of the division. For a province this is the province itself.
func (d Division) Prefecture() (Division, error) {
	code, err := prefectureCode(d.Code)
	if err != nil {
		return Division{}, err
	}
	return d.registry().Get(d.Source, d.Revision, code)
}

// Prefectures lists the prefectures of a province. ok is false when d is not a province.
func (d Division) Prefectures() (divisions []Division, ok bool, err error) {
	if !d.IsProvince() {
		return nil, false, nil
	}
	province, _, _, err := d.ParsedCode()
	if err != nil {
		return nil, false, err
	}
	divisions, err = d.children(func(code string) bool {
		return IsPrefecture(code) && strings.HasPrefix(code, province)
	})
	return divisions, err == nil, err
}

// Counties lists the counties of a prefecture, excluding the prefecture itself.
// ok is false when d is not a prefecture.
func (d Division) Counties() (divisions []Division, ok bool, err error) {
	if !d.IsPrefecture() {
		return nil, false, nil
	}
	province, prefecture, _, err := d.ParsedCode()
	if err != nil {
		return nil, false, err
	}
	prefix := province + prefecture
	divisions, err = d.children(func(code string) bool {
		return IsCounty(code) && strings.HasPrefix(code, prefix)
	})
	return divisions, err == nil, err
}

// Children returns prefectures of a province or counties of a prefecture.
// ok is false for counties, which have no children.
func (d Division) Children() ([]Division, bool, error) {
	switch d.Level() {
	case Province:
		return d.Prefectures()
	case Prefecture:
		return d.Counties()
	default:
		return nil, false, nil
	}
}

func (d Division) children(keep func(code string) bool) ([]Division, error) {
	s := d.registry()
	t, err := s.Table(d.Source, d.Revision)
	if err != nil {
		return nil, err
	}
	return lo.FilterMap(t.entries, func(e Entry, _ int) (Division, bool) {
		if !keep(e.Code) {
			return Division{}, false
		}
		return s.division(d.Source, d.Revision, e), true
	}), nil
}

func (d Division) registry() *Store {
	if d.store != nil {
		return d.store
	}
	return Default()
}
