package entities

import (
	"github.com/maxaizer/gb2260/pkg/gb2260"
	"strings"
	"unicode"
)

// Division is a registry row mirrored into the database for name lookups.
type Division struct {
	ID             uint   `gorm:"primaryKey"`
	Source         string `gorm:"uniqueIndex:idx_division_code;not null"`
	Revision       string `gorm:"uniqueIndex:idx_division_code;not null"`
	Code           string `gorm:"uniqueIndex:idx_division_code;size:6;not null"`
	Name           string `gorm:"not null"`
	NormalizedName string `gorm:"index"`
}

func NewDivision(d gb2260.Division) Division {
	return Division{
		Source:         d.Source.String(),
		Revision:       d.Revision,
		Code:           d.Code,
		Name:           d.Name,
		NormalizedName: NormalizeDivisionName(d.Name),
	}
}

// NormalizeDivisionName drops whitespace so that "拱墅 区" and "拱墅区" compare equal.
func NormalizeDivisionName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
}

type ArbitraryData struct {
	ID    string `gorm:"primaryKey"`
	Value []byte
}
