package gb2260

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is the tier of the administrative hierarchy a code belongs to.
type Level int

const (
	Province Level = iota
	Prefecture
	County
)

func (l Level) String() string {
	switch l {
	case Province:
		return "province"
	case Prefecture:
		return "prefecture"
	default:
		return "county"
	}
}

func IsProvince(code string) bool {
	return strings.HasSuffix(code, "0000")
}

func IsPrefecture(code string) bool {
	return strings.HasSuffix(code, "00") && !IsProvince(code)
}

func IsCounty(code string) bool {
	return !IsProvince(code) && !IsPrefecture(code)
}

func LevelOf(code string) Level {
	switch {
	case IsProvince(code):
		return Province
	case IsPrefecture(code):
		return Prefecture
	default:
		return County
	}
}

const codeLength = 6

// ParseCode splits a 6-character code into its province, prefecture and county segments.
func ParseCode(code string) (province, prefecture, county string, err error) {
	if len(code) != codeLength {
		return "", "", "", errors.Wrapf(ErrUnknownCode, "code %q is not %d characters long", code, codeLength)
	}
	return code[0:2], code[2:4], code[4:6], nil
}

func provinceCode(code string) (string, error) {
	province, _, _, err := ParseCode(code)
	if err != nil {
		return "", err
	}
	return province + "0000", nil
}

func prefectureCode(code string) (string, error) {
	province, prefecture, _, err := ParseCode(code)
	if err != nil {
		return "", err
	}
	return province + prefecture + "00", nil
}
