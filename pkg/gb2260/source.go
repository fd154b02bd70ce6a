package gb2260

import (
	"strings"

	"github.com/pkg/errors"
)

// Source identifies the body that issued a code table.
type Source int

const (
	GB Source = iota
	Stats
)

var sourceLabels = map[Source]string{
	GB:    "gb",
	Stats: "stats",
}

func (s Source) String() string {
	if label, ok := sourceLabels[s]; ok {
		return label
	}
	return "unknown"
}

// ParseSource converts a label such as "gb" or "Stats" into a Source.
func ParseSource(label string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "gb", "gb2260":
		return GB, nil
	case "stats":
		return Stats, nil
	default:
		return 0, errors.Wrapf(ErrUnknownSource, "source %q", label)
	}
}
