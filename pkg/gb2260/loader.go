package gb2260

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
)

const manifestFile = "revisions.json"

// manifest lists revisions per source, newest first.
type manifest struct {
	GB    []string `json:"gb"`
	Stats []string `json:"stats"`
}

// Load builds a Store from a directory holding revisions.json, GB tables as <revision>.tsv
// and statistics bureau tables as stats/<revision>.tsv.
func Load(fsys fs.FS) (*Store, error) {
	raw, err := fs.ReadFile(fsys, manifestFile)
	if err != nil {
		return nil, errors.Wrap(err, "read revisions manifest")
	}

	var m manifest
	if err = json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "decode revisions manifest")
	}

	b := NewBuilder()
	sources := []struct {
		source    Source
		dir       string
		revisions []string
	}{
		{GB, "", m.GB},
		{Stats, "stats", m.Stats},
	}

	for _, src := range sources {
		for _, revision := range src.revisions {
			revision = strings.Trim(revision, "\"")
			file := path.Join(src.dir, revision+".tsv")
			if err = loadTable(fsys, file, b, src.source, revision); err != nil {
				return nil, err
			}
		}
	}

	return b.Build(), nil
}

func loadTable(fsys fs.FS, file string, b *Builder, source Source, revision string) error {
	f, err := fsys.Open(file)
	if err != nil {
		return errors.Wrapf(err, "open %s", file)
	}
	defer f.Close()

	b.AddRevision(source, revision)
	return readRows(f, func(code, name string) error {
		return b.Add(source, revision, code, name)
	})
}

// readRows reads Source\tRevision\tCode\tName rows, skipping header lines.
func readRows(r io.Reader, add func(code, name string) error) error {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read row")
		}

		if len(record) == 0 || strings.HasPrefix(record[0], "Source") {
			continue
		}
		if len(record) < 4 {
			return errors.Errorf("row %v: expected 4 columns, got %d", record, len(record))
		}

		if err = add(strings.TrimSpace(record[2]), strings.TrimSpace(record[3])); err != nil {
			return err
		}
	}
}
