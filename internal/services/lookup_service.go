package services

import (
	"context"
	"errors"
	"fmt"
	"github.com/maxaizer/gb2260/internal/logger"
	"github.com/maxaizer/gb2260/internal/metrics"
	"github.com/maxaizer/gb2260/pkg/gb2260"
	log "github.com/sirupsen/logrus"
)

type nameRepository interface {
	GetCodesByName(ctx context.Context, source, revision, name string) ([]string, error)
}

// Query selects the code table a lookup runs against.
type Query struct {
	Source   gb2260.Source
	Revision string
}

func (q Query) String() string {
	return fmt.Sprintf("%s/%s", q.Source, q.Revision)
}

type Description struct {
	Division   gb2260.Division
	Province   *gb2260.Division
	Prefecture *gb2260.Division
}

type LookupService struct {
	store *gb2260.Store
	names nameRepository
}

func NewLookupService(store *gb2260.Store, names nameRepository) *LookupService {
	return &LookupService{store: store, names: names}
}

// Resolve builds a query from textual source and revision. An empty revision selects the latest one.
func (s *LookupService) Resolve(source, revision string) (Query, error) {
	src, err := gb2260.ParseSource(source)
	if err != nil {
		return Query{}, err
	}

	if revision == "" {
		revision, err = s.store.Latest(src)
		if err != nil {
			return Query{}, err
		}
	} else if _, err = s.store.Table(src, revision); err != nil {
		s.recordFailure(err)
		return Query{}, err
	}

	return Query{Source: src, Revision: revision}, nil
}

func (s *LookupService) Revisions(source gb2260.Source) []string {
	metrics.LookupsCounter.WithLabelValues("revisions").Inc()
	return s.store.Revisions(source)
}

// Describe resolves a code together with the province and prefecture it belongs to.
func (s *LookupService) Describe(q Query, code string) (Description, error) {
	metrics.LookupsCounter.WithLabelValues("code").Inc()

	d, err := s.store.Get(q.Source, q.Revision, code)
	if err != nil {
		s.recordFailure(err)
		return Description{}, err
	}

	description := Description{Division: d}
	if d.IsProvince() {
		return description, nil
	}

	province, err := d.Province()
	if err != nil {
		s.logInconsistency(q, code, err)
		return Description{}, err
	}
	description.Province = &province

	if d.IsCounty() {
		prefecture, err := d.Prefecture()
		if err != nil {
			s.logInconsistency(q, code, err)
			return Description{}, err
		}
		description.Prefecture = &prefecture
	}

	return description, nil
}

// Children lists the direct children of a code. ok is false for counties.
func (s *LookupService) Children(q Query, code string) (children []gb2260.Division, ok bool, err error) {
	metrics.LookupsCounter.WithLabelValues("children").Inc()

	d, err := s.store.Get(q.Source, q.Revision, code)
	if err != nil {
		s.recordFailure(err)
		return nil, false, err
	}
	return d.Children()
}

func (s *LookupService) Provinces(q Query) ([]gb2260.Division, error) {
	metrics.LookupsCounter.WithLabelValues("provinces").Inc()

	provinces, err := s.store.Provinces(q.Source, q.Revision)
	if err != nil {
		s.recordFailure(err)
	}
	return provinces, err
}

// FindByName returns divisions whose name matches exactly.
func (s *LookupService) FindByName(ctx context.Context, q Query, name string) ([]gb2260.Division, error) {
	metrics.LookupsCounter.WithLabelValues("name").Inc()

	codes, err := s.names.GetCodesByName(ctx, q.Source.String(), q.Revision, name)
	if err != nil {
		return nil, fmt.Errorf("couldn't find codes by name: %w", err)
	}

	divisions := make([]gb2260.Division, 0, len(codes))
	for _, code := range codes {
		d, err := s.store.Get(q.Source, q.Revision, code)
		if err != nil {
			s.logInconsistency(q, code, err)
			continue
		}
		divisions = append(divisions, d)
	}
	return divisions, nil
}

func (s *LookupService) recordFailure(err error) {
	switch {
	case errors.Is(err, gb2260.ErrUnknownRevision):
		metrics.FailedLookupsCounter.WithLabelValues("unknown_revision").Inc()
	case errors.Is(err, gb2260.ErrUnknownCode):
		metrics.FailedLookupsCounter.WithLabelValues("unknown_code").Inc()
	}
	log.Debugf("lookup failed: %v", err)
}

func (s *LookupService) logInconsistency(q Query, code string, err error) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeRegistry).
		Errorf("registry %v is inconsistent for code %v: %v", q, code, err)
}
