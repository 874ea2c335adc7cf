// Package requisition orchestrates one generation request: fetch records,
// assemble basic info, classify transcript lines, fill the form.
package requisition

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/reqscribe/requisition-api/internal/model"
	"github.com/reqscribe/requisition-api/internal/service/basicinfo"
	"github.com/reqscribe/requisition-api/internal/service/classifier"
	"github.com/reqscribe/requisition-api/pkg/errors"
	"github.com/reqscribe/requisition-api/pkg/metrics"
)

// TableFetcher retrieves the named record collections for one request.
type TableFetcher interface {
	FetchTables(ctx context.Context, names []string) (model.Tables, error)
}

// FormFiller writes a field map into a fresh copy of the template.
type FormFiller interface {
	Fill(fields model.FieldMap) (string, error)
}

type Service struct {
	fetcher    TableFetcher
	tables     []string
	assembler  *basicinfo.Service
	classifier *classifier.Classifier
	filler     FormFiller
	cfg        *model.FieldConfig
	metrics    *metrics.Metrics
}

func NewService(
	fetcher TableFetcher,
	tables []string,
	assembler *basicinfo.Service,
	cls *classifier.Classifier,
	filler FormFiller,
	cfg *model.FieldConfig,
	m *metrics.Metrics,
) *Service {
	return &Service{
		fetcher:    fetcher,
		tables:     tables,
		assembler:  assembler,
		classifier: cls,
		filler:     filler,
		cfg:        cfg,
		metrics:    m,
	}
}

// Generate produces a filled requisition document and returns its path.
// Collections are fetched fresh per request; nothing is cached across
// requests.
func (s *Service) Generate(ctx context.Context, doctorID, patientID int64, lines []string) (string, error) {
	tables, err := s.fetcher.FetchTables(ctx, s.tables)
	if err != nil {
		return "", s.fail(err)
	}

	basic, err := s.assembler.Assemble(tables, doctorID, patientID)
	if err != nil {
		return "", s.fail(err)
	}

	entries := model.FieldMap{}
	overflow := classifier.NewOverflow(s.cfg)
	for _, line := range lines {
		fragment, rule, err := s.classifier.Classify(line, basic)
		if err != nil {
			return "", s.fail(err)
		}
		if len(fragment) > 0 {
			entries.Merge(fragment)
			s.metrics.ClassifierMatches.Inc()
			s.metrics.RuleMatches.WithLabelValues(rule).Inc()
			continue
		}

		fragment, err = overflow.Assign(line)
		if err != nil {
			return "", s.fail(err)
		}
		if fragment == nil {
			s.metrics.OverflowDropped.Inc()
			log.Warn().Str("line", line).Msg("overflow slots exhausted, line dropped")
			continue
		}
		entries.Merge(fragment)
		s.metrics.OverflowAssigned.Inc()
	}

	// basic info first, then classified entries; test fields use reserved
	// names so merging is additive, with last write winning on any overlap
	fieldData := model.FieldMap{}
	fieldData.Merge(basic)
	fieldData.Merge(entries)

	path, err := s.filler.Fill(fieldData)
	if err != nil {
		return "", s.fail(err)
	}

	s.metrics.RequisitionsGenerated.Inc()
	log.Info().
		Int64("doctor_id", doctorID).
		Int64("patient_id", patientID).
		Int("lines", len(lines)).
		Str("path", path).
		Msg("requisition generated")
	return path, nil
}

func (s *Service) fail(err error) error {
	s.metrics.RequisitionsFailed.WithLabelValues(errors.KindOf(err).String()).Inc()
	return err
}
