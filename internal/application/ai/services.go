package ai

import (
	"context"
	"errors"

	"github.com/goccy/go-json"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/ai"
	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/analysis"
	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
	"github.com/bryanwahyu/factory-save-analyzer/internal/logging"
)

// Analyzer produces the report the advisor works from.
type Analyzer interface {
	Analyze(ctx context.Context, name saves.GeneratedName) (analysis.Outcome, error)
}

type Service struct {
	reports Analyzer
	client  ai.Client
	source  string
}

func NewService(reports Analyzer, client ai.Client, source string) *Service {
	return &Service{reports: reports, client: client, source: source}
}

// Advise analyzes a stored archive and asks the advisor what to do next.
func (s *Service) Advise(ctx context.Context, name saves.GeneratedName) (*ai.Advice, error) {
	out, err := s.reports.Analyze(ctx, name)
	if err != nil {
		return nil, err
	}
	report := out.Report()

	b, err := json.Marshal(report)
	if err != nil {
		return nil, saves.Internal("encode report", err)
	}

	raw, err := s.client.Advise(ctx, string(b))
	if err != nil {
		if errors.Is(err, ai.ErrQuotaExceeded) {
			return nil, err
		}
		logging.Ctx(ctx).Error().Err(err).Str("generated_name", string(name)).Msg("advisor call failed")
		return nil, saves.Internal("advisor unavailable", err)
	}

	var advice ai.Advice
	if err := json.Unmarshal([]byte(raw), &advice); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("generated_name", string(name)).Msg("advisor output not parseable")
		return nil, saves.Internal("advisor answered out of schema", errors.Join(ai.ErrMalformedAdvice, err))
	}
	if advice.SaveName == "" {
		advice.SaveName = report.Basic.SaveName
	}
	if advice.Priorities == nil {
		advice.Priorities = []ai.Priority{}
	}
	advice.Source = s.source
	return &advice, nil
}
