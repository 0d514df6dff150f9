package saves

import (
	"context"
	"errors"
	"time"

	"github.com/bryanwahyu/factory-save-analyzer/internal/application"
	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/analysis"
	domain "github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
	"github.com/bryanwahyu/factory-save-analyzer/internal/logging"
	"github.com/bryanwahyu/factory-save-analyzer/internal/metrics"
)

// Service implements the upload / analyze / prune use cases.
// Each call is independent; nothing is locked between calls.
type Service struct {
	Store   domain.ArchiveStore
	Decoder domain.Decoder
	Mirror  domain.Mirror          // optional
	Events  domain.EventRepository // optional
	Clock   application.Clock

	// MaxFiles > 0 runs retention after every successful upload.
	MaxFiles int
}

//
// ==== USE CASES ====
//

// UploadCommand carries one uploaded file.
type UploadCommand struct {
	Data     []byte
	Filename string
	MimeType string
}

// Upload validates, stores and mirrors an archive.
func (s *Service) Upload(ctx context.Context, cmd UploadCommand) (*domain.StoredArchive, error) {
	if err := domain.ValidateUpload(cmd.MimeType, int64(len(cmd.Data))); err != nil {
		return nil, err
	}

	stored, err := s.Store.Store(ctx, cmd.Data, cmd.Filename, cmd.MimeType)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("original_name", cmd.Filename).Msg("store archive failed")
		return nil, err
	}
	metrics.ArchivesStored.Inc()
	metrics.ArchiveBytesStored.Add(float64(stored.SizeBytes))

	if s.Mirror != nil {
		if err := s.Mirror.Put(ctx, string(stored.GeneratedName), cmd.Data, cmd.MimeType); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("generated_name", string(stored.GeneratedName)).Msg("mirror upload failed")
		}
	}
	s.record(ctx, stored.GeneratedName, domain.EventStored, stored.OriginalName)

	// retention is advisory; the upload already succeeded
	if s.MaxFiles > 0 {
		if _, err := s.Prune(ctx, s.MaxFiles); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("max_files", s.MaxFiles).Msg("post-upload retention failed")
		}
	}
	return stored, nil
}

// Decode resolves a stored archive and decodes its header.
func (s *Service) Decode(ctx context.Context, name domain.GeneratedName) (*domain.SaveData, error) {
	raw, err := s.Store.Open(name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.AnalysesTotal.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}
	data, err := s.Decoder.Decode(ctx, raw)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("decode_error").Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("generated_name", string(name)).Msg("decode failed")
		s.record(ctx, name, domain.EventDecodeFailed, err.Error())
		return nil, err
	}
	return data, nil
}

// Analyze decodes a stored archive and computes its report. Results are
// computed per call and never cached.
func (s *Service) Analyze(ctx context.Context, name domain.GeneratedName) (analysis.Outcome, error) {
	data, err := s.Decode(ctx, name)
	if err != nil {
		return nil, err
	}
	out, err := analysis.Analyze(*data)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("analysis_error").Inc()
		logging.Ctx(ctx).Error().Err(err).Str("generated_name", string(name)).Msg("analysis failed")
		s.record(ctx, name, domain.EventAnalysisFailed, err.Error())
		return nil, err
	}
	if out.FullAnalysisAvailable() {
		metrics.AnalysesTotal.WithLabelValues("full").Inc()
	} else {
		metrics.AnalysesTotal.WithLabelValues("header_only").Inc()
	}
	return out, nil
}

// Prune enforces the retention cap on the storage root.
func (s *Service) Prune(ctx context.Context, maxFiles int) (domain.RetentionResult, error) {
	res, err := s.Store.EnforceRetention(ctx, maxFiles)
	if err != nil {
		return res, err
	}
	metrics.ArchivesEvicted.Add(float64(len(res.Deleted)))
	metrics.EvictionFailures.Add(float64(res.Failed))

	for _, name := range res.Deleted {
		if s.Mirror != nil {
			if err := s.Mirror.Remove(ctx, name); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("generated_name", name).Msg("mirror remove failed")
			}
		}
		s.record(ctx, domain.GeneratedName(name), domain.EventEvicted, "")
	}
	return res, nil
}

// History lists the audit trail of one archive, newest first.
func (s *Service) History(ctx context.Context, name domain.GeneratedName, limit int) ([]*domain.ArchiveEvent, error) {
	if s.Events == nil {
		return []*domain.ArchiveEvent{}, nil
	}
	return s.Events.ListByArchive(ctx, string(name), limit)
}

// record writes an audit event; failures are only logged.
func (s *Service) record(ctx context.Context, name domain.GeneratedName, kind domain.EventKind, msg string) {
	if s.Events == nil {
		return
	}
	e := &domain.ArchiveEvent{
		GeneratedName: string(name),
		Kind:          kind,
		Message:       msg,
		CreatedAt:     s.now(),
	}
	if err := s.Events.Save(ctx, e); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("kind", string(kind)).Msg("event log write failed")
	}
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return application.SystemClock{}.Now()
	}
	return s.Clock.Now()
}
