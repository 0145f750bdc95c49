package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/salesrecon/internal/pipeline"
)

// ReconService runs reconciliation batches on behalf of a transport
// (HTTP handler or CLI).
type ReconService struct {
	progressLogging bool
}

func NewReconService(progressLogging bool) *ReconService {
	return &ReconService{progressLogging: progressLogging}
}

// Process executes one full pipeline run over the four uploaded
// tables. Progress checkpoints are logged per run.
func (s *ReconService) Process(ctx context.Context, in pipeline.Inputs) (*pipeline.Result, error) {
	runID := uuid.NewString()
	start := time.Now()

	var progress pipeline.ProgressFunc
	if s.progressLogging {
		progress = func(stage string, percent int) {
			log.Info().
				Str("run_id", runID).
				Str("stage", stage).
				Int("percent", percent).
				Msg("pipeline progress")
		}
	}

	result, err := pipeline.NewOrchestrator(progress).Run(ctx, in)
	if err != nil {
		log.Error().Err(err).Str("run_id", runID).Msg("pipeline run failed")
		return nil, err
	}

	log.Info().
		Str("run_id", runID).
		Int("current_rows", len(result.Current)).
		Int("history_rows", len(result.History)).
		Int("orders", len(result.Orders)).
		Int("clients", len(result.Clients)).
		Dur("elapsed", time.Since(start)).
		Msg("pipeline run completed")

	return result, nil
}
