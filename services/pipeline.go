package services

import (
	"errors"
	"fmt"

	"tra-stations/models"
	"tra-stations/storage"
	"tra-stations/utils"
)

// PipelineConfig names the inputs and fields a run works on.
type PipelineConfig struct {
	PassengerPath string
	PointPath     string
	JoinKey       string
	PointField    string
}

// RunResult carries the final table and the per-stage counters.
type RunResult struct {
	Records   *models.RecordSet
	Join      JoinStats
	Extract   ExtractStats
	Reproject ReprojectStats
}

// Pipeline runs load → join → extract → reproject → write.
type Pipeline struct {
	cfg         PipelineConfig
	loader      storage.RecordLoader
	joiner      *Joiner
	extractor   *GeometryExtractor
	reprojector *Reprojector
	writers     []storage.RecordWriter
	logger      *utils.Logger
}

// NewPipeline creates a Pipeline from its stages. Writers run in order.
func NewPipeline(
	cfg PipelineConfig,
	loader storage.RecordLoader,
	joiner *Joiner,
	extractor *GeometryExtractor,
	reprojector *Reprojector,
	writers []storage.RecordWriter,
	logger *utils.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		loader:      loader,
		joiner:      joiner,
		extractor:   extractor,
		reprojector: reprojector,
		writers:     writers,
		logger:      logger,
	}
}

// Run executes every stage. Load and join failures abort before any output
// is written. Every writer is attempted even when an earlier one fails;
// the returned error joins all writer failures.
func (p *Pipeline) Run() (*RunResult, error) {
	passengers, err := p.loader.Load(p.cfg.PassengerPath)
	if err != nil {
		return nil, fmt.Errorf("load passengers: %w", err)
	}
	p.logger.Info("[pipeline] Loaded %d passenger rows from %s", passengers.Len(), p.cfg.PassengerPath)

	points, err := p.loader.Load(p.cfg.PointPath)
	if err != nil {
		return nil, fmt.Errorf("load points: %w", err)
	}
	p.logger.Info("[pipeline] Loaded %d point rows from %s", points.Len(), p.cfg.PointPath)

	joined, joinStats, err := p.joiner.Join(passengers, points, p.cfg.JoinKey)
	if err != nil {
		return nil, err
	}

	if !joined.HasColumn(p.cfg.PointField) {
		p.logger.Warn("[pipeline] No %q column in either input; every coordinate will be missing", p.cfg.PointField)
	}

	res := &RunResult{Records: joined, Join: joinStats}
	res.Extract = p.extractor.Apply(joined, p.cfg.PointField)
	res.Reproject = p.reprojector.Apply(joined)

	var errs []error
	for _, w := range p.writers {
		if err := w.Write(joined); err != nil {
			p.logger.Error("[pipeline] %s output failed: %v", w.Name(), err)
			errs = append(errs, err)
			continue
		}
		p.logger.Info("[pipeline] %s output written (%d records)", w.Name(), joined.Len())
	}
	return res, errors.Join(errs...)
}
