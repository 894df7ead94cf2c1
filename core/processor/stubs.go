package processor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"export-orchestrator/core/models"
)

// stubProcessor satisfies the FormatProcessor contract without a real
// encoder: the output descriptor is derived deterministically from the
// job and profile so a real encoder can replace it without touching the
// orchestrator.
type stubProcessor struct {
	format             models.FormatType
	baseSize           int64
	qualityScore       float64
	accessibilityScore float64
	optimized          bool
}

// NewStubProcessor creates a stub processor for the given format
func NewStubProcessor(format models.FormatType, baseSize int64, qualityScore, accessibilityScore float64, optimized bool) FormatProcessor {
	return &stubProcessor{
		format:             format,
		baseSize:           baseSize,
		qualityScore:       qualityScore,
		accessibilityScore: accessibilityScore,
		optimized:          optimized,
	}
}

func (p *stubProcessor) FormatType() models.FormatType { return p.format }

func (p *stubProcessor) Process(ctx context.Context, job *models.ExportJob, profile *models.ExportProfile) (*models.OutputFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, &models.ProcessingError{Format: p.format, Stage: "encode", Detail: err.Error()}
	}
	if profile.Format.Type != p.format {
		return nil, &models.ProcessingError{
			Format: p.format,
			Stage:  "dispatch",
			Detail: fmt.Sprintf("profile format %s does not match processor", profile.Format.Type),
		}
	}

	// Checksum over the logical content identity: same source and
	// profile settings always hash the same.
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d|%d",
		job.SourceFile,
		p.format,
		profile.ID,
		profile.QualitySettings.QualityPercentage,
		profile.ResolutionSettings.DPI,
	)))

	// Size scales with the requested quality percentage.
	size := p.baseSize * int64(profile.QualitySettings.QualityPercentage+1) / 100

	return &models.OutputFile{
		Path:               job.OutputPath,
		Size:               size,
		Format:             p.format,
		Checksum:           hex.EncodeToString(sum[:]),
		QualityScore:       p.qualityScore,
		Optimized:          p.optimized,
		AccessibilityScore: p.accessibilityScore,
	}, nil
}

// RegisterBuiltins registers the stub processors for every built-in
// format with their per-format baseline sizes and scores
func RegisterBuiltins(r *Registry) {
	r.Register(NewStubProcessor(models.FormatPDF, 1024*1024, 0.95, 0.90, true))
	r.Register(NewStubProcessor(models.FormatSVG, 50*1024, 0.98, 0.95, true))
	r.Register(NewStubProcessor(models.FormatPNG, 200*1024, 0.92, 0.88, true))
	r.Register(NewStubProcessor(models.FormatJPG, 150*1024, 0.89, 0.85, true))
	r.Register(NewStubProcessor(models.FormatWebP, 100*1024, 0.91, 0.87, true))
	r.Register(NewStubProcessor(models.FormatEPS, 300*1024, 0.97, 0.92, true))
	r.Register(NewStubProcessor(models.FormatAI, 400*1024, 0.99, 0.94, false))
}
