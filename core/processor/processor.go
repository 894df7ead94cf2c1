// Package processor defines the pluggable capability that performs the
// actual source-to-output conversion for one format type. New formats
// are added by registering an implementation, never by editing a switch.
package processor

import (
	"context"
	"fmt"
	"sync"

	"export-orchestrator/core/models"
)

// FormatProcessor converts a job's source into one output file.
// Process must be deterministic for identical (job, profile) input and
// must surface internal faults as *models.ProcessingError.
type FormatProcessor interface {
	FormatType() models.FormatType
	Process(ctx context.Context, job *models.ExportJob, profile *models.ExportProfile) (*models.OutputFile, error)
}

// Registry is a typed registry of format processors keyed by format type
type Registry struct {
	mu         sync.RWMutex
	processors map[models.FormatType]FormatProcessor
}

// NewRegistry creates an empty processor registry
func NewRegistry() *Registry {
	return &Registry{processors: make(map[models.FormatType]FormatProcessor)}
}

// Register adds a processor, replacing any previous one for the format
func (r *Registry) Register(p FormatProcessor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processors[p.FormatType()] = p
}

// Get returns the processor for a format type
func (r *Registry) Get(format models.FormatType) (FormatProcessor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.processors[format]
	if !ok {
		return nil, fmt.Errorf("no processor available for format: %s", format)
	}
	return p, nil
}

// Formats lists the registered format types
func (r *Registry) Formats() []models.FormatType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]models.FormatType, 0, len(r.processors))
	for f := range r.processors {
		formats = append(formats, f)
	}
	return formats
}
