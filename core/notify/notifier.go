// Package notify delivers export outcome notifications. Delivery is
// fire-and-forget: failures are logged and never fail an export job.
package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"export-orchestrator/core/models"

	log "github.com/sirupsen/logrus"
)

// Notifier announces job outcomes to an external sink
type Notifier interface {
	NotifyJobCompleted(job *models.ExportJob)
	NotifyJobFailed(job *models.ExportJob)
}

// BatchNotifier announces batch outcomes to an external sink
type BatchNotifier interface {
	NotifyBatchFinished(request *models.BatchExportRequest, result *models.BatchResult)
}

// WebhookNotifier POSTs job outcomes to a webhook URL
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a webhook notifier
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifyJobCompleted posts a completion event
func (n *WebhookNotifier) NotifyJobCompleted(job *models.ExportJob) {
	n.post("export.completed", job)
}

// NotifyJobFailed posts a failure event
func (n *WebhookNotifier) NotifyJobFailed(job *models.ExportJob) {
	n.post("export.failed", job)
}

// NotifyBatchFinished posts a batch outcome event
func (n *WebhookNotifier) NotifyBatchFinished(request *models.BatchExportRequest, result *models.BatchResult) {
	n.send("batch.finished", map[string]interface{}{
		"batch_id":        result.BatchID,
		"batch_name":      request.Name,
		"total_jobs":      result.TotalJobs,
		"successful_jobs": result.SuccessfulJobs,
		"failed_jobs":     result.FailedJobsCount,
		"success_rate":    result.SuccessRate,
	})
}

func (n *WebhookNotifier) post(event string, job *models.ExportJob) {
	n.send(event, map[string]interface{}{
		"job_id": job.ID,
		"status": job.Status,
		"error":  job.ErrorMessage,
	})
}

func (n *WebhookNotifier) send(event string, fields map[string]interface{}) {
	fields["event"] = event
	payload, err := json.Marshal(fields)
	if err != nil {
		log.Printf("Failed to encode %s notification: %v", event, err)
		return
	}

	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("Failed to deliver %s notification: %v", event, err)
		return
	}
	resp.Body.Close()
}

// LogNotifier writes job outcomes to the log. Used when no webhook is
// configured.
type LogNotifier struct{}

// NotifyJobCompleted logs a completion event
func (LogNotifier) NotifyJobCompleted(job *models.ExportJob) {
	log.Printf("Export job completed: %s (%s)", job.ID, job.OutputPath)
}

// NotifyJobFailed logs a failure event
func (LogNotifier) NotifyJobFailed(job *models.ExportJob) {
	log.Printf("Export job failed: %s: %s", job.ID, job.ErrorMessage)
}

// NotifyBatchFinished logs a batch outcome event
func (LogNotifier) NotifyBatchFinished(request *models.BatchExportRequest, result *models.BatchResult) {
	log.Printf("Batch export finished: %s (%d/%d successful)",
		result.BatchID, result.SuccessfulJobs, result.TotalJobs)
}

// MultiNotifier fans one event out to several notifiers
type MultiNotifier []Notifier

// NotifyJobCompleted forwards the event to every notifier
func (m MultiNotifier) NotifyJobCompleted(job *models.ExportJob) {
	for _, n := range m {
		n.NotifyJobCompleted(job)
	}
}

// NotifyJobFailed forwards the event to every notifier
func (m MultiNotifier) NotifyJobFailed(job *models.ExportJob) {
	for _, n := range m {
		n.NotifyJobFailed(job)
	}
}

// NotifyBatchFinished forwards the event to every notifier that
// handles batch outcomes
func (m MultiNotifier) NotifyBatchFinished(request *models.BatchExportRequest, result *models.BatchResult) {
	for _, n := range m {
		if bn, ok := n.(BatchNotifier); ok {
			bn.NotifyBatchFinished(request, result)
		}
	}
}
