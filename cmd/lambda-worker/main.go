package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"hireprompt-backend/internal/bootstrap"
	"hireprompt-backend/internal/shared/config"
	"hireprompt-backend/internal/shared/metrics"
	"hireprompt-backend/internal/shared/telemetry"
	"hireprompt-backend/internal/workerproc"
)

var (
	initOnce sync.Once
	initErr  error
	app      *bootstrap.App
)

func initApp() {
	cfg := config.Load()
	telemetry.Configure(telemetry.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "hireprompt-worker"})
	cfg.QueueProvider = "none"
	built, err := bootstrap.Build(cfg)
	if err != nil {
		initErr = err
		return
	}
	app = built
}

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"error": initErr})
		failures := make([]events.SQSBatchItemFailure, 0, len(event.Records))
		for _, record := range event.Records {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
		return events.SQSEventResponse{BatchItemFailures: failures}, initErr
	}
	return processBatch(ctx, app.ResumesService, event), nil
}

// processBatch reports transient failures for redelivery. Permanent failures
// are logged and acknowledged so they do not loop.
func processBatch(ctx context.Context, svc workerproc.Reparser, event events.SQSEvent) events.SQSEventResponse {
	failures := make([]events.SQSBatchItemFailure, 0)
	for _, record := range event.Records {
		msg, err := workerproc.HandleMessage(ctx, svc, record.Body)
		if err == nil {
			metrics.IncWorkerJob("completed")
			continue
		}
		fields := map[string]any{
			"sqs_message_id": record.MessageId,
			"document_id":    msg.DocumentID,
			"error":          err,
		}
		if workerproc.IsPermanent(err) {
			telemetry.Error("worker.parse.discarded", fields)
			metrics.IncWorkerJob("discarded")
			continue
		}
		telemetry.Error("worker.parse.failed", fields)
		metrics.IncWorkerJob("failed")
		failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
	}
	return events.SQSEventResponse{BatchItemFailures: failures}
}

func main() {
	lambda.Start(handler)
}
