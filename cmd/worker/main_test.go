package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"hireprompt-backend/internal/queue"
	"hireprompt-backend/internal/resumes"
	"hireprompt-backend/internal/shared/apperr"
)

type fakeSQS struct {
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type fakeReparser struct {
	err   error
	calls int
}

func (f *fakeReparser) Reparse(ctx context.Context, userID, id string) (resumes.Document, error) {
	f.calls++
	if f.err != nil {
		return resumes.Document{}, f.err
	}
	return resumes.Document{ID: id, UserID: userID}, nil
}

func parseMessage(t *testing.T, id string) sqstypes.Message {
	t.Helper()
	body, err := queue.EncodeMessage(queue.NewParseDocument("doc-"+id, "user-1", "req-"+id, time.Now()))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return sqstypes.Message{
		MessageId:     aws.String("m" + id),
		ReceiptHandle: aws.String("r" + id),
		Body:          aws.String(string(body)),
		Attributes:    map[string]string{"ApproximateReceiveCount": "1"},
	}
}

func TestWorkerDeletesMessageOnSuccess(t *testing.T) {
	client := &fakeSQS{}
	svc := &fakeReparser{}

	handleMessage(context.Background(), client, "queue", svc, parseMessage(t, "1"))

	if svc.calls != 1 {
		t.Fatalf("expected one reparse, got %d", svc.calls)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "r1" {
		t.Fatalf("expected delete of r1, got %v", client.deleted)
	}
}

func TestWorkerKeepsMessageOnTransientFailure(t *testing.T) {
	client := &fakeSQS{}
	svc := &fakeReparser{err: apperr.Wrap(apperr.KindNormalization, "failed to structure resume", errors.New("timeout"))}

	handleMessage(context.Background(), client, "queue", svc, parseMessage(t, "2"))

	if len(client.deleted) != 0 {
		t.Fatalf("expected no delete, got %d", len(client.deleted))
	}
}

func TestWorkerDeletesOnPermanentFailure(t *testing.T) {
	client := &fakeSQS{}
	svc := &fakeReparser{err: resumes.ErrNotFound}

	handleMessage(context.Background(), client, "queue", svc, parseMessage(t, "3"))

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
}

func TestWorkerDeletesOnInvalidJSON(t *testing.T) {
	client := &fakeSQS{}
	svc := &fakeReparser{}
	msg := sqstypes.Message{
		MessageId:     aws.String("m4"),
		ReceiptHandle: aws.String("r4"),
		Body:          aws.String("{bad-json"),
	}

	handleMessage(context.Background(), client, "queue", svc, msg)

	if svc.calls != 0 {
		t.Fatalf("expected no reparse")
	}
	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
}

func TestReceiveCount(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
		want  int
	}{
		{name: "missing", want: 0},
		{name: "numeric", attrs: map[string]string{"ApproximateReceiveCount": "3"}, want: 3},
		{name: "garbage", attrs: map[string]string{"ApproximateReceiveCount": "x"}, want: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := receiveCount(sqstypes.Message{Attributes: tt.attrs}); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
