package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSender struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSender) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	return &sqs.SendMessageOutput{}, f.err
}

func TestSQSClientSendEncodesBody(t *testing.T) {
	fake := &fakeSender{}
	c := &SQSClient{client: fake, queueURL: "https://sqs.example/queue"}

	msg := NewParseDocument("doc-1", "user-1", "req-1", time.Now())
	if err := c.Send(context.Background(), msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	if aws.ToString(fake.input.QueueUrl) != "https://sqs.example/queue" {
		t.Fatalf("unexpected queue url %s", aws.ToString(fake.input.QueueUrl))
	}
	decoded, err := DecodeMessage([]byte(aws.ToString(fake.input.MessageBody)))
	if err != nil || decoded.DocumentID != "doc-1" {
		t.Fatalf("unexpected body %q (%v)", aws.ToString(fake.input.MessageBody), err)
	}
}

func TestSQSClientSendWrapsError(t *testing.T) {
	boom := errors.New("throttled")
	c := &SQSClient{client: &fakeSender{err: boom}, queueURL: "q"}
	if err := c.Send(context.Background(), Message{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewSQSClientRequiresURL(t *testing.T) {
	if _, err := NewSQSClient(context.Background(), "us-east-1", " "); err == nil {
		t.Fatalf("expected missing url error")
	}
}
