package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Transcript records one generation attempt.
type Transcript struct {
	ID          uuid.UUID `json:"id"`
	Prompt      string    `json:"prompt"`
	RawResponse string    `json:"raw_response"`
	Outcome     string    `json:"outcome"`
	RecipeID    string    `json:"recipe_id,omitempty"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TranscriptStore keeps generation transcripts for later review.
type TranscriptStore interface {
	Put(ctx context.Context, t *Transcript) error
}

// S3PutObjectAPI is the subset of the S3 client used for transcripts.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3TranscriptStore writes each transcript as a JSON object under
// transcripts/<date>/<id>.json.
type S3TranscriptStore struct {
	client S3PutObjectAPI
	bucket string
}

func NewS3TranscriptStore(client S3PutObjectAPI, bucket string) *S3TranscriptStore {
	return &S3TranscriptStore{client: client, bucket: bucket}
}

func transcriptKey(t *Transcript) string {
	return fmt.Sprintf("transcripts/%s/%s.json", t.CreatedAt.UTC().Format("2006-01-02"), t.ID)
}

func (s *S3TranscriptStore) Put(ctx context.Context, t *Transcript) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(transcriptKey(t)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// NopTranscriptStore drops transcripts. Used when no bucket is configured.
type NopTranscriptStore struct{}

func (NopTranscriptStore) Put(context.Context, *Transcript) error { return nil }
