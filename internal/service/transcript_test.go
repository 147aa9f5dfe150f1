package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3TranscriptStore_Put(t *testing.T) {
	client := &fakeS3{}
	store := NewS3TranscriptStore(client, "transcripts-bucket")

	tr := &Transcript{
		ID:        uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		Prompt:    "prompt",
		Outcome:   OutcomeDeclined,
		CreatedAt: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
	}
	require.NoError(t, store.Put(context.Background(), tr))

	assert.Equal(t, "transcripts-bucket", aws.ToString(client.input.Bucket))
	assert.Equal(t, "transcripts/2024-05-06/11111111-2222-3333-4444-555555555555.json", aws.ToString(client.input.Key))
	assert.Equal(t, "application/json", aws.ToString(client.input.ContentType))

	var decoded Transcript
	require.NoError(t, json.Unmarshal(client.body, &decoded))
	assert.Equal(t, OutcomeDeclined, decoded.Outcome)

	client.err = errors.New("access denied")
	assert.Error(t, store.Put(context.Background(), tr))
}
