package uploader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john/ytchat/internal/config"
)

type fakeS3 struct {
	failures int
	calls    int
	objects  map[string]string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("service unavailable")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = map[string]string{}
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testUploader(client putObjectAPI, upcfg config.UploaderConfig) *Uploader {
	u := newUploader(client, "chat-logs", upcfg, zerolog.Nop())
	u.backoff = func(int) time.Duration { return time.Millisecond }
	return u
}

func TestGenerateS3Key(t *testing.T) {
	key, err := generateS3Key("youtube_some_channel_20240301_1230_001.jsonl")
	require.NoError(t, err)
	assert.Equal(t, "2024/03/01/youtube/some_channel/youtube_some_channel_20240301_1230_001.jsonl", key)

	_, err = generateS3Key("youtube_20240301_1230.jsonl")
	assert.Error(t, err)

	_, err = generateS3Key("youtube_c_2024xx01_1230_001.jsonl")
	assert.ErrorContains(t, err, "parse timestamp")
}

func TestUploadRetries(t *testing.T) {
	path := writeFile(t, "youtube_c_20240301_1230_001.jsonl", "{}\n")
	fake := &fakeS3{failures: 2}
	u := testUploader(fake, config.UploaderConfig{MaxRetries: 3, DeleteAfterUpload: true})

	require.NoError(t, u.Upload(context.Background(), []string{path}))
	assert.Equal(t, 3, fake.calls)
	assert.Equal(t, "{}\n", fake.objects["chat-logs/2024/03/01/youtube/c/youtube_c_20240301_1230_001.jsonl"])
	assert.NoFileExists(t, path)
}

func TestUploadGivesUp(t *testing.T) {
	path := writeFile(t, "youtube_c_20240301_1230_001.jsonl", "{}\n")
	fake := &fakeS3{failures: 10}
	u := testUploader(fake, config.UploaderConfig{MaxRetries: 1})

	err := u.Upload(context.Background(), []string{path})
	assert.ErrorContains(t, err, "after 2 attempts")
	assert.Equal(t, 2, fake.calls)
	assert.FileExists(t, path)
}
