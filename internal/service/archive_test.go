package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bucketStub struct {
	mu   sync.Mutex
	keys []string
}

func (b *bucketStub) HeadObject(_ context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range b.keys {
		if k == aws.ToString(params.Key) {
			return &s3.HeadObjectOutput{}, nil
		}
	}
	return nil, &smithy.GenericAPIError{Code: "NotFound"}
}

func (b *bucketStub) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if _, err := io.Copy(io.Discard, params.Body); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.keys = append(b.keys, aws.ToString(params.Key))
	return &s3.PutObjectOutput{}, nil
}

func TestArchiveDisabled(t *testing.T) {
	a := NewArchive(testConfig(), nil)
	assert.False(t, a.Enabled())
	a.ArchiveAsync(RealmWorkbooks, "", "yard.xlsx", []byte("x"))
	a.Wait()
}

func TestArchiveUploads(t *testing.T) {
	ctx := context.Background()
	bucket := &bucketStub{}
	archive := newArchive(bucket, "yard-archive")
	require.True(t, archive.Enabled())

	env := newTestEnv(nil)
	yard := NewYard(env.state, env.sync, env.guard, archive)
	dataset, err := yard.Upload(ctx, "Yard.xlsx", yardWorkbook(t))
	require.NoError(t, err)
	archive.Wait()

	require.Len(t, bucket.keys, 1)
	assert.True(t, strings.HasPrefix(bucket.keys[0], ArchiveS3Prefix+RealmWorkbooks+"/"), bucket.keys[0])
	assert.True(t, strings.HasSuffix(bucket.keys[0], "_"+dataset.Version+".xlsx.gz"), bucket.keys[0])

	key, err := archive.Archive(ctx, RealmWorkbooks, dataset.Version, "Yard.xlsx", []byte("again"))
	require.NoError(t, err)
	assert.Equal(t, bucket.keys[0], key)

	_, err = archive.Archive(ctx, "unknown", "", "x.txt", []byte("x"))
	assert.Error(t, err)
}
