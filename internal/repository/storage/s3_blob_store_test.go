package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dafibh/gofinance/gofinance-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 keeps objects in a map and records bucket calls
type fakeS3 struct {
	objects       map[string][]byte
	bucketExists  bool
	headErr       error
	createdBucket bool
	getErr        error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	if !f.bucketExists {
		return nil, &types.NotFound{}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(ctx context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.createdBucket = true
	f.bucketExists = true
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3BlobStore_EnsureBucket(t *testing.T) {
	fake := newFakeS3()
	store := newS3BlobStore(fake, "ledger", "")

	require.NoError(t, store.ensureBucket(context.Background()))
	assert.True(t, fake.createdBucket)

	denied := newFakeS3()
	denied.headErr = errors.New("403 forbidden")
	store = newS3BlobStore(denied, "ledger", "")
	assert.Error(t, store.ensureBucket(context.Background()))
	assert.False(t, denied.createdBucket)
}

func TestS3BlobStore_GetPut(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := newS3BlobStore(fake, "ledger", "users/me")

	_, err := store.Get(ctx, domain.DefaultLedgerKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Put(ctx, domain.DefaultLedgerKey, []byte(`[]`)))
	assert.Contains(t, fake.objects, "users/me/"+domain.DefaultLedgerKey)

	got, err := store.Get(ctx, domain.DefaultLedgerKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestS3BlobStore_GetFailure(t *testing.T) {
	fake := newFakeS3()
	fake.getErr = errors.New("connection reset")
	store := newS3BlobStore(fake, "ledger", "")

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrKeyNotFound), "a failed read must not look like an absent key")
}
