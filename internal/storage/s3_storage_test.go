package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []string
	body    string
	failDel bool
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, _ := io.ReadAll(params.Body)
	f.body = string(data)
	f.puts = append(f.puts, params)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.failDel {
		return nil, errors.New("access denied")
	}
	f.deletes = append(f.deletes, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_UploadAndDelete(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Storage{client: fake, bucket: "imgs", region: "sa-east-1"}

	key, err := store.Upload(context.Background(), "lojistas", "Fachada.PNG", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "lojistas/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	require.Len(t, fake.puts, 1)
	assert.Equal(t, "imgs", aws.ToString(fake.puts[0].Bucket))
	assert.Equal(t, "image/png", aws.ToString(fake.puts[0].ContentType))
	assert.Equal(t, "png-bytes", fake.body)

	require.NoError(t, store.Delete(context.Background(), key))
	assert.Equal(t, []string{key}, fake.deletes)

	fake.failDel = true
	assert.Error(t, store.Delete(context.Background(), key))
}

func TestS3Storage_URL(t *testing.T) {
	direct := &S3Storage{bucket: "imgs", region: "sa-east-1"}
	assert.Equal(t, "https://imgs.s3.sa-east-1.amazonaws.com/usuarios/a.jpg", direct.URL("usuarios/a.jpg"))

	cdn := &S3Storage{bucket: "imgs", baseURL: "https://cdn.example.com"}
	assert.Equal(t, "https://cdn.example.com/usuarios/a.jpg", cdn.URL("usuarios/a.jpg"))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateContentType("image/jpeg"))
	assert.Error(t, ValidateContentType("application/pdf"))
	assert.NoError(t, ValidateFileSize(10, 10))
	assert.Error(t, ValidateFileSize(11, 10))
}
