package files

import (
	"bytes"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
}

func (f *fakeS3) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(input.Body)

	if err != nil {
		return nil, err
	}

	f.objects[aws.StringValue(input.Bucket)+"/"+aws.StringValue(input.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.StringValue(input.Bucket)+"/"+aws.StringValue(input.Key)]

	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "missing", nil)
	}

	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Files(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	handler := S3Files{config: &S3Config{BucketName: "outputs"}, s3: fake}

	require.Empty(t, handler.WriteFiles(
		&File{ID: "abc", Name: OutputFile, Data: []byte("hello")},
		&File{ID: "abc", Name: OutputErrFile, Data: []byte("oops")},
	))

	assert.Contains(t, fake.objects, "outputs/abc/output")

	data, err := handler.GetFile("abc", OutputErrFile)
	require.NoError(t, err)
	assert.Equal(t, "oops", string(data))

	_, err = handler.GetFile("abc", "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
