package file_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsname/pkg/file"
	"github.com/dmitrymomot/fsname/pkg/fsname"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectsOutput), args.Error(1)
}

// MockS3ListObjectsV2Paginator is a mock implementation of the S3ListObjectsV2Paginator interface
type MockS3ListObjectsV2Paginator struct {
	mock.Mock
}

func (m *MockS3ListObjectsV2Paginator) HasMorePages() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockS3ListObjectsV2Paginator) NextPage(ctx context.Context, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

// drainBody reads the upload body the way the SDK would.
func drainBody(args mock.Arguments) {
	params := args.Get(1).(*s3.PutObjectInput)
	_, _ = io.ReadAll(params.Body)
}

func newTestS3Storage(t *testing.T, client file.S3Client, opts ...file.S3Option) *file.S3Storage {
	t.Helper()
	opts = append([]file.S3Option{file.WithS3Client(client)}, opts...)
	storage, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket: "test-bucket",
		Region: "us-east-1",
	}, opts...)
	require.NoError(t, err)
	return storage
}

func singlePage(contents ...types.Object) func(file.S3Client, *s3.ListObjectsV2Input) file.S3ListObjectsV2Paginator {
	paginator := new(MockS3ListObjectsV2Paginator)
	paginator.On("HasMorePages").Return(true).Once()
	paginator.On("NextPage", mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{Contents: contents}, nil).Once()
	paginator.On("HasMorePages").Return(false).Once()
	return func(file.S3Client, *s3.ListObjectsV2Input) file.S3ListObjectsV2Paginator {
		return paginator
	}
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()
	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:      "test-bucket",
			Region:      "us-east-1",
			AccessKeyID: "test-key",
			SecretKey:   "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("with custom endpoint", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:         "test-bucket",
			Region:         "us-east-1",
			Endpoint:       "http://localhost:9000",
			ForcePathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
		assert.Nil(t, storage)
	})

	t.Run("missing region", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{Bucket: "test-bucket"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
		assert.Nil(t, storage)
	})

	t.Run("nil policy", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket: "test-bucket",
			Region: "us-east-1",
		}, file.WithS3Client(new(MockS3Client)), file.WithS3Policy(nil))
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
		assert.Nil(t, storage)
	})
}

func TestS3Storage_Save(t *testing.T) {
	t.Parallel()
	t.Run("successful save", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("PutObject",
			mock.Anything, // context
			mock.MatchedBy(func(params *s3.PutObjectInput) bool {
				return aws.ToString(params.Bucket) == "test-bucket" &&
					aws.ToString(params.Key) == "uploads/test.txt" &&
					params.Body != nil &&
					aws.ToString(params.ContentType) == "text/plain; charset=utf-8"
			}),
			mock.Anything, // optFns
		).Return(&s3.PutObjectOutput{}, nil).Run(drainBody)

		storage := newTestS3Storage(t, mockClient)

		content := []byte("hello world")
		result, err := storage.Save(context.Background(), "uploads/test.txt", bytes.NewReader(content))
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "test.txt", result.Filename)
		assert.Equal(t, int64(len(content)), result.Size)
		assert.Equal(t, ".txt", result.Extension)
		assert.Equal(t, "uploads/test.txt", result.RelativePath)
		assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", result.Checksum)
		assert.Empty(t, result.AbsolutePath)

		mockClient.AssertExpectations(t)
	})

	t.Run("sanitizes key segments", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("PutObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.PutObjectInput) bool {
				return aws.ToString(params.Key) == "reports \uFFFD2024\uFFFD/q1\uFFFDdraft\uFFFD.pdf" &&
					aws.ToString(params.ContentType) == "application/pdf"
			}),
			mock.Anything,
		).Return(&s3.PutObjectOutput{}, nil).Run(drainBody)

		storage := newTestS3Storage(t, mockClient)

		result, err := storage.Save(context.Background(), "reports [2024]/q1{draft}.pdf", bytes.NewReader(pdfHeader))
		require.NoError(t, err)
		assert.Equal(t, "q1\uFFFDdraft\uFFFD.pdf", result.Filename)
		assert.True(t, result.IsPDF())

		mockClient.AssertExpectations(t)
	})

	t.Run("custom policy", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("PutObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.PutObjectInput) bool {
				return aws.ToString(params.Key) == "shared/CON_.txt"
			}),
			mock.Anything,
		).Return(&s3.PutObjectOutput{}, nil).Run(drainBody)

		storage := newTestS3Storage(t, mockClient, file.WithS3Policy(fsname.NewOneDrive()))

		_, err := storage.Save(context.Background(), "shared/CON.txt", strings.NewReader("x"))
		require.NoError(t, err)

		mockClient.AssertExpectations(t)
	})

	t.Run("path traversal attempt", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		// No expectations - the path validation fails before S3 is called
		storage := newTestS3Storage(t, mockClient)

		result, err := storage.Save(context.Background(), "../../../etc/passwd", strings.NewReader("malicious"))
		assert.ErrorIs(t, err, file.ErrInvalidPath)
		assert.Nil(t, result)

		mockClient.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		t.Parallel()
		storage := newTestS3Storage(t, new(MockS3Client))

		result, err := storage.Save(context.Background(), "test.txt", nil)
		assert.ErrorIs(t, err, file.ErrNilReader)
		assert.Nil(t, result)
	})

	t.Run("S3 error", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("S3 error"))

		storage := newTestS3Storage(t, mockClient)

		result, err := storage.Save(context.Background(), "uploads/test.txt", strings.NewReader("test content"))
		assert.ErrorContains(t, err, "upload file operation failed")
		assert.Nil(t, result)

		mockClient.AssertExpectations(t)
	})
}

func TestS3Storage_Delete(t *testing.T) {
	t.Parallel()
	t.Run("successful delete", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		isKey := func(key string) bool { return key == "uploads/NUL_" }
		mockClient.On("HeadObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.HeadObjectInput) bool {
				return aws.ToString(params.Bucket) == "test-bucket" && isKey(aws.ToString(params.Key))
			}),
			mock.Anything,
		).Return(&s3.HeadObjectOutput{}, nil)
		mockClient.On("DeleteObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.DeleteObjectInput) bool {
				return aws.ToString(params.Bucket) == "test-bucket" && isKey(aws.ToString(params.Key))
			}),
			mock.Anything,
		).Return(&s3.DeleteObjectOutput{}, nil)

		storage := newTestS3Storage(t, mockClient, file.WithS3Policy(fsname.NewWindows(fsname.WithReplacement('-'))))
		// Windows has no folder rules
		err := storage.Delete(context.Background(), "uploads/NUL")
		assert.ErrorIs(t, err, file.ErrUnsupportedPolicy)

		storage = newTestS3Storage(t, mockClient, file.WithS3Policy(fsname.NewOneDrive()))
		err = storage.Delete(context.Background(), "uploads/NUL")
		require.NoError(t, err)

		mockClient.AssertExpectations(t)
	})

	t.Run("file not found", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{Message: aws.String("missing")})

		storage := newTestS3Storage(t, mockClient)

		err := storage.Delete(context.Background(), "uploads/missing.txt")
		assert.ErrorIs(t, err, file.ErrFileNotFound)

		mockClient.AssertExpectations(t)
	})

	t.Run("delete error", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(&s3.HeadObjectOutput{}, nil)
		mockClient.On("DeleteObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("delete failed"))

		storage := newTestS3Storage(t, mockClient)

		err := storage.Delete(context.Background(), "uploads/test.txt")
		assert.ErrorContains(t, err, "delete file operation failed")

		mockClient.AssertExpectations(t)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		storage := newTestS3Storage(t, new(MockS3Client))
		err := storage.Delete(context.Background(), "../secret")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})
}

func TestS3Storage_DeleteDir(t *testing.T) {
	t.Parallel()
	t.Run("successful delete", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("DeleteObjects",
			mock.Anything,
			mock.MatchedBy(func(params *s3.DeleteObjectsInput) bool {
				return aws.ToString(params.Bucket) == "test-bucket" &&
					params.Delete != nil && len(params.Delete.Objects) == 2
			}),
			mock.Anything,
		).Return(&s3.DeleteObjectsOutput{}, nil)

		var gotPrefix string
		factory := singlePage(
			types.Object{Key: aws.String("uploads/file1.txt"), Size: aws.Int64(100)},
			types.Object{Key: aws.String("uploads/file2.txt"), Size: aws.Int64(200)},
		)
		storage := newTestS3Storage(t, mockClient, file.WithPaginatorFactory(
			func(c file.S3Client, params *s3.ListObjectsV2Input) file.S3ListObjectsV2Paginator {
				gotPrefix = aws.ToString(params.Prefix)
				return factory(c, params)
			}))

		err := storage.DeleteDir(context.Background(), "/uploads/")
		require.NoError(t, err)
		assert.Equal(t, "uploads/", gotPrefix)

		mockClient.AssertExpectations(t)
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()
		storage := newTestS3Storage(t, new(MockS3Client), file.WithPaginatorFactory(singlePage()))

		err := storage.DeleteDir(context.Background(), "empty")
		assert.ErrorIs(t, err, file.ErrDirectoryNotFound)
	})

	t.Run("refuses bucket root", func(t *testing.T) {
		t.Parallel()
		storage := newTestS3Storage(t, new(MockS3Client))
		err := storage.DeleteDir(context.Background(), "/")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		storage := newTestS3Storage(t, new(MockS3Client))
		err := storage.DeleteDir(context.Background(), "../../../etc")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("nil paginator", func(t *testing.T) {
		t.Parallel()
		// Mock clients get no default paginator
		storage := newTestS3Storage(t, new(MockS3Client))
		err := storage.DeleteDir(context.Background(), "uploads")
		assert.ErrorIs(t, err, file.ErrPaginatorNil)
	})

	t.Run("list error", func(t *testing.T) {
		t.Parallel()
		paginator := new(MockS3ListObjectsV2Paginator)
		paginator.On("HasMorePages").Return(true).Once()
		paginator.On("NextPage", mock.Anything, mock.Anything).Return(nil, errors.New("list failed"))

		storage := newTestS3Storage(t, new(MockS3Client), file.WithPaginatorFactory(
			func(file.S3Client, *s3.ListObjectsV2Input) file.S3ListObjectsV2Paginator { return paginator }))

		err := storage.DeleteDir(context.Background(), "uploads")
		assert.ErrorContains(t, err, "list directory operation failed")

		paginator.AssertExpectations(t)
	})

	t.Run("paginated delete", func(t *testing.T) {
		t.Parallel()
		objects := make([]types.Object, 1500)
		for i := range 1500 {
			objects[i] = types.Object{Key: aws.String(fmt.Sprintf("large-dir/file%d.txt", i))}
		}

		mockClient := new(MockS3Client)
		mockClient.On("DeleteObjects",
			mock.Anything,
			mock.MatchedBy(func(params *s3.DeleteObjectsInput) bool {
				return len(params.Delete.Objects) == 1000 || len(params.Delete.Objects) == 500
			}),
			mock.Anything,
		).Return(&s3.DeleteObjectsOutput{}, nil).Times(2)

		paginator := new(MockS3ListObjectsV2Paginator)
		paginator.On("HasMorePages").Return(true).Once()
		paginator.On("NextPage", mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{
			Contents: objects[:1000],
		}, nil).Once()
		paginator.On("HasMorePages").Return(true).Once()
		paginator.On("NextPage", mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{
			Contents: objects[1000:],
		}, nil).Once()
		paginator.On("HasMorePages").Return(false).Once()

		storage := newTestS3Storage(t, mockClient, file.WithPaginatorFactory(
			func(file.S3Client, *s3.ListObjectsV2Input) file.S3ListObjectsV2Paginator { return paginator }))

		err := storage.DeleteDir(context.Background(), "large-dir")
		assert.NoError(t, err)

		mockClient.AssertExpectations(t)
		paginator.AssertExpectations(t)
	})
}

func TestS3Storage_Exists(t *testing.T) {
	t.Parallel()
	t.Run("file exists", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("HeadObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.HeadObjectInput) bool {
				return aws.ToString(params.Key) == "uploads/a\uFFFDb.txt"
			}),
			mock.Anything,
		).Return(&s3.HeadObjectOutput{}, nil)

		storage := newTestS3Storage(t, mockClient)
		assert.True(t, storage.Exists(context.Background(), "uploads/a#b.txt"))

		mockClient.AssertExpectations(t)
	})

	t.Run("file does not exist", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("not found"))

		storage := newTestS3Storage(t, mockClient)
		assert.False(t, storage.Exists(context.Background(), "uploads/notfound.txt"))

		mockClient.AssertExpectations(t)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		storage := newTestS3Storage(t, new(MockS3Client))
		assert.False(t, storage.Exists(context.Background(), "../../../etc/passwd"))
	})
}

func TestS3Storage_List(t *testing.T) {
	t.Parallel()
	t.Run("list files and directories", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("ListObjectsV2",
			mock.Anything,
			mock.MatchedBy(func(params *s3.ListObjectsV2Input) bool {
				return aws.ToString(params.Bucket) == "test-bucket" &&
					aws.ToString(params.Prefix) == "uploads/" &&
					aws.ToString(params.Delimiter) == "/"
			}),
			mock.Anything,
		).Return(&s3.ListObjectsV2Output{
			CommonPrefixes: []types.CommonPrefix{
				{Prefix: aws.String("uploads/images/")},
				{Prefix: aws.String("uploads/docs/")},
			},
			Contents: []types.Object{
				{Key: aws.String("uploads/file1.txt"), Size: aws.Int64(100)},
				{Key: aws.String("uploads/file2.pdf"), Size: aws.Int64(200)},
				{Key: aws.String("uploads/")},
			},
		}, nil)

		storage := newTestS3Storage(t, mockClient)

		entries, err := storage.List(context.Background(), "uploads")
		require.NoError(t, err)
		assert.Len(t, entries, 4)

		dirCount, fileCount := 0, 0
		for _, entry := range entries {
			if entry.IsDir {
				dirCount++
				assert.Contains(t, []string{"images", "docs"}, entry.Name)
				assert.Equal(t, int64(0), entry.Size)
			} else {
				fileCount++
				assert.Contains(t, []string{"file1.txt", "file2.pdf"}, entry.Name)
				assert.Greater(t, entry.Size, int64(0))
			}
		}
		assert.Equal(t, 2, dirCount)
		assert.Equal(t, 2, fileCount)

		mockClient.AssertExpectations(t)
	})

	t.Run("root directory", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("ListObjectsV2",
			mock.Anything,
			mock.MatchedBy(func(params *s3.ListObjectsV2Input) bool {
				return aws.ToString(params.Prefix) == ""
			}),
			mock.Anything,
		).Return(&s3.ListObjectsV2Output{
			Contents: []types.Object{
				{Key: aws.String("file.txt"), Size: aws.Int64(50)},
			},
		}, nil)

		storage := newTestS3Storage(t, mockClient)

		entries, err := storage.List(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		mockClient.AssertExpectations(t)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		storage := newTestS3Storage(t, new(MockS3Client))
		entries, err := storage.List(context.Background(), "../../../etc")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
		assert.Empty(t, entries)
	})

	t.Run("list error", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("ListObjectsV2", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchBucket{})

		storage := newTestS3Storage(t, mockClient)
		entries, err := storage.List(context.Background(), "uploads")
		assert.ErrorIs(t, err, file.ErrBucketNotFound)
		assert.Empty(t, entries)
	})
}

func TestS3Storage_URL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  file.S3Config
		path string
		want string
	}{
		{
			name: "default AWS URL",
			cfg:  file.S3Config{Bucket: "my-bucket", Region: "us-east-1"},
			path: "uploads/image.jpg",
			want: "https://my-bucket.s3.us-east-1.amazonaws.com/uploads/image.jpg",
		},
		{
			name: "custom endpoint",
			cfg:  file.S3Config{Bucket: "my-bucket", Region: "us-east-1", Endpoint: "http://localhost:9000"},
			path: "uploads/image.jpg",
			want: "http://localhost:9000/my-bucket/uploads/image.jpg",
		},
		{
			name: "custom base URL",
			cfg:  file.S3Config{Bucket: "my-bucket", Region: "us-east-1", BaseURL: "https://cdn.example.com"},
			path: "uploads/image.jpg",
			want: "https://cdn.example.com/uploads/image.jpg",
		},
		{
			name: "path with leading slash",
			cfg:  file.S3Config{Bucket: "my-bucket", Region: "us-east-1"},
			path: "/uploads/image.jpg",
			want: "https://my-bucket.s3.us-east-1.amazonaws.com/uploads/image.jpg",
		},
		{
			name: "sanitized key",
			cfg:  file.S3Config{Bucket: "my-bucket", Region: "us-east-1", BaseURL: "https://cdn.example.com"},
			path: "a|b.jpg",
			want: "https://cdn.example.com/a\uFFFDb.jpg",
		},
		{
			name: "traversal rejected",
			cfg:  file.S3Config{Bucket: "my-bucket", Region: "us-east-1"},
			path: "../image.jpg",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			storage, err := file.NewS3Storage(context.Background(), tt.cfg, file.WithS3Client(new(MockS3Client)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, storage.URL(tt.path))
		})
	}
}

func TestS3Storage_ErrorClassification(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("AccessDenied error", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"})

		storage := newTestS3Storage(t, client)
		_, err := storage.Save(ctx, "test.txt", strings.NewReader("content"))
		assert.ErrorIs(t, err, file.ErrAccessDenied)

		client.AssertExpectations(t)
	})

	t.Run("throttling", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "SlowDown", Message: "Reduce your request rate"})

		storage := newTestS3Storage(t, client)
		_, err := storage.Save(ctx, "test.txt", strings.NewReader("content"))
		assert.ErrorIs(t, err, file.ErrServiceUnavailable)
	})

	t.Run("Context timeout", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.DeadlineExceeded).Run(func(args mock.Arguments) {
			time.Sleep(100 * time.Millisecond)
		})

		storage := newTestS3Storage(t, client, file.WithS3UploadTimeout(10*time.Millisecond))
		_, err := storage.Save(ctx, "test.txt", strings.NewReader("content"))
		assert.ErrorIs(t, err, file.ErrOperationTimeout)

		client.AssertExpectations(t)
	})

	t.Run("Context canceled", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.Canceled)

		storage := newTestS3Storage(t, client)
		err := storage.Delete(ctx, "test.txt")
		assert.ErrorIs(t, err, file.ErrOperationCanceled)
	})
}
