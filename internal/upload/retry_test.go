package upload_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/acmchapter/recruitment-api/internal/upload"
	mockuploader "github.com/acmchapter/recruitment-api/internal/upload/mock"
)

func quickBackoff() retry.Backoff {
	b := retry.NewConstant(time.Millisecond * 10)
	b = retry.WithMaxRetries(3, b)
	return b
}

func TestStoreIdentifier(t *testing.T) {
	t.Run("NoError", func(t *testing.T) {
		ctx := context.Background()
		expected := "identifier"

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		u.EXPECT().StoreIdentifier(gomock.Any()).Return(expected, nil).Times(1)

		retrier := upload.NewRetryUploader(u)
		actual, err := retrier.StoreIdentifier(ctx)

		require.NoError(t, err, "failed to get store identifier")

		assert.Equal(t, expected, actual, "not matching identifier")
	})

	t.Run("ErrorAfter1Try", func(t *testing.T) {
		ctx := context.Background()
		expected := "identifier"

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		counter := new(int)
		u.EXPECT().
			StoreIdentifier(gomock.Any()).
			DoAndReturn(func(_ context.Context) (string, error) {
				*counter++
				if *counter == 2 {
					return expected, nil
				}

				return "", errors.New("expected error")
			}).
			Times(2)

		retrier := upload.NewRetryUploader(u)
		actual, err := retrier.StoreIdentifier(ctx)

		require.NoError(t, err, "failed to get store identifier")

		assert.Equal(t, expected, actual, "not matching identifier")
	})

	t.Run("Error", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		u.EXPECT().StoreIdentifier(gomock.Any()).Return("", errors.New("expected error")).Times(4)

		retrier := upload.NewRetryUploaderBackoff(u, quickBackoff)
		_, err := retrier.StoreIdentifier(ctx)

		require.Error(t, err, "somehow did not get error")
	})
}

func TestUpload(t *testing.T) {
	t.Run("NoError", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		reader := strings.NewReader("hello there")
		url := "url"

		u.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Eq(int64(reader.Len())), gomock.Eq(url)).
			Return(nil).
			Times(1)

		retrier := upload.NewRetryUploader(u)
		err := retrier.Upload(ctx, reader, int64(reader.Len()), url)

		require.NoError(t, err, "failed to upload")
	})

	t.Run("SeeksToStartEachAttempt", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		content := "hello there"
		reader := strings.NewReader(content)
		url := "url"

		counter := new(int)
		u.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Eq(int64(len(content))), gomock.Eq(url)).
			DoAndReturn(func(_ context.Context, r io.ReadSeeker, _ int64, _ string) error {
				*counter++

				got, err := io.ReadAll(r)
				require.NoError(t, err, "failed to drain reader")
				assert.Equal(t, content, string(got), "attempt %d did not see full content", *counter)

				if *counter == 2 {
					return nil
				}

				return errors.New("expected error")
			}).
			Times(2)

		retrier := upload.NewRetryUploader(u)
		err := retrier.Upload(ctx, reader, int64(len(content)), url)

		require.NoError(t, err, "failed to upload")
	})

	t.Run("Error", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		reader := strings.NewReader("hello there")
		url := "url"

		u.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Eq(int64(reader.Len())), gomock.Eq(url)).
			Return(errors.New("expected error")).
			Times(4)

		retrier := upload.NewRetryUploaderBackoff(u, quickBackoff)
		err := retrier.Upload(ctx, reader, int64(reader.Len()), url)

		require.Error(t, err, "somehow uploaded")
	})
}

func TestExists(t *testing.T) {
	t.Run("NoError", func(t *testing.T) {
		for _, expected := range []bool{true, false} {
			ctx := context.Background()

			ctrl := gomock.NewController(t)
			u := mockuploader.NewMockUploader(ctrl)

			url := "url"

			u.EXPECT().Exists(gomock.Any(), gomock.Eq(url)).Return(expected, nil).Times(1)

			retrier := upload.NewRetryUploader(u)
			actual, err := retrier.Exists(ctx, url)

			require.NoError(t, err, "failed to get exists")

			assert.Equal(t, expected, actual, "did not get expected")
		}
	})

	t.Run("Error", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		url := "url"

		u.EXPECT().Exists(gomock.Any(), gomock.Eq(url)).Return(false, errors.New("expected error")).Times(4)

		retrier := upload.NewRetryUploaderBackoff(u, quickBackoff)
		_, err := retrier.Exists(ctx, url)

		require.Error(t, err, "somehow got exists")
	})
}

func TestHashed(t *testing.T) {
	content := "payload bytes"
	// sha256 of "payload bytes"
	const contentHash = "5043c48a936e796a7d6d31fdebb464e52df0e5d2a855e167ea694015ba1641e7"

	t.Run("UploadsWhenMissing", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		reader := strings.NewReader(content)

		u.EXPECT().Exists(gomock.Any(), gomock.Eq(contentHash)).Return(false, nil).Times(1)
		u.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Eq(int64(len(content))), gomock.Eq(contentHash)).
			Return(nil).
			Times(1)

		name, err := upload.Hashed(ctx, u, reader, int64(len(content)))

		require.NoError(t, err, "failed to upload hashed")

		assert.Equal(t, contentHash, name, "wrong object name")
	})

	t.Run("SkipsUploadWhenPresent", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		reader := strings.NewReader(content)

		u.EXPECT().Exists(gomock.Any(), gomock.Eq(contentHash)).Return(true, nil).Times(1)

		name, err := upload.Hashed(ctx, u, reader, int64(len(content)))

		require.NoError(t, err, "failed to upload hashed")

		assert.Equal(t, contentHash, name, "wrong object name")
	})

	t.Run("UploadError", func(t *testing.T) {
		ctx := context.Background()

		ctrl := gomock.NewController(t)
		u := mockuploader.NewMockUploader(ctrl)

		reader := strings.NewReader(content)

		u.EXPECT().Exists(gomock.Any(), gomock.Eq(contentHash)).Return(false, nil).Times(1)
		u.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Eq(int64(len(content))), gomock.Eq(contentHash)).
			Return(errors.New("expected error")).
			Times(1)

		_, err := upload.Hashed(ctx, u, reader, int64(len(content)))

		require.Error(t, err, "somehow uploaded")
	})
}
