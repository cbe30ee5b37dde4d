package storage_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-portfolio-forms/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Should write and overwrite artifacts", func(t *testing.T) {
		loc, err := store.Put(ctx, "sunset_small.webp", []byte("one"), "image/webp")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "sunset_small.webp"), loc)

		_, err = store.Put(ctx, "sunset_small.webp", []byte("two"), "image/webp")
		require.NoError(t, err)

		got, err := os.ReadFile(loc)
		require.NoError(t, err)
		assert.Equal(t, "two", string(got))

		ok, err := store.Exists(ctx, "sunset_small.webp")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Should report missing artifacts", func(t *testing.T) {
		ok, err := store.Exists(ctx, "missing.webp")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should reject keys that escape the directory", func(t *testing.T) {
		for _, key := range []string{"", "..", "../x.webp", "a/b.webp", `a\b.webp`} {
			_, err := store.Put(ctx, key, []byte("x"), "image/webp")
			assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
		}
	})

	t.Run("Should leave no temp files behind", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), "."), e.Name())
		}
	})
}

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	args := m.Called(*in.Bucket, *in.Key, *in.ContentType, string(body))
	return &s3.PutObjectOutput{}, args.Error(0)
}

func (m *mockS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(*in.Bucket, *in.Key)
	return &s3.HeadObjectOutput{}, args.Error(0)
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()

	t.Run("Should put under prefix", func(t *testing.T) {
		api := new(mockS3)
		api.On("PutObject", "site", "gallery/sunset_small.webp", "image/webp", "data").Return(nil)
		store := storage.NewS3Store(api, "site", "gallery/")

		loc, err := store.Put(ctx, "sunset_small.webp", []byte("data"), "image/webp")
		require.NoError(t, err)
		assert.Equal(t, "s3://site/gallery/sunset_small.webp", loc)
		api.AssertExpectations(t)
	})

	t.Run("Should map NotFound to false", func(t *testing.T) {
		api := new(mockS3)
		api.On("HeadObject", "site", "a.webp").Return(&types.NotFound{})
		api.On("HeadObject", "site", "b.webp").Return(nil)
		api.On("HeadObject", "site", "c.webp").Return(errors.New("denied"))
		store := storage.NewS3Store(api, "site", "")

		ok, err := store.Exists(ctx, "a.webp")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.Exists(ctx, "b.webp")
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = store.Exists(ctx, "c.webp")
		assert.Error(t, err)
	})

	t.Run("Should reject traversal keys", func(t *testing.T) {
		store := storage.NewS3Store(new(mockS3), "site", "")
		_, err := store.Put(ctx, "../x", nil, "image/webp")
		assert.ErrorIs(t, err, storage.ErrInvalidKey)
	})
}
