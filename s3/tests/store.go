package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/code-payments/flipchat-moderation/s3"
)

func RunStoreTests(t *testing.T, s s3.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s s3.Store){
		testUploadAndDownload,
		testDownloadNonExistentKey,
		testOverwriteUpload,
		testNestedKey,
		testEmptyKey,
	} {
		tf(t, s)
		teardown()
	}
}

func testUploadAndDownload(t *testing.T, s s3.Store) {
	ctx := context.Background()

	key := "testKey"
	data := []byte("testData")

	err := s.Upload(ctx, key, data)
	require.NoError(t, err, "Upload should not return an error")

	retrievedData, err := s.Download(ctx, key)
	require.NoError(t, err, "Download should not return an error")
	require.Equal(t, data, retrievedData, "Downloaded data should match uploaded data")
}

func testDownloadNonExistentKey(t *testing.T, s s3.Store) {
	ctx := context.Background()

	data, err := s.Download(ctx, "nonExistentKey")
	require.ErrorIs(t, err, s3.ErrNotFound)
	require.Nil(t, data, "Downloaded data should be nil for non-existent key")
}

func testOverwriteUpload(t *testing.T, s s3.Store) {
	ctx := context.Background()

	key := "overwriteKey"
	initialData := []byte("initialData")
	newData := []byte("newData")

	err := s.Upload(ctx, key, initialData)
	require.NoError(t, err, "Initial upload should not return an error")

	err = s.Upload(ctx, key, newData)
	require.NoError(t, err, "Overwrite upload should not return an error")

	retrievedData, err := s.Download(ctx, key)
	require.NoError(t, err, "Download after overwrite should not return an error")
	require.Equal(t, newData, retrievedData, "Downloaded data should match the new uploaded data")
}

func testNestedKey(t *testing.T, s s3.Store) {
	ctx := context.Background()

	key := "uploads/images/photo.png"
	data := []byte{0x89, 'P', 'N', 'G'}

	require.NoError(t, s.Upload(ctx, key, data))

	retrievedData, err := s.Download(ctx, key)
	require.NoError(t, err)
	require.Equal(t, data, retrievedData)

	_, err = s.Download(ctx, "uploads/images")
	require.ErrorIs(t, err, s3.ErrNotFound)
}

func testEmptyKey(t *testing.T, s s3.Store) {
	ctx := context.Background()

	require.Error(t, s.Upload(ctx, "", []byte("data")))
}
