package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
	"github.com/jobdeck/jobdeck-api/internal/mocks"
)

func TestNotificationServiceUnreadCount(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss counts and caches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockNotificationRepository(ctrl)
		cache := mocks.NewMockCacheRepository(ctrl)
		svc := MustNewNotificationService(NotificationServiceOptions{Repo: repo, Cache: cache})

		cache.EXPECT().Get(ctx, unreadCountCacheKey("user-1")).Return(nil, nil)
		repo.EXPECT().CountUnread(ctx, "user-1").Return(3, nil)
		cache.EXPECT().Set(ctx, unreadCountCacheKey("user-1"), []byte("3"), defaultUnreadCountTTL).Return(nil)

		count, err := svc.UnreadCount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockNotificationRepository(ctrl)
		cache := mocks.NewMockCacheRepository(ctrl)
		svc := MustNewNotificationService(NotificationServiceOptions{Repo: repo, Cache: cache})

		cache.EXPECT().Get(ctx, unreadCountCacheKey("user-1")).Return([]byte("7"), nil)

		count, err := svc.UnreadCount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 7, count)
	})

	t.Run("works without a cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockNotificationRepository(ctrl)
		svc := MustNewNotificationService(NotificationServiceOptions{Repo: repo})

		repo.EXPECT().CountUnread(ctx, "user-1").Return(0, nil)

		count, err := svc.UnreadCount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestNotificationServiceMarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("marks and invalidates the counter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockNotificationRepository(ctrl)
		cache := mocks.NewMockCacheRepository(ctrl)
		svc := MustNewNotificationService(NotificationServiceOptions{Repo: repo, Cache: cache})

		repo.EXPECT().MarkRead(ctx, "n-1", "user-1").Return(true, nil)
		cache.EXPECT().Delete(ctx, unreadCountCacheKey("user-1")).Return(true, nil)

		require.NoError(t, svc.MarkRead(ctx, "n-1", "user-1"))
	})

	t.Run("foreign or missing notification reports not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockNotificationRepository(ctrl)
		svc := MustNewNotificationService(NotificationServiceOptions{Repo: repo})

		repo.EXPECT().MarkRead(ctx, "n-1", "user-2").Return(false, nil)

		err := svc.MarkRead(ctx, "n-1", "user-2")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
