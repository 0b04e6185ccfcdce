package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"snapurl_admin/internal/domain/model"
	"snapurl_admin/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionFor(userID string) model.Session {
	return model.Session{
		User:            &model.User{ID: userID, Role: model.RoleUser},
		Token:           "tok",
		IsAuthenticated: true,
	}
}

func TestAddIsNoopForAnonymousSession(t *testing.T) {
	svc := NewNotificationService(repository.NewMemoryNotificationRepository())

	n := svc.Add(context.Background(), model.Session{}, "Hello", "world")
	assert.Nil(t, n)

	list, err := svc.List(context.Background(), model.Session{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListIsCappedAndNewestFirst(t *testing.T) {
	svc := NewNotificationService(repository.NewMemoryNotificationRepository())
	sess := sessionFor("u1")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	i := 0
	svc.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Second)
	}

	for j := 0; j < model.NotificationCap+1; j++ {
		require.NotNil(t, svc.Add(context.Background(), sess, fmt.Sprintf("n%d", j), "m"))
	}

	svc.now = func() time.Time { return base.Add(time.Hour) }
	list, err := svc.List(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, list, model.NotificationCap)

	// Newest first; the very first notification was evicted.
	assert.Equal(t, fmt.Sprintf("n%d", model.NotificationCap), list[0].Title)
	assert.Equal(t, "n1", list[len(list)-1].Title)
}

func TestListsAreIsolatedPerUser(t *testing.T) {
	svc := NewNotificationService(repository.NewMemoryNotificationRepository())

	require.NotNil(t, svc.Add(context.Background(), sessionFor("alice"), "for alice", "m"))

	bobList, err := svc.List(context.Background(), sessionFor("bob"))
	require.NoError(t, err)
	assert.Empty(t, bobList, "switching user must not leak another account's notifications")

	aliceList, err := svc.List(context.Background(), sessionFor("alice"))
	require.NoError(t, err)
	require.Len(t, aliceList, 1)
	assert.Equal(t, "for alice", aliceList[0].Title)
}

func TestMarkReadAndClear(t *testing.T) {
	svc := NewNotificationService(repository.NewMemoryNotificationRepository())
	sess := sessionFor("u1")

	n := svc.Add(context.Background(), sess, "t", "m")
	require.NotNil(t, n)
	assert.False(t, n.Read)

	require.NoError(t, svc.MarkRead(context.Background(), sess, n.ID))
	list, err := svc.List(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)

	require.NoError(t, svc.Clear(context.Background(), sess))
	list, err = svc.List(context.Background(), sess)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRelativeTimeBuckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{90 * time.Minute, "1 hour ago"},
		{26 * time.Hour, "1 day ago"},
		{3 * 24 * time.Hour, "3 days ago"},
		{30 * 24 * time.Hour, "May 16, 2025"},
	}
	for _, tt := range tests {
		n := model.Notification{CreatedAt: now.Add(-tt.age)}
		assert.Equal(t, tt.want, n.RelativeTime(now), "age %s", tt.age)
	}
}
