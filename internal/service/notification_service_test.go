package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
)

type fakeNotificationRepo struct {
	notifications []models.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = uint(len(f.notifications) + 1)
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, schoolID uint, userID string, limit, offset int) ([]models.Notification, error) {
	var matched []models.Notification
	for _, notification := range f.notifications {
		if notification.SchoolID == schoolID && notification.UserID == userID {
			matched = append(matched, notification)
		}
	}
	return matched, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, schoolID, id uint, userID string) (models.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications[i].Read = true
			return f.notifications[i], nil
		}
	}
	return models.Notification{}, gorm.ErrRecordNotFound
}

func newNotificationFixture() (*fakeNotificationRepo, NotificationService) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, nil, "", nil, validator.New(validator.WithRequiredStructEnabled()), testLogger())
	return repo, svc
}

func TestNotificationPublishAndList(t *testing.T) {
	_, svc := newNotificationFixture()

	published, err := svc.Publish(context.Background(), 1, dto.NotificationCreateRequest{
		UserID:  "parent-1",
		Type:    "excuse_decided",
		Message: "your excuse request was approved",
	})
	require.NoError(t, err)
	require.False(t, published.Read)

	listed, err := svc.List(context.Background(), 1, "parent-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "excuse_decided", listed[0].Type)
}

func TestNotificationScopedToSchool(t *testing.T) {
	_, svc := newNotificationFixture()

	_, err := svc.Publish(context.Background(), 1, dto.NotificationCreateRequest{
		UserID:  "parent-1",
		Type:    "excuse_decided",
		Message: "approved",
	})
	require.NoError(t, err)

	other, err := svc.List(context.Background(), 2, "parent-1", 10, 0)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestNotificationSanitizesMessage(t *testing.T) {
	repo, svc := newNotificationFixture()

	published, err := svc.Publish(context.Background(), 1, dto.NotificationCreateRequest{
		UserID:  "parent-1",
		Type:    "observation_created",
		Message: "<script>alert(1)</script>see the new note",
	})
	require.NoError(t, err)
	require.Equal(t, "see the new note", published.Message)
	require.Equal(t, "see the new note", repo.notifications[0].Message)
}

func TestNotificationRejectsEmptyAfterSanitization(t *testing.T) {
	_, svc := newNotificationFixture()

	_, err := svc.Publish(context.Background(), 1, dto.NotificationCreateRequest{
		UserID:  "parent-1",
		Type:    "generic",
		Message: "<script>only markup</script>",
	})
	require.Error(t, err)
}

func TestNotificationSubscribeReceivesPublish(t *testing.T) {
	_, svc := newNotificationFixture()

	channel, cleanup := svc.Subscribe(1, "parent-1")
	defer cleanup()

	_, err := svc.Publish(context.Background(), 1, dto.NotificationCreateRequest{
		UserID:  "parent-1",
		Type:    "exit_issued",
		Message: "an exit permission was issued",
	})
	require.NoError(t, err)

	select {
	case notification := <-channel:
		require.Equal(t, "exit_issued", notification.Type)
	case <-time.After(time.Second):
		t.Fatal("expected streamed notification")
	}
}

func TestNotificationMarkRead(t *testing.T) {
	_, svc := newNotificationFixture()

	published, err := svc.Publish(context.Background(), 1, dto.NotificationCreateRequest{
		UserID:  "parent-1",
		Type:    "generic",
		Message: "hello",
	})
	require.NoError(t, err)

	read, err := svc.MarkRead(context.Background(), 1, published.ID, "parent-1")
	require.NoError(t, err)
	require.True(t, read.Read)
}
