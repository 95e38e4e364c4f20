package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitsocial/pkg/logger"
	"fitsocial/pkg/queue"
	"fitsocial/services/notification/internal/entity"
	"fitsocial/services/notification/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	InboxCapacity = 200
	InboxTTL      = 30 * 24 * time.Hour
)

var messages = map[queue.TaskType]string{
	queue.TaskPostLike:    "%s liked your post",
	queue.TaskCommentLike: "%s liked your comment",
	queue.TaskComment:     "%s commented on your post",
	queue.TaskReply:       "%s replied to your comment",
	queue.TaskFollow:      "%s started following you",
	queue.TaskRoutineSave: "%s saved your routine",
	queue.TaskRoutineCopy: "%s copied your routine",
}

func InboxKey(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func UnreadKey(userID string) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}

// LiveChannel is the pub/sub channel new notifications are announced on.
func LiveChannel(userID string) string {
	return fmt.Sprintf("notifications:live:%s", userID)
}

type NotificationUseCase interface {
	HandleTask(task queue.Task) error
	GetNotifications(userID string, limit, offset int) (*entity.Inbox, error)
	MarkRead(userID string) error
	Clear(userID string) error
	Subscribe(ctx context.Context, userID string) *redis.PubSub
}

type notificationUseCase struct {
	userRepo    persistent.UserRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewNotificationUseCase(userRepo persistent.UserRepository, redisClient *redis.Client, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		userRepo:    userRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

// HandleTask turns an engagement task into an inbox entry for its recipient.
// An unknown task type is an error so the consumer drops it.
func (uc *notificationUseCase) HandleTask(task queue.Task) error {
	format, ok := messages[task.Type]
	if !ok {
		uc.logger.Error("[NOTIFICATION HANDLER] Unknown notification type: %s", task.Type)
		return fmt.Errorf("unknown notification type: %s", task.Type)
	}
	if task.ActorID != "" && task.ActorID == task.RecipientID {
		uc.logger.Info("[NOTIFICATION HANDLER] Skipping self notification %s for %s", task.Type, task.RecipientID)
		return nil
	}

	username, err := uc.userRepo.GetUsername(task.ActorID)
	if err != nil {
		uc.logger.Warn("[NOTIFICATION HANDLER] Failed to resolve actor %s: %v", task.ActorID, err)
		username = "Someone"
	}

	createdAt := task.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	notification := entity.Notification{
		ID:            uuid.New().String(),
		Type:          string(task.Type),
		ActorID:       task.ActorID,
		ActorUsername: username,
		Message:       fmt.Sprintf(format, username),
		PostID:        task.PostID,
		CommentID:     task.CommentID,
		RoutineID:     task.RoutineID,
		CreatedAt:     createdAt,
	}

	if err := uc.store(task.RecipientID, notification); err != nil {
		uc.logger.Error("[NOTIFICATION HANDLER] Failed to store %s notification for %s: %v", task.Type, task.RecipientID, err)
		return err
	}

	uc.logger.Info("[NOTIFICATION HANDLER] Stored %s notification for %s", task.Type, task.RecipientID)
	return nil
}

func (uc *notificationUseCase) store(userID string, notification entity.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx := context.Background()
	inboxKey := InboxKey(userID)
	unreadKey := UnreadKey(userID)

	_, err = uc.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, inboxKey, body)
		pipe.LTrim(ctx, inboxKey, 0, InboxCapacity-1)
		pipe.Expire(ctx, inboxKey, InboxTTL)
		pipe.Incr(ctx, unreadKey)
		pipe.Expire(ctx, unreadKey, InboxTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if err := uc.redisClient.Publish(ctx, LiveChannel(userID), body).Err(); err != nil {
		uc.logger.Warn("[NOTIFICATION HANDLER] Failed to announce notification for %s: %v", userID, err)
	}
	return nil
}

func (uc *notificationUseCase) GetNotifications(userID string, limit, offset int) (*entity.Inbox, error) {
	ctx := context.Background()
	inboxKey := InboxKey(userID)

	raw, err := uc.redisClient.LRange(ctx, inboxKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	notifications := make([]entity.Notification, 0, len(raw))
	for _, item := range raw {
		var n entity.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			uc.logger.Warn("Skipping unreadable notification for %s: %v", userID, err)
			continue
		}
		notifications = append(notifications, n)
	}

	total, err := uc.redisClient.LLen(ctx, inboxKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	unread, err := uc.redisClient.Get(ctx, UnreadKey(userID)).Int64()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get unread count: %w", err)
	}
	if unread > total {
		unread = total
	}

	return &entity.Inbox{Notifications: notifications, Total: total, Unread: unread}, nil
}

func (uc *notificationUseCase) MarkRead(userID string) error {
	if err := uc.redisClient.Del(context.Background(), UnreadKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (uc *notificationUseCase) Clear(userID string) error {
	if err := uc.redisClient.Del(context.Background(), InboxKey(userID), UnreadKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	uc.logger.Info("Cleared notifications for %s", userID)
	return nil
}

func (uc *notificationUseCase) Subscribe(ctx context.Context, userID string) *redis.PubSub {
	return uc.redisClient.Subscribe(ctx, LiveChannel(userID))
}
