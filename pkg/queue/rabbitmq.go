package queue

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"fitsocial/pkg/config"
	"fitsocial/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationQueueName  = "notification_queue"
	NotificationExchange   = "notifications"
	NotificationRoutingKey = "engagement"

	maxPriority = 10
)

type TaskType string

const (
	TaskPostLike    TaskType = "like"
	TaskCommentLike TaskType = "comment_like"
	TaskComment     TaskType = "comment"
	TaskReply       TaskType = "reply"
	TaskFollow      TaskType = "follow"
	TaskRoutineSave TaskType = "routine_save"
	TaskRoutineCopy TaskType = "routine_copy"
)

// Task is an engagement event addressed to RecipientID.
type Task struct {
	Type        TaskType  `json:"type"`
	RecipientID string    `json:"recipient_id"`
	ActorID     string    `json:"actor_id"`
	PostID      string    `json:"post_id,omitempty"`
	CommentID   string    `json:"comment_id,omitempty"`
	RoutineID   string    `json:"routine_id,omitempty"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

// Publisher is implemented by Client.
type Publisher interface {
	PublishNotificationTask(task Task) error
}

// Notify publishes task to p. Tasks without a publisher, without a recipient,
// or addressed to their own actor are dropped; publish failures are only logged.
func Notify(p Publisher, log *logger.Logger, task Task) {
	if p == nil || task.RecipientID == "" || task.RecipientID == task.ActorID {
		return
	}

	log.Info("[NOTIFICATION QUEUE] Publishing %s task: actor=%s recipient=%s", task.Type, task.ActorID, task.RecipientID)
	if err := p.PublishNotificationTask(task); err != nil {
		log.Error("[NOTIFICATION QUEUE] Failed to publish %s task: %v", task.Type, err)
	}
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(brokerURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)
	return &Client{conn: conn, channel: channel, logger: log}, nil
}

func brokerURL(cfg *config.Config) string {
	port, err := strconv.Atoi(cfg.RabbitMQPort)
	if err != nil {
		port = 5672
	}
	return amqp.URI{
		Scheme:   "amqp",
		Host:     cfg.RabbitMQHost,
		Port:     port,
		Username: cfg.RabbitMQUser,
		Password: cfg.RabbitMQPassword,
		Vhost:    "/",
	}.String()
}

// declareTopology sets up a durable direct exchange feeding one priority queue.
func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(NotificationExchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	args := amqp.Table{"x-max-priority": maxPriority}
	if _, err := ch.QueueDeclare(NotificationQueueName, true, false, false, false, args); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.QueueBind(NotificationQueueName, NotificationRoutingKey, NotificationExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishNotificationTask publishes a notification task to the queue with priority
func (c *Client) PublishNotificationTask(task Task) error {
	body, err := EncodeTask(task)
	if err != nil {
		return err
	}

	err = c.channel.Publish(NotificationExchange, NotificationRoutingKey, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Priority:     uint8(ClampPriority(task.Priority)),
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish %s task for recipient=%s: %v", task.Type, task.RecipientID, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published %s task for recipient=%s", task.Type, task.RecipientID)
	return nil
}

// ConsumeNotificationTasks consumes notification tasks from the queue
func (c *Client) ConsumeNotificationTasks(handler func(task Task) error) error {
	// manual ack so failed handlers can requeue
	msgs, err := c.channel.Consume(NotificationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from notification queue: %s", NotificationQueueName)

	go func() {
		for msg := range msgs {
			task, err := DecodeTask(msg.Body)
			if err != nil {
				c.logger.Error("[RABBITMQ] Dropping malformed task: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(task); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed for %s task: %v", task.Type, err)
				// Requeue once; a task that fails again on redelivery is dropped.
				msg.Nack(false, !msg.Redelivered)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

func EncodeTask(task Task) ([]byte, error) {
	if task.Type == "" || task.RecipientID == "" {
		return nil, fmt.Errorf("task type and recipient are required")
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	task.Priority = ClampPriority(task.Priority)

	body, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task: %w", err)
	}
	return body, nil
}

func DecodeTask(body []byte) (Task, error) {
	var task Task
	if err := json.Unmarshal(body, &task); err != nil {
		return Task{}, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	if task.Type == "" || task.RecipientID == "" {
		return Task{}, fmt.Errorf("task type and recipient are required")
	}
	return task, nil
}

func ClampPriority(p int) int {
	if p < 0 {
		return 0
	}
	if p > maxPriority {
		return maxPriority
	}
	return p
}
