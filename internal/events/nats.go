package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"media-feed/internal/models"

	"github.com/nats-io/nats.go"
)

type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

func (p *NatsPublisher) PublishPostCreated(ctx context.Context, post *models.Post) error {
	return p.publish(ctx, SubjectPostCreated, NewPostCreated(post))
}

func (p *NatsPublisher) PublishPostDeleted(ctx context.Context, post *models.Post) error {
	return p.publish(ctx, SubjectPostDeleted, PostDeleted{ID: post.ID, AuthorID: post.UserID})
}

// publish is fire-and-forget on the connection; ctx only stops a publish
// whose request is already gone.
func (p *NatsPublisher) publish(ctx context.Context, subject string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling error: %w", err)
	}
	slog.Debug("Publishing event", "subject", subject)
	return p.nc.PublishMsg(&nats.Msg{Subject: subject, Data: data})
}
