package notifications

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Publisher fans notifications out over Redis pub/sub, one channel per
// employee.
type Publisher struct {
	Client  *redis.Client
	Channel string
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{Client: client, Channel: DefaultChannel}
}

func (p *Publisher) ChannelFor(employeeID string) string {
	return p.Channel + ":" + employeeID
}

func (p *Publisher) Deliver(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.Client.Publish(ctx, p.ChannelFor(n.EmployeeID), payload).Err()
}
