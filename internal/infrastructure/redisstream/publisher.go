package redisstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/acaclick-api/internal/application/events"
)

// Campos de cada entrada del stream.
const (
	fieldEvento  = "evento"
	fieldPayload = "payload"
)

// Asegura que Publisher implementa events.Publisher.
var _ events.Publisher = (*Publisher)(nil)

// Publisher agrega eventos al stream con XADD.
type Publisher struct {
	client *redis.Client
	stream string
}

// NewPublisher construye el publicador sobre el stream indicado.
func NewPublisher(client *redis.Client, stream string) *Publisher {
	return &Publisher{client: client, stream: stream}
}

// PublishUsuarioCreado serializa el evento como JSON en el campo payload.
func (p *Publisher) PublishUsuarioCreado(ctx context.Context, ev events.UsuarioCreado) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			fieldEvento:  ev.Evento,
			fieldPayload: string(body),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}
