package redisstream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/acaclick-api/pkg/logger"
)

// Handler procesa el payload de una entrada del stream.
type Handler interface {
	Handle(ctx context.Context, id string, payload []byte) error
}

// ConsumerConfig parámetros del grupo consumidor.
type ConsumerConfig struct {
	Stream   string
	Group    string
	Consumer string
	// Block espera máxima de XREADGROUP; negativo = no bloquear.
	Block time.Duration
	Count int64
}

// Consumer lee el stream con un grupo de consumidores desde el inicio y confirma
// (XACK) cada entrada después de procesarla, haya fallado o no.
type Consumer struct {
	client  *redis.Client
	cfg     ConsumerConfig
	handler Handler
	log     *logger.Logger
}

// NewConsumer construye el consumidor.
func NewConsumer(client *redis.Client, cfg ConsumerConfig, handler Handler, log *logger.Logger) *Consumer {
	if cfg.Count <= 0 {
		cfg.Count = 10
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Consumer{client: client, cfg: cfg, handler: handler, log: log}
}

// EnsureGroup crea el grupo (y el stream) si no existen, posicionado al inicio.
func (c *Consumer) EnsureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("crear grupo %s: %w", c.cfg.Group, err)
	}
	return nil
}

// Run consume hasta que ctx se cancele.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.EnsureGroup(ctx); err != nil {
		return err
	}
	c.log.Info().Str("stream", c.cfg.Stream).Str("group", c.cfg.Group).Msg("consumidor conectado, escuchando stream")
	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := c.ConsumirLote(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error().Err(err).Msg("error leyendo stream, reintentando")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
		}
	}
}

// ConsumirLote lee un lote de entradas nuevas para el consumidor, las procesa y
// confirma. Devuelve cuántas procesó.
func (c *Consumer) ConsumirLote(ctx context.Context) (int, error) {
	res, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		Streams:  []string{c.cfg.Stream, ">"},
		Count:    c.cfg.Count,
		Block:    c.cfg.Block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("xreadgroup: %w", err)
	}

	n := 0
	for _, s := range res {
		for _, msg := range s.Messages {
			payload, _ := msg.Values[fieldPayload].(string)
			if err := c.handler.Handle(ctx, msg.ID, []byte(payload)); err != nil {
				c.log.Warn().Err(err).Str("mensaje_id", msg.ID).Msg("mensaje no procesado")
			}
			if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msg.ID).Err(); err != nil {
				return n, fmt.Errorf("xack %s: %w", msg.ID, err)
			}
			n++
		}
	}
	return n, nil
}
