// Package notificacion atiende los eventos de usuarios creados. Por ahora solo deja
// constancia de la notificación; no envía correos.
package notificacion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/acaclick-api/pkg/logger"
)

// ErrPayloadInvalido el mensaje no es un objeto JSON.
var ErrPayloadInvalido = errors.New("notificacion: payload inválido")

// Notifier imprime cada evento recibido como notificación legible.
type Notifier struct {
	log *logger.Logger
	out io.Writer
}

// NewNotifier construye el notificador. out nil = stdout.
func NewNotifier(log *logger.Logger, out io.Writer) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Notifier{log: log, out: out}
}

// Handle procesa un payload del stream usuarios.creados.
func (n *Notifier) Handle(_ context.Context, id string, payload []byte) error {
	var data map[string]interface{}
	if err := json.Unmarshal(payload, &data); err != nil || data == nil {
		n.log.Warn().Str("mensaje_id", id).Bytes("payload", payload).Msg("mensaje descartado: payload inválido")
		return ErrPayloadInvalido
	}
	n.log.Info().Str("mensaje_id", id).RawJSON("payload", payload).Msg("mensaje recibido")

	var pretty bytes.Buffer
	enc := json.NewEncoder(&pretty)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(n.out, "========= [NOTIFICACIÓN] =========\nUsuario creado, debería mandarse un correo:\n%s==================================\n\n", pretty.String())
	return err
}
