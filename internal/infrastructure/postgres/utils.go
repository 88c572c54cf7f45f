package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/acaclick-api/internal/domain"
)

// Mensajes de unicidad de usuarios.
const (
	msgCorreoDuplicado   = "Ya existe un usuario con este correo electrónico."
	msgUsernameDuplicado = "Ya existe un usuario con este nombre de usuario."
	msgDuplicado         = "Ya existe un usuario con este correo o username."
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// usuarioConflict traduce una violación de unicidad de la tabla usuarios a
// *domain.ConflictError, nombrando correo o username cuando el constraint lo indica.
func usuarioConflict(err error) *domain.ConflictError {
	detail := err.Error()
	hint := detail
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Detail != "" {
			detail = pgErr.Detail
		}
		hint = pgErr.ConstraintName + " " + pgErr.Detail + " " + pgErr.Message
	}
	hint = strings.ToLower(hint)
	msg := msgDuplicado
	switch {
	case strings.Contains(hint, "correo"):
		msg = msgCorreoDuplicado
	case strings.Contains(hint, "username"):
		msg = msgUsernameDuplicado
	}
	return &domain.ConflictError{Message: msg, Detail: detail}
}
