package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost costo bcrypt usado para nuevas contraseñas.
const DefaultCost = bcrypt.DefaultCost

// HashPassword genera un hash bcrypt (con sal aleatoria) de la contraseña.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compara la contraseña con el hash almacenado.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
