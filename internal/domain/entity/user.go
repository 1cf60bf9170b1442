package entity

import "time"

// User representa un cliente registrado de la tienda.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca la contraseña en claro
	CreatedAt    time.Time
}
