package repository

// TokenStore es el puerto del slot único de sesión: como máximo un token
// activo por contexto. Get devuelve "" cuando no hay token persistido.
type TokenStore interface {
	Get() (string, error)
	Put(token string) error
	Clear() error
}
