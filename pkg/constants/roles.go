package constants

// Роли пользователей (коды в колонке usuarios.rol).
const (
	RoleAdmin   = "admin"
	RoleUsuario = "usuario"
)
