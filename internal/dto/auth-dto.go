package dto

type RegisterDTO struct {
	Name     string `json:"nombre" validate:"required"`
	Login    string `json:"usuario" validate:"required,min=3"`
	Password string `json:"contrasena" validate:"required,min=6"`
}

type LoginDTO struct {
	Login    string `json:"usuario" validate:"required"`
	Password string `json:"contrasena" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LoginResponseDTO struct {
	User   UserDTO      `json:"usuario"`
	Tokens TokenPairDTO `json:"tokens"`
}
