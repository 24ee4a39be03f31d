package auth

// Claims representa la información leída del payload del token.
// Es sólo para presentación (mostrar email, armar rutas por user id);
// nunca decide autorización: eso lo hace el backend en cada llamada.
type Claims struct {
	UserID string
	Email  string
}

// TokenPair es lo que entrega el backend en login/registro.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
