package auth

// TokenDecoder lee el payload de un access token SIN verificar la firma.
type TokenDecoder interface {
	Decode(token string) (Claims, error)
}
