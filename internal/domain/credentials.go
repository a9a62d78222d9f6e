package domain

// Credentials is the OAuth credential triple for the activity provider.
// It is sealed before it reaches persistent storage.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // epoch seconds
}
