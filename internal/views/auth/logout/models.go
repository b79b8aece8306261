package logout

import "context"

type Output struct {
	Redirect string `json:"redirect"`
}

// SessionClearer drops the stored token and user.
type SessionClearer interface {
	Clear(ctx context.Context) error
}
