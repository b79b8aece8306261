// Package session holds the credential token and user record for the running client and persists
// them in a durable key-value store.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
)

// The two fixed storage keys. They are always written and cleared together.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Context is the session lifecycle object: Load initializes it from storage, Set records a login and
// Clear destroys it. It is safe for concurrent use.
type Context struct {
	mu     sync.RWMutex
	store  Store
	logger logger.Logger
	token  string
	user   *models.User
}

func New(store Store, log logger.Logger) *Context {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Context{store: store, logger: log}
}

// Load reads the token and user record from storage. A user record that fails to decode is dropped.
func (c *Context) Load(ctx context.Context) error {
	token, _, err := c.store.Get(ctx, KeyToken)
	if err != nil {
		return errors.NewSessionStoreError("load", err)
	}
	rawUser, hasUser, err := c.store.Get(ctx, KeyUser)
	if err != nil {
		return errors.NewSessionStoreError("load", err)
	}

	var user *models.User
	if hasUser && rawUser != "" {
		var u models.User
		if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
			c.logger.Warn("Discarding unreadable stored user", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			user = &u
		}
	}

	c.mu.Lock()
	c.token = token
	c.user = user
	c.mu.Unlock()
	return nil
}

// Set stores token and user.
func (c *Context) Set(ctx context.Context, token string, user models.User) error {
	if err := c.store.Set(ctx, KeyToken, token); err != nil {
		return errors.NewSessionStoreError("set", err)
	}
	if err := c.saveUser(ctx, user); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = token
	u := user
	c.user = &u
	c.mu.Unlock()

	c.logger.Info("Session started", map[string]interface{}{
		"userId": user.ID,
	})
	return nil
}

// SetUser replaces the stored user record and keeps the token.
func (c *Context) SetUser(ctx context.Context, user models.User) error {
	if err := c.saveUser(ctx, user); err != nil {
		return err
	}
	c.mu.Lock()
	u := user
	c.user = &u
	c.mu.Unlock()
	return nil
}

// Clear removes both keys from memory and storage.
func (c *Context) Clear(ctx context.Context) error {
	c.mu.Lock()
	hadToken := c.token != ""
	c.token = ""
	c.user = nil
	c.mu.Unlock()

	if err := c.store.Delete(ctx, KeyToken, KeyUser); err != nil {
		return errors.NewSessionStoreError("clear", err)
	}
	if hadToken {
		c.logger.Info("Session cleared", nil)
	}
	return nil
}

// Token returns the bearer token, or "" when logged out.
func (c *Context) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// User returns a copy of the stored user record.
func (c *Context) User() (models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return models.User{}, false
	}
	return *c.user, true
}

// Snapshot returns the session as a value.
func (c *Context) Snapshot() models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := models.Session{Token: c.token}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	return s
}

func (c *Context) saveUser(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return errors.NewSessionStoreError("encode user", err)
	}
	if err := c.store.Set(ctx, KeyUser, string(data)); err != nil {
		return errors.NewSessionStoreError("set user", err)
	}
	return nil
}
