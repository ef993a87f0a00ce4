// Package session holds per-session application state that the original
// storefront kept in module-level singletons: the auth token, the signed
// in user and the cart badge count. It is created once at startup and
// torn down on logout.
package session

import (
	"sync"

	"github.com/seyman123/dreamshops-client/internal/domain"
	"github.com/seyman123/dreamshops-client/internal/notify"
	"github.com/seyman123/dreamshops-client/internal/remote"
)

type Context struct {
	tokens   remote.TokenStore
	notifier notify.Notifier

	mu    sync.RWMutex
	user  domain.User
	badge int
}

func New(tokens remote.TokenStore, notifier notify.Notifier) *Context {
	return &Context{tokens: tokens, notifier: notifier}
}

func (c *Context) Tokens() remote.TokenStore { return c.tokens }

func (c *Context) Notifier() notify.Notifier { return c.notifier }

func (c *Context) SignIn(user domain.User, token string) {
	c.tokens.Set(token)
	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
}

func (c *Context) User() domain.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

func (c *Context) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user.ID != 0 && c.tokens.Token() != ""
}

func (c *Context) SetBadge(count int) {
	c.mu.Lock()
	c.badge = count
	c.mu.Unlock()
}

func (c *Context) Badge() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.badge
}

// Logout purges the token and resets session state. Wired into the
// remote client's auth-failure hook so a 401 anywhere tears the session
// down globally.
func (c *Context) Logout() {
	c.tokens.Clear()
	c.mu.Lock()
	c.user = domain.User{}
	c.badge = 0
	c.mu.Unlock()
}
