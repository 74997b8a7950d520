package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	authKey  = "isAuthenticated"
	ownerKey = "owner"
)

// SessionGate keeps the admin flag in a server-side session.
type SessionGate struct {
	store *session.Store
}

func NewSessionGate(store *session.Store) *SessionGate {
	return &SessionGate{store: store}
}

// IsAuthenticated reports whether the request carries the admin flag.
func (g *SessionGate) IsAuthenticated(c *fiber.Ctx) bool {
	sess, err := g.store.Get(c)
	if err != nil {
		return false
	}
	ok, _ := sess.Get(authKey).(bool)
	return ok
}

// Owner returns the email of the signed-in admin.
func (g *SessionGate) Owner(c *fiber.Ctx) string {
	sess, err := g.store.Get(c)
	if err != nil {
		return ""
	}
	owner, _ := sess.Get(ownerKey).(string)
	return owner
}

// SignIn rotates the session id and sets the flag.
func (g *SessionGate) SignIn(c *fiber.Ctx, owner string) error {
	sess, err := g.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(authKey, true)
	sess.Set(ownerKey, owner)
	return sess.Save()
}

// SignOut drops the whole session.
func (g *SessionGate) SignOut(c *fiber.Ctx) error {
	sess, err := g.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// Guard lets signed-in requests through. Anyone else gets the login page
// in place of the requested one, with status 200.
func (g *SessionGate) Guard(r *renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if g.IsAuthenticated(c) {
			return c.Next()
		}
		return r.page(c, "login", "Admin Login", fiber.Map{"Error": "", "Email": ""})
	}
}
