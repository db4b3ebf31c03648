package studio

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const sessionKey = "studio_authenticated"

// PasswordResult is the outcome of a password check.
type PasswordResult int

const (
	PasswordUnconfigured PasswordResult = iota
	PasswordWrong
	PasswordOK
)

// passwordHash holds the bcrypt hash of STUDIO_PASSWORD, computed once
// at startup by Configure. Empty means the studio is unconfigured and
// every login fails with a distinct error.
var passwordHash []byte

// Configure hashes the studio password for later checks. An empty
// password leaves the studio locked.
func Configure(password string) error {
	if password == "" {
		passwordHash = nil
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	passwordHash = hash
	return nil
}

// CheckPassword compares a login attempt against the configured hash.
func CheckPassword(password string) PasswordResult {
	if len(passwordHash) == 0 {
		return PasswordUnconfigured
	}
	if bcrypt.CompareHashAndPassword(passwordHash, []byte(password)) != nil {
		return PasswordWrong
	}
	return PasswordOK
}

// Grant marks the session as authenticated.
func Grant(c *gin.Context) error {
	session := sessions.Default(c)
	session.Set(sessionKey, true)
	return session.Save()
}

// Revoke clears the session.
func Revoke(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// Authenticated reports whether the request carries a valid studio
// session.
func Authenticated(c *gin.Context) bool {
	session := sessions.Default(c)
	authed, ok := session.Get(sessionKey).(bool)
	return ok && authed
}
