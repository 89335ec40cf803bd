package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/pachgroup/pachsite/pkg"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// Admin holds the single administrator account.
type Admin struct {
	username     string
	password     string
	passwordHash string
}

// NewAdmin builds the administrator account. Username and password are trimmed
// since they usually come from env files. When passwordHash (bcrypt) is set it
// takes precedence over the plain password.
func NewAdmin(username, password, passwordHash string) *Admin {
	return &Admin{
		username:     strings.TrimSpace(username),
		password:     strings.TrimSpace(password),
		passwordHash: strings.TrimSpace(passwordHash),
	}
}

func (a *Admin) Username() string {
	return a.username
}

// Validate reports whether the submitted pair matches the configured account.
// The submitted username is trimmed, the submitted password is compared as is.
func (a *Admin) Validate(username, password string) bool {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || a.username == "" {
		return false
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	var passwordOK bool
	if a.passwordHash != "" {
		passwordOK = pkg.CheckPasswordHash(password, a.passwordHash)
	} else {
		passwordOK = a.password != "" &&
			subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	}

	log.Debugf("admin credentials check: username match [%t], password match [%t]", usernameOK, passwordOK)

	return usernameOK && passwordOK
}
