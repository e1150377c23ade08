package forms

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/taskpanel/taskpanel/internal/apiclient"
	"github.com/taskpanel/taskpanel/internal/models"
)

// Authenticator is the slice of the session store the auth forms use.
type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) error
	Register(ctx context.Context, req models.RegisterRequest) error
}

const (
	genericLoginError    = "Could not sign in"
	genericRegisterError = "Could not create the account"
)

// LoginForm drives the credential prompt.
type LoginForm struct {
	auth Authenticator

	Draft   models.LoginRequest
	Loading bool
	Err     string

	OnSaved    func()
	OnCanceled func()
}

func NewLoginForm(auth Authenticator) *LoginForm {
	return &LoginForm{auth: auth}
}

func (f *LoginForm) Valid() bool {
	return strings.TrimSpace(f.Draft.Email) != "" && f.Draft.Password != ""
}

// Submit sends the credentials. No-op while invalid; the server's
// message is surfaced verbatim on rejection.
func (f *LoginForm) Submit(ctx context.Context) {
	if !f.Valid() {
		return
	}

	f.Loading = true
	f.Err = ""

	err := f.auth.Login(ctx, f.Draft)

	f.Loading = false
	if err != nil {
		f.Err = apiclient.ServerMessage(err, genericLoginError)
		return
	}

	if f.OnSaved != nil {
		f.OnSaved()
	}
}

func (f *LoginForm) Cancel() {
	if f.OnCanceled != nil {
		f.OnCanceled()
	}
}

// RegisterForm drives account creation.
type RegisterForm struct {
	auth Authenticator

	Draft   models.RegisterRequest
	Loading bool
	Err     string

	OnSaved    func()
	OnCanceled func()
}

func NewRegisterForm(auth Authenticator) *RegisterForm {
	return &RegisterForm{auth: auth}
}

// Valid mirrors the session store's pre-flight rules so the submit
// button can be gated before any call is made.
func (f *RegisterForm) Valid() bool {
	return utf8.RuneCountInString(f.Draft.Name) >= 2 &&
		strings.Contains(f.Draft.Email, "@") &&
		len(f.Draft.Password) >= 6 &&
		f.Draft.Password == f.Draft.ConfirmPassword
}

func (f *RegisterForm) Submit(ctx context.Context) {
	if !f.Valid() {
		return
	}

	f.Loading = true
	f.Err = ""

	err := f.auth.Register(ctx, f.Draft)

	f.Loading = false
	if err != nil {
		f.Err = apiclient.ServerMessage(err, genericRegisterError)
		return
	}

	if f.OnSaved != nil {
		f.OnSaved()
	}
}

func (f *RegisterForm) Cancel() {
	if f.OnCanceled != nil {
		f.OnCanceled()
	}
}
