package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"medpulse/internal/model"
)

var (
	ErrBadToken           = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// demo admin password; the admin has no stored record to hold a hash
const adminPassword = "admin123"

// a working day at the front desk
const tokenTTL = 8 * time.Hour

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

type Claims struct {
	UserID string     `json:"uid"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) Ref() model.AccountRef {
	return model.AccountRef{Role: c.Role, ID: c.UserID}
}

func MakeToken(ref model.AccountRef, secret string) (string, error) {
	now := time.Now()
	c := Claims{
		UserID: ref.ID,
		Role:   ref.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

func ParseToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || c.UserID == "" || c.Role == "" {
		return nil, ErrBadToken
	}
	return c, nil
}

// Directory finds doctor and patient accounts by email.
type Directory interface {
	AccountByEmail(email string) (model.Account, bool)
}

// Authenticator is the demo credential check. The admin needs the fixed
// demo password. Doctors and patients are matched by email; a password is
// only checked for patients who signed up with one.
type Authenticator struct {
	dir    Directory
	secret string
}

func NewAuthenticator(dir Directory, secret string) *Authenticator {
	return &Authenticator{dir: dir, secret: secret}
}

func (a *Authenticator) Authenticate(email, password string) (model.Account, error) {
	email = strings.TrimSpace(email)
	if strings.EqualFold(email, model.DemoAdmin.Email) {
		if password != adminPassword {
			return nil, ErrInvalidCredentials
		}
		return model.DemoAdmin, nil
	}
	acct, ok := a.dir.AccountByEmail(email)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if p, isPatient := acct.(*model.Patient); isPatient && p.PasswordHash != "" && !CheckPassword(p.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return acct, nil
}

// Issue signs an access token for the account.
func (a *Authenticator) Issue(acct model.Account) (string, error) {
	return MakeToken(model.RefOf(acct), a.secret)
}

func (a *Authenticator) Verify(raw string) (*Claims, error) {
	return ParseToken(raw, a.secret)
}
