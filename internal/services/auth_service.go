package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/domain"
	"marketplace/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// DuplicateError reports which registration field collided; it matches
// domain.ErrDuplicate under errors.Is.
type DuplicateError struct{ Field string }

func (e *DuplicateError) Error() string        { return e.Field + " is already in use" }
func (e *DuplicateError) Is(target error) bool { return target == domain.ErrDuplicate }

type AuthService struct {
	Accounts *repos.AccountRepo
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(accounts *repos.AccountRepo, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{Accounts: accounts, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Register creates the account (and, transactionally, its cart) and returns
// a bearer token for it.
func (s *AuthService) Register(username, password, email string) (string, error) {
	if _, err := s.Accounts.ByUsername(username); err == nil {
		return "", &DuplicateError{Field: "username"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	if _, err := s.Accounts.ByEmail(email); err == nil {
		return "", &DuplicateError{Field: "email"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	id, err := s.Accounts.Create(username, string(hash), email)
	if err != nil {
		// the pre-checks above race with concurrent registrations; the
		// unique indexes are authoritative
		if field := repos.UniqueViolation(err); field != "" {
			return "", &DuplicateError{Field: field}
		}
		return "", err
	}
	return s.IssueToken(id)
}

// Login accepts either username or email; both failures look identical to
// the caller.
func (s *AuthService) Login(username, email, password string) (string, error) {
	var (
		acct *domain.Account
		err  error
	)
	switch {
	case username != "":
		acct, err = s.Accounts.ByUsername(username)
	case email != "":
		acct, err = s.Accounts.ByEmail(email)
	default:
		return "", domain.ErrBadCreds
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrBadCreds
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.Hash), []byte(password)) != nil {
		return "", domain.ErrBadCreds
	}
	return s.IssueToken(acct.ID)
}

func (s *AuthService) IssueToken(accountID int64) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"account_id": accountID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses a bearer token and resolves the account it names.
func (s *AuthService) Verify(tokenString string) (*domain.Account, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrForbidden
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrForbidden
	}
	id, ok := claims["account_id"].(float64)
	if !ok {
		return nil, domain.ErrForbidden
	}
	acct, err := s.Accounts.ByID(int64(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return acct, nil
}
