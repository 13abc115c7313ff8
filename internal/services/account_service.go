package services

import (
	"database/sql"
	"errors"

	"marketplace/internal/domain"
	"marketplace/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

type AccountService struct {
	Accounts *repos.AccountRepo
	Items    *repos.ItemRepo
}

func NewAccountService(accounts *repos.AccountRepo, items *repos.ItemRepo) *AccountService {
	return &AccountService{Accounts: accounts, Items: items}
}

// Profile is the public view: account fields plus the account's listings.
func (s *AccountService) Profile(username string) (*domain.Account, []domain.Item, error) {
	acct, err := s.Accounts.ByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	items, err := s.Items.BySeller(acct.ID)
	if err != nil {
		return nil, nil, err
	}
	return acct, items, nil
}

// ProfileUpdate fields left empty are not touched.
type ProfileUpdate struct {
	FirstName   string
	LastName    string
	Email       string
	NewPassword string
}

// Update applies profile changes; only the account owner may call it.
func (s *AccountService) Update(current *domain.Account, username string, upd ProfileUpdate) error {
	if current.Username != username {
		return domain.ErrForbidden
	}
	if upd.FirstName != "" {
		if err := s.Accounts.UpdateFirstName(current.ID, upd.FirstName); err != nil {
			return err
		}
	}
	if upd.LastName != "" {
		if err := s.Accounts.UpdateLastName(current.ID, upd.LastName); err != nil {
			return err
		}
	}
	if upd.Email != "" {
		if _, err := s.Accounts.ByEmail(upd.Email); err == nil {
			return &DuplicateError{Field: "email"}
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err := s.Accounts.UpdateEmail(current.ID, upd.Email); err != nil {
			if repos.UniqueViolation(err) != "" {
				return &DuplicateError{Field: "email"}
			}
			return err
		}
	}
	if upd.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.NewPassword), bcryptCost)
		if err != nil {
			return err
		}
		if err := s.Accounts.UpdatePassword(current.ID, string(hash)); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the account and everything it owns; owner only.
func (s *AccountService) Delete(current *domain.Account, username string) error {
	if current.Username != username {
		return domain.ErrForbidden
	}
	return s.Accounts.DeleteCascade(current.ID)
}
