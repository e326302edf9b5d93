package session

import (
	"context"
	"strings"

	"github.com/go-ports/gomate/internal/models"
	"github.com/go-ports/gomate/internal/validation"
)

// UpdateProfile changes the name and email of the logged-in account in both
// the registry and the session.
func (s *Store) UpdateProfile(ctx context.Context, name, email string) (models.User, error) {
	if err := validation.Profile(name, email).Err(); err != nil {
		return models.User{}, err
	}
	u, err := s.updateCurrent(ctx, func(u *models.User) error {
		u.Name = strings.TrimSpace(name)
		u.Email = strings.TrimSpace(email)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	s.emit(ctx, models.NotificationInput{
		Type:    models.NotificationProfileUpdated,
		Title:   "Profile Updated",
		Message: "Your profile information has been updated successfully.",
		Data:    map[string]string{"userId": u.ID},
	})
	return u, nil
}

// ChangePassword replaces the password of the logged-in account after
// checking the current one.
func (s *Store) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if err := validation.PasswordChange(next, confirm).Err(); err != nil {
		return err
	}
	u, err := s.updateCurrent(ctx, func(u *models.User) error {
		if !s.accounts.compare(u.Password, current) {
			return validation.Invalid(validation.FieldCurrentPassword, validation.ReasonWrongPassword).Err()
		}
		stored, err := s.accounts.hash(next)
		if err != nil {
			return err
		}
		u.Password = stored
		return nil
	})
	if err != nil {
		return err
	}
	s.emit(ctx, models.NotificationInput{
		Type:    models.NotificationPasswordChanged,
		Title:   "Password Changed",
		Message: "Your password has been changed successfully.",
		Data:    map[string]string{"userId": u.ID},
	})
	return nil
}

// SetProfileImage records a new profile picture URI for the logged-in account.
func (s *Store) SetProfileImage(ctx context.Context, uri string) (models.User, error) {
	u, err := s.updateCurrent(ctx, func(u *models.User) error {
		u.ProfileImage = strings.TrimSpace(uri)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	s.emit(ctx, models.NotificationInput{
		Type:    models.NotificationProfileImageUpdated,
		Title:   "Profile Picture Updated",
		Message: "Your profile picture has been updated.",
		Data:    map[string]string{"userId": u.ID},
	})
	return u, nil
}

// updateCurrent applies fn to the registry record of the session user and
// then mirrors the result into the session.
func (s *Store) updateCurrent(ctx context.Context, fn func(*models.User) error) (models.User, error) {
	cur, ok := s.Current()
	if !ok {
		return models.User{}, ErrNoSession
	}
	u, err := s.accounts.UpdateUserByID(ctx, cur.ID, fn)
	if err != nil {
		return models.User{}, err
	}
	if err := s.UpdateUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}
