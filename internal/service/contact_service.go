package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "contactapp/internal/errors"
	"contactapp/internal/model"
	"contactapp/internal/repository"
)

// ContactUpdate carries a partial update; nil fields are left untouched.
// An explicit empty Email clears the stored address.
type ContactUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	Birthday    *time.Time
}

// ContactService manages a user's address book. Every operation is scoped to
// the owner; a contact belonging to another user reports as not found.
type ContactService interface {
	Create(ctx context.Context, userID uint, contact *model.Contact) (*model.Contact, error)
	GetByID(ctx context.Context, id, userID uint) (*model.Contact, error)
	List(ctx context.Context, userID uint, filter repository.ContactFilter) ([]model.Contact, error)
	Update(ctx context.Context, id, userID uint, upd ContactUpdate) (*model.Contact, error)
	Delete(ctx context.Context, id, userID uint) (*model.Contact, error)
	UpcomingBirthdays(ctx context.Context, userID uint) ([]model.Contact, error)
}

type contactService struct {
	contacts repository.ContactRepository
	now      func() time.Time
}

// NewContactService creates a new contact service.
func NewContactService(contacts repository.ContactRepository) ContactService {
	return &contactService{contacts: contacts, now: time.Now}
}

// Create persists a contact owned by userID. The composite unique constraint
// on (owner, email) is the race guard; its violation maps to a conflict
// naming the offending email.
func (s *contactService) Create(ctx context.Context, userID uint, contact *model.Contact) (*model.Contact, error) {
	contact.ID = 0
	contact.UserID = userID
	if err := s.contacts.Create(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperrors.ContactExistsError{Email: emailOrEmpty(contact.Email)}
		}
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

// emailOrEmpty is only reached on a duplicate-key conflict, which requires a
// concrete email: NULL emails never collide on the index.
func emailOrEmpty(email *string) string {
	if email == nil {
		return ""
	}
	return *email
}

func (s *contactService) GetByID(ctx context.Context, id, userID uint) (*model.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) List(ctx context.Context, userID uint, filter repository.ContactFilter) ([]model.Contact, error) {
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	contacts, err := s.contacts.Search(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	return contacts, nil
}

// Update applies only the supplied fields to an owned contact.
func (s *contactService) Update(ctx context.Context, id, userID uint, upd ContactUpdate) (*model.Contact, error) {
	contact, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		contact.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		contact.LastName = *upd.LastName
	}
	if upd.Email != nil {
		if *upd.Email == "" {
			contact.Email = nil
		} else {
			contact.Email = upd.Email
		}
	}
	if upd.PhoneNumber != nil {
		contact.PhoneNumber = *upd.PhoneNumber
	}
	if upd.Birthday != nil {
		contact.Birthday = upd.Birthday
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperrors.ContactExistsError{Email: emailOrEmpty(contact.Email)}
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, id, userID uint) (*model.Contact, error) {
	contact, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.contacts.Delete(ctx, contact); err != nil {
		return nil, fmt.Errorf("delete contact: %w", err)
	}
	return contact, nil
}

// UpcomingBirthdays lists contacts whose birthday falls within the next seven
// calendar days, including today.
func (s *contactService) UpcomingBirthdays(ctx context.Context, userID uint) ([]model.Contact, error) {
	contacts, err := s.contacts.UpcomingBirthdays(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("upcoming birthdays: %w", err)
	}
	return contacts, nil
}
