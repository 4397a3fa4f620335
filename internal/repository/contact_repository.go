package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"contactapp/internal/model"
)

// ContactFilter narrows a contact search. Name and email filters are
// case-insensitive substring matches, AND-combined when several are set.
type ContactFilter struct {
	FirstName string
	LastName  string
	Email     string
	Skip      int
	Limit     int
}

// ContactRepository defines contact persistence operations. Every read and
// write is scoped by the owning user id; a contact owned by someone else is
// indistinguishable from a missing one.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	FindByID(ctx context.Context, id, userID uint) (*model.Contact, error)
	Search(ctx context.Context, userID uint, filter ContactFilter) ([]model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, contact *model.Contact) error
	UpcomingBirthdays(ctx context.Context, userID uint, today time.Time) ([]model.Contact, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository builds a GORM-backed contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id, userID uint) (*model.Contact, error) {
	var contact model.Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) Search(ctx context.Context, userID uint, filter ContactFilter) ([]model.Contact, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.FirstName != "" {
		q = q.Where("LOWER(first_name) LIKE ?", likePattern(filter.FirstName))
	}
	if filter.LastName != "" {
		q = q.Where("LOWER(last_name) LIKE ?", likePattern(filter.LastName))
	}
	if filter.Email != "" {
		q = q.Where("LOWER(email) LIKE ?", likePattern(filter.Email))
	}

	var contacts []model.Contact
	if err := q.Offset(filter.Skip).Limit(filter.Limit).Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func (r *contactRepository) Update(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Delete(contact).Error
}

// UpcomingBirthdays returns the user's contacts whose birthday falls on any of
// the seven calendar days starting at today, matched on month and day only.
// The target list is computed day by day so a window spanning New Year still
// matches Dec 30 and Jan 2 alike.
func (r *contactRepository) UpcomingBirthdays(ctx context.Context, userID uint, today time.Time) ([]model.Contact, error) {
	clause, args := birthdayWindowClause(today, 7)
	var contacts []model.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("birthday IS NOT NULL").
		Where(clause, args...).
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// birthdayWindowClause builds a (MONTH, DAY) IN (...) predicate for the
// inclusive window of `days` calendar days starting at today.
func birthdayWindowClause(today time.Time, days int) (string, []interface{}) {
	var sb strings.Builder
	args := make([]interface{}, 0, days*2)
	sb.WriteString("(MONTH(birthday), DAY(birthday)) IN (")
	for i := 0; i < days; i++ {
		d := today.AddDate(0, 0, i)
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?,?)")
		args = append(args, int(d.Month()), d.Day())
	}
	sb.WriteString(")")
	return sb.String(), args
}
