// Package directory resolves approver identities. Submissions name their
// approvers by email; the directory checks those against active staff
// accounts and answers role-scoped broadcasts for notification fan-out.
package directory

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Abhi9av-Git/LeaveEase/models"
)

// ErrNotFound: no active approver matches (role, email).
var ErrNotFound = errors.New("approver not found")

type Directory struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Directory { return &Directory{db: db} }

// ResolveApprover finds the active approver holding role with this email.
func (d *Directory) ResolveApprover(role models.Role, email string) (*models.Approver, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	var a models.Approver
	err := d.db.Where("role = ? AND email = ? AND is_active = ?", role, email, true).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindActiveByRole returns every active approver holding the role.
func (d *Directory) FindActiveByRole(role models.Role) ([]models.Approver, error) {
	var out []models.Approver
	if err := d.db.Where("role = ? AND is_active = ?", role, true).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// IsActive reports whether the approver account is still enabled.
func (d *Directory) IsActive(id uint) (bool, error) {
	var a models.Approver
	err := d.db.Select("is_active").First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.IsActive, nil
}
