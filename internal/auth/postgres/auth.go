package postgres

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
	userDatamodel "github.com/frahmantamala/helpdesk-inventory/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForEmail(email string) (string, string, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM custom_users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", auth.ErrUserNotFound
		}
		return "", "", err
	}
	return passwordHash, strconv.FormatInt(userID, 10), nil
}

func (r *Repository) GetUserWithPermissions(userID int64) (*auth.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	return hydrate(&record), nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CreateUser(email, name, passwordHash string) (*auth.User, error) {
	now := time.Now()
	record := &userDatamodel.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         string(auth.RoleUser),
		Permissions:  userDatamodel.PermissionList{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := r.db.Create(record).Error; err != nil {
		return nil, err
	}

	return hydrate(record), nil
}

// hydrate converts a stored row to the session identity, defaulting
// unknown roles and dropping unknown permission tags.
func hydrate(record *userDatamodel.User) *auth.User {
	return &auth.User{
		ID:          record.ID,
		Email:       record.Email,
		Name:        record.Name,
		Role:        auth.ParseRole(record.Role),
		Permissions: auth.FilterPermissions(record.Permissions),
	}
}
