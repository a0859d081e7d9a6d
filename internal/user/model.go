package user

import (
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal"
	datamodel "github.com/frahmantamala/helpdesk-inventory/internal/core/datamodel/user"
)

type User = datamodel.User

type PermissionList = datamodel.PermissionList

var ErrUserNotFound = internal.ErrUserNotFound

// View is the API shape of a user row: everything except the password
// hash.
type View struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	Department  string    `json:"department,omitempty"`
	Company     string    `json:"company,omitempty"`
	Site        string    `json:"site,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewView(u *User) *View {
	perms := []string(u.Permissions)
	if perms == nil {
		perms = []string{}
	}
	return &View{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: perms,
		Department:  u.Department,
		Company:     u.Company,
		Site:        u.Site,
		PhoneNumber: u.PhoneNumber,
		Avatar:      u.Avatar,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
