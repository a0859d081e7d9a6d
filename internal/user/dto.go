package user

import (
	"github.com/frahmantamala/helpdesk-inventory/internal"
	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
)

type CreateUserDTO struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Department  string   `json:"department"`
	Company     string   `json:"company"`
	Site        string   `json:"site"`
	PhoneNumber string   `json:"phone_number"`
}

func (d *CreateUserDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if d.Email == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 8 {
		return internal.NewValidationFieldError("password", "password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if d.Role != "" && auth.ParseRole(d.Role) != auth.Role(d.Role) {
		return internal.NewValidationFieldError("role", "role must be admin, employee or user", internal.ErrCodeInvalidRole)
	}
	for _, p := range d.Permissions {
		if !auth.IsValidPermission(auth.Permission(p)) {
			return internal.NewValidationFieldError("permissions", "unknown permission tag: "+p, internal.ErrCodeValidationFailed)
		}
	}
	return nil
}

// UpdateUserDTO carries a partial update: nil fields keep their value.
type UpdateUserDTO struct {
	Name        *string   `json:"name"`
	Role        *string   `json:"role"`
	Permissions *[]string `json:"permissions"`
	Department  *string   `json:"department"`
	Company     *string   `json:"company"`
	Site        *string   `json:"site"`
	PhoneNumber *string   `json:"phone_number"`
	Avatar      *string   `json:"avatar"`
}

func (d *UpdateUserDTO) Validate() error {
	if d.Name != nil && *d.Name == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Role != nil && auth.ParseRole(*d.Role) != auth.Role(*d.Role) {
		return internal.NewValidationFieldError("role", "role must be admin, employee or user", internal.ErrCodeInvalidRole)
	}
	if d.Permissions != nil {
		for _, p := range *d.Permissions {
			if !auth.IsValidPermission(auth.Permission(p)) {
				return internal.NewValidationFieldError("permissions", "unknown permission tag: "+p, internal.ErrCodeValidationFailed)
			}
		}
	}
	return nil
}
