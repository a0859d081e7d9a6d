package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// PermissionList stores the permission tags as a JSON-encoded text column
// on custom_users.
type PermissionList []string

func (p PermissionList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *PermissionList) Scan(value interface{}) error {
	if value == nil {
		*p = PermissionList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]string)(p))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(p))
	default:
		return errors.New("unsupported permissions column type")
	}
}

type User struct {
	ID           int64          `gorm:"primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	Email        string         `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         string         `gorm:"column:role;not null;default:'user'"`
	Permissions  PermissionList `gorm:"column:permissions;type:text"`
	Department   string         `gorm:"column:department"`
	Company      string         `gorm:"column:company"`
	Site         string         `gorm:"column:site"`
	PhoneNumber  string         `gorm:"column:phone_number"`
	Avatar       string         `gorm:"column:avatar"`
	CreatedAt    time.Time      `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "custom_users"
}
