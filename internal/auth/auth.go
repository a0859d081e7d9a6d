package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse privilege tier of a user. Admin implies every
// permission; employee and user rely on their explicit permission set.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleUser     Role = "user"
)

// ParseRole maps a stored role value to a known Role. Unknown values fall
// back to the least-privileged role rather than failing hydration.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleEmployee, RoleUser:
		return Role(s)
	default:
		return RoleUser
	}
}

// Permission is a fine-grained capability tag. The set is closed: values
// coming from the datastore that are not listed here are dropped on
// hydration.
type Permission string

const (
	PermCreateIssue  Permission = "create_issue"
	PermEditIssue    Permission = "edit_issue"
	PermDeleteIssue  Permission = "delete_issue"
	PermAssignIssue  Permission = "assign_issue"
	PermResolveIssue Permission = "resolve_issue"

	PermCreateStock             Permission = "create_stock"
	PermEditStock               Permission = "edit_stock"
	PermDeleteStock             Permission = "delete_stock"
	PermManageStockTransactions Permission = "manage_stock_transactions"

	PermCreatePurchaseRequest  Permission = "create_purchase_request"
	PermApprovePurchaseRequest Permission = "approve_purchase_request"
	PermRejectPurchaseRequest  Permission = "reject_purchase_request"

	PermViewReports Permission = "view_reports"
	PermManageUsers Permission = "manage_users"
)

var allPermissions = map[Permission]struct{}{
	PermCreateIssue:             {},
	PermEditIssue:               {},
	PermDeleteIssue:             {},
	PermAssignIssue:             {},
	PermResolveIssue:            {},
	PermCreateStock:             {},
	PermEditStock:               {},
	PermDeleteStock:             {},
	PermManageStockTransactions: {},
	PermCreatePurchaseRequest:   {},
	PermApprovePurchaseRequest:  {},
	PermRejectPurchaseRequest:   {},
	PermViewReports:             {},
	PermManageUsers:             {},
}

// IsValidPermission reports whether the tag belongs to the closed set.
func IsValidPermission(p Permission) bool {
	_, ok := allPermissions[p]
	return ok
}

// FilterPermissions drops unknown permission tags from a stored set.
func FilterPermissions(raw []string) []Permission {
	perms := make([]Permission, 0, len(raw))
	for _, r := range raw {
		if IsValidPermission(Permission(r)) {
			perms = append(perms, Permission(r))
		}
	}
	return perms
}

// User is the authenticated identity attached to each request.
type User struct {
	ID          int64        `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// HasRole reports whether the user holds one of the given roles exactly.
// Unknown role strings never match.
func (u *User) HasRole(roles ...Role) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// HasPermission reports whether the user holds any of the given
// permissions. Admins pass every check regardless of their explicit set;
// for everyone else an empty permission set grants nothing.
func (u *User) HasPermission(permissions ...Permission) bool {
	if u == nil {
		return false
	}
	if u.Role == RoleAdmin {
		return true
	}
	for _, required := range permissions {
		for _, p := range u.Permissions {
			if p == required {
				return true
			}
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	Signup(dto SignupDTO) (*User, AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserWithPermissions(userID int64) (*User, error)
	HashPassword(password string) (string, error)
}

type RepositoryAPI interface {
	GetPasswordForEmail(email string) (passwordHash string, userID string, err error)
	GetUserWithPermissions(userID int64) (*User, error)
	EmailExists(email string) (bool, error)
	CreateUser(email, name, passwordHash string) (*User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID string, email string) (token string, err error)
	GenerateRefreshToken(userID string, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
