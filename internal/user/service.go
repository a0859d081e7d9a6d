package user

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal"
	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
)

// Repository defines the data access methods for user administration
type Repository interface {
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	List(limit, offset int) ([]*User, error)
	Create(u *User) error
	Update(u *User) error
}

type Service struct {
	repo           Repository
	normalizeEmail auth.EmailNormalizer
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(repo Repository, normalizeEmail auth.EmailNormalizer, bcryptCost int, logger *slog.Logger) *Service {
	if normalizeEmail == nil {
		normalizeEmail = auth.NormalizeEmail
	}
	return &Service{
		repo:           repo,
		normalizeEmail: normalizeEmail,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

func (s *Service) GetUser(id int64) (*View, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, err
	}
	return NewView(u), nil
}

func (s *Service) ListUsers(limit, offset int) ([]*View, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}

	views := make([]*View, 0, len(users))
	for _, u := range users {
		views = append(views, NewView(u))
	}
	return views, nil
}

func (s *Service) CreateUser(dto CreateUserDTO) (*View, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "email", dto.Email)
		return nil, err
	}

	email := s.normalizeEmail(dto.Email)
	if existing, err := s.repo.GetByEmail(email); err == nil && existing != nil {
		s.logger.Warn("duplicate email on user creation", "email", email)
		return nil, internal.ErrEmailAlreadyExists
	}

	passwordHash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	role := dto.Role
	if role == "" {
		role = string(auth.RoleUser)
	}
	perms := dto.Permissions
	if perms == nil {
		perms = []string{}
	}

	u := &User{
		Name:         dto.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Permissions:  PermissionList(perms),
		Department:   dto.Department,
		Company:      dto.Company,
		Site:         dto.Site,
		PhoneNumber:  dto.PhoneNumber,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", email)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "email", email, "role", role)
	return NewView(u), nil
}

func (s *Service) UpdateUser(id int64, dto UpdateUserDTO) (*View, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.Permissions != nil {
		u.Permissions = PermissionList(*dto.Permissions)
	}
	if dto.Department != nil {
		u.Department = *dto.Department
	}
	if dto.Company != nil {
		u.Company = *dto.Company
	}
	if dto.Site != nil {
		u.Site = *dto.Site
	}
	if dto.PhoneNumber != nil {
		u.PhoneNumber = *dto.PhoneNumber
	}
	if dto.Avatar != nil {
		u.Avatar = *dto.Avatar
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", id)
	return NewView(u), nil
}
