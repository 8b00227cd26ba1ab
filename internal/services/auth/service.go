package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"taxtracker/internal/config"
	"taxtracker/internal/utils/crypto"
	"taxtracker/internal/utils/pagination"
	"taxtracker/internal/utils/sanitize"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles authentication and user management business logic
type Service struct {
	repo   UsersRepo
	config config.Config
	log    *slog.Logger
}

// NewService creates a new auth service
func NewService(repo UsersRepo, cfg config.Config, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
		log:    log,
	}
}

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jane@office.example"`
	Password string `json:"password" validate:"required" example:"Password123"`
}

// LoginResponse represents the response for successful authentication
type LoginResponse struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    *User  `json:"user"`
}

// CreateUserRequest represents an admin creating a staff account
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email" example:"new@office.example"`
	Name     string `json:"name" validate:"required" example:"New Employee"`
	Password string `json:"password" validate:"required,password" example:"Password123"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user" example:"user"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive" example:"active"`
}

// UpdateUserRequest is the allow-listed update payload for a staff account
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Password *string `json:"password,omitempty" validate:"omitempty,password"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// UserResponse wraps a single user payload
type UserResponse struct {
	Success bool  `json:"success" example:"true"`
	User    *User `json:"user"`
}

// ListUsersRequest represents a paged user listing request
type ListUsersRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1" example:"1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100" example:"10"`
}

// ListUsersResponse represents a paged list of users
type ListUsersResponse struct {
	Success    bool            `json:"success" example:"true"`
	Users      []*User         `json:"users"`
	Pagination pagination.Page `json:"pagination"`
}

// Login authenticates a user and issues a session token.
// All failure causes collapse into ErrInvalidCredentials; the specific
// cause is only logged.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Warn("login: user lookup failed", "email", email, "error", err)
		return nil, ErrInvalidCredentials
	}

	if err := crypto.CheckPassword(req.Password, user.PasswordHash); err != nil {
		s.log.Warn("login: password mismatch", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		s.log.Error("login: token generation failed", "error", err)
		return nil, ErrGenToken
	}

	return &LoginResponse{
		Success: true,
		Token:   token,
		User:    user,
	}, nil
}

// IssueToken produces a signed JWT embedding the user id with the
// configured expiry. The token is the whole session: there is no
// server-side session record and no revocation list beyond the
// authoritative re-fetch in Authenticate.
func (s *Service) IssueToken(user *User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"exp":     now.Add(time.Duration(s.config.TokenTTLHours) * time.Hour).Unix(),
		"iat":     now.Unix(),
	}

	if strings.ToUpper(s.config.JWTAlgorithm) != "HS256" {
		return "", ErrUnsupportedJWTAlg
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// Authenticate resolves a verified token's user_id claim to the current
// user record. Verification is authoritative by design: a deleted user
// or a demoted admin can never ride on a stale token.
func (s *Service) Authenticate(ctx context.Context, userIDHex string) (*User, error) {
	userID, err := bson.ObjectIDFromHex(userIDHex)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// GetUser returns a single user by id.
func (s *Service) GetUser(ctx context.Context, id bson.ObjectID) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserResponse{Success: true, User: user}, nil
}

// CreateUser registers a new staff account (admin operation).
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	email := normalizeEmail(req.Email)

	hashedPassword, err := crypto.HashPassword(req.Password, s.config.BcryptCost)
	if err != nil {
		s.log.Error("create user: hash failed", "error", err)
		return nil, errors.New("failed to process password")
	}

	role := req.Role
	if role == "" {
		role = RoleUser
	}
	status := req.Status
	if status == "" {
		status = StatusActive
	}

	now := time.Now()
	user := &User{
		ID:           bson.NewObjectID(),
		Email:        email,
		Name:         sanitize.Clean(req.Name),
		PasswordHash: hashedPassword,
		Role:         role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		s.log.Error("create user: insert failed", "error", err)
		return nil, errors.New("failed to create user")
	}

	return &UserResponse{Success: true, User: user}, nil
}

// UpdateUser applies an allow-listed patch to a staff account (admin
// operation). The repository refreshes lts; ts is never touched.
func (s *Service) UpdateUser(ctx context.Context, id bson.ObjectID, req UpdateUserRequest) (*UserResponse, error) {
	patch := UpdateUser{
		Role:   req.Role,
		Status: req.Status,
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		patch.Email = &email
	}
	if req.Name != nil {
		name := sanitize.Clean(*req.Name)
		patch.Name = &name
	}
	if req.Password != nil {
		hashed, err := crypto.HashPassword(*req.Password, s.config.BcryptCost)
		if err != nil {
			s.log.Error("update user: hash failed", "error", err)
			return nil, errors.New("failed to process password")
		}
		patch.PasswordHash = &hashed
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		s.log.Error("update user: update failed", "user_id", id.Hex(), "error", err)
		return nil, errors.New("failed to update user")
	}

	return &UserResponse{Success: true, User: user}, nil
}

// DeleteUser removes a staff account (admin operation).
func (s *Service) DeleteUser(ctx context.Context, id bson.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.log.Error("delete user: delete failed", "user_id", id.Hex(), "error", err)
		return errors.New("failed to delete user")
	}
	return nil
}

// ListUsers returns a page of staff accounts (admin operation).
func (s *Service) ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error) {
	page, limit := pagination.Normalize(req.Page, req.Limit)

	users, total, err := s.repo.List(ctx, pagination.Skip(page, limit), limit)
	if err != nil {
		s.log.Error("list users failed", "error", err)
		return nil, errors.New("failed to list users")
	}

	return &ListUsersResponse{
		Success:    true,
		Users:      users,
		Pagination: pagination.Build(page, limit, total),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
