package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/khatapro/khata-api/internal/application/dto"
	"github.com/khatapro/khata-api/internal/domain"
	"github.com/khatapro/khata-api/internal/domain/entity"
	"github.com/khatapro/khata-api/internal/domain/repository"
	"github.com/khatapro/khata-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig token generation parameters.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration, login and the firm-approval workflow.
// New users register without a firm; an admin assigns one before they can
// touch any firm-scoped endpoint.
type AuthUseCase struct {
	userRepo repository.UserRepository
	firmRepo repository.FirmRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase builds the use case.
func NewAuthUseCase(userRepo repository.UserRepository, firmRepo repository.FirmRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, firmRepo: firmRepo, jwtCfg: jwtCfg}
}

// Register creates a user with a bcrypt-hashed password and no firm.
// Returns ErrEmailAlreadyExists when the email is taken.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	switch role {
	case "":
		role = entity.RoleOperator
	case entity.RoleAdmin, entity.RoleAccountant, entity.RoleOperator:
	default:
		// super_admin is never self-assigned
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies email/password, issues a JWT and returns token + user.
// A user without a firm still logs in; the token just carries an empty firm_id.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.FirmID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// AssignFirm attaches a user to a firm (the approval step). The target firm
// must exist; the user gets a fresh token on next login.
func (uc *AuthUseCase) AssignFirm(userID string, in dto.AssignFirmRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	firm, err := uc.firmRepo.GetByID(in.FirmID)
	if err != nil {
		return nil, err
	}
	if firm == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.userRepo.AssignFirm(userID, in.FirmID); err != nil {
		return nil, err
	}
	user.FirmID = in.FirmID
	return toUserResponse(user), nil
}

// ListPendingApproval lists users still waiting for a firm assignment.
func (uc *AuthUseCase) ListPendingApproval(limit, offset int) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.ListPendingApproval(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		FirmID:    u.FirmID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
