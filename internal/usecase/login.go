package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

const invalidCredentialsMessage = "Usuario o contraseña incorrectos"

type bcryptVerifier struct{}

func (bcryptVerifier) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type LoginUseCase struct {
	Admins   AdminRepositoryInterface
	Sessions SessionIssuer
	Verifier PasswordVerifier
	Logger   *zap.Logger
}

func NewLoginUseCase(admins AdminRepositoryInterface, sessions SessionIssuer, logger *zap.Logger) *LoginUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginUseCase{
		Admins:   admins,
		Sessions: sessions,
		Verifier: bcryptVerifier{},
		Logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "Usuario y contraseña requeridos"}
	}

	admin, err := uc.Admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entity.ErrAdminNotFound) {
			return nil, &DomainError{Code: CodeInvalidCredentials, Message: invalidCredentialsMessage}
		}
		uc.Logger.Error("failed to load admin", zap.Error(err))
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Error al iniciar sesión", Err: err}
	}

	if err := uc.Verifier.Compare(admin.PasswordHash, input.Password); err != nil {
		return nil, &DomainError{Code: CodeInvalidCredentials, Message: invalidCredentialsMessage}
	}

	token, err := uc.Sessions.Issue(ctx)
	if err != nil {
		uc.Logger.Error("failed to issue session", zap.Error(err))
		return nil, &TechnicalError{Code: CodeSession, Message: "Error al iniciar sesión", Err: err}
	}

	uc.Logger.Info("admin logged in", zap.String("username", admin.Username))
	return &LoginOutput{Token: token}, nil
}

// HashPassword is used by admin provisioning.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", &DomainError{Code: CodeValidation, Message: "password must be at least 8 characters"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
