package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Cost for bcrypt password hashing
const bcryptCost = 12

const minCredentialLength = 8

const (
	msgRegisterFieldsMissing = "نام کاربری یا رمز عبور یا ایمیل وارد نشده است"
	msgUsernameTooShort      = "نام کاربری باید بیشتر از 8 کاراکتر باشد"
	msgUsernamePattern       = "نام کاربری شما باید شامل حروف انگلیسی و اعداد باشد و نباید فاصله بین آن ها باشد"
	msgPasswordTooShort      = "رمز عبور باید بیشتر از 8 کاراکتر باشد"
	msgPasswordPattern       = "رمز عبور  شما باید شامل حروف انگلیسی و اعداد باشد و نباید فاصله بین آن ها باشد"
	msgPasswordMismatch      = "رمز عبور شما با تکرار آن همخوانی ندارد"
	msgEmailInvalid          = "ایمیل شما معتبر نیست"
	msgUsernameTaken         = "نام کاربری شما قبلا در سایت ثبت شده است"
	msgLoginFieldsMissing    = "نام کاربری یا رمز عبور وارد نشده است"
)

var alphanumeric = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

type AuthService struct {
	Users    repository.UserRepository
	validate *validator.Validate
}

func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{Users: users, validate: validator.New()}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidateRegistration applies the sign-up rules in order and reports the
// first one broken. It does not check whether the username is free.
func (s *AuthService) ValidateRegistration(data models.RegisterData) error {
	switch {
	case data.Username == "" || data.Password == "" || data.Email == "":
		return invalid("username", msgRegisterFieldsMissing)
	case utf8.RuneCountInString(data.Username) < minCredentialLength:
		return invalid("username", msgUsernameTooShort)
	case !alphanumeric.MatchString(data.Username):
		return invalid("username", msgUsernamePattern)
	case utf8.RuneCountInString(data.Password) < minCredentialLength:
		return invalid("password", msgPasswordTooShort)
	case !alphanumeric.MatchString(data.Password):
		return invalid("password", msgPasswordPattern)
	case data.Password != data.ConfirmPassword:
		return invalid("confirmPassword", msgPasswordMismatch)
	case s.validate.Var(data.Email, "required,email") != nil:
		return invalid("email", msgEmailInvalid)
	}
	return nil
}

// Register creates a regular customer account.
func (s *AuthService) Register(ctx context.Context, data models.RegisterData) (*models.User, error) {
	return s.CreateUser(ctx, data, models.RoleUser)
}

// CreateUser validates data and stores a user with the given role.
func (s *AuthService) CreateUser(ctx context.Context, data models.RegisterData, role string) (*models.User, error) {
	if err := s.ValidateRegistration(data); err != nil {
		return nil, err
	}

	_, err := s.Users.FindByUsername(ctx, data.Username)
	if err == nil {
		return nil, &ValidationError{Field: "username", Message: msgUsernameTaken}
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashedPassword, err := hashPassword(data.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: data.Username,
		Password: hashedPassword,
		Email:    data.Email,
		Role:     role,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		// Lost a race with another sign-up for the same name.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ValidationError{Field: "username", Message: msgUsernameTaken}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login returns ErrInvalidCredentials for both an unknown username and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, data models.LoginData) (*models.User, error) {
	if data.Username == "" || data.Password == "" {
		return nil, invalid("username", msgLoginFieldsMissing)
	}

	user, err := s.Users.FindByUsername(ctx, data.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := comparePasswords(user.Password, data.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.Users.FindByID(ctx, userID)
}
