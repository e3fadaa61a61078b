package services_test

import (
	"context"
	"testing"

	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/Kariqs/decorshop/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRegistration() models.RegisterData {
	return models.RegisterData{
		Username:        "abcdefgh",
		Password:        "abcdefg1",
		ConfirmPassword: "abcdefg1",
		Email:           "a@b.com",
	}
}

func TestValidateRegistration(t *testing.T) {
	svc := services.NewAuthService(repository.NewMemoryUserRepository())

	tests := []struct {
		name  string
		edit  func(d *models.RegisterData)
		field string
	}{
		{"missing email", func(d *models.RegisterData) { d.Email = "" }, "username"},
		{"short username", func(d *models.RegisterData) { d.Username = "abc" }, "username"},
		{"username with space", func(d *models.RegisterData) { d.Username = "abcd efgh" }, "username"},
		{"short password", func(d *models.RegisterData) { d.Password = "abc1"; d.ConfirmPassword = "abc1" }, "password"},
		{"password symbols", func(d *models.RegisterData) { d.Password = "abcdefg!"; d.ConfirmPassword = "abcdefg!" }, "password"},
		{"mismatch", func(d *models.RegisterData) { d.ConfirmPassword = "abcdefg2" }, "confirmPassword"},
		{"bad email", func(d *models.RegisterData) { d.Email = "not-an-email" }, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validRegistration()
			tt.edit(&data)

			var validationErr *services.ValidationError
			require.ErrorAs(t, svc.ValidateRegistration(data), &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	assert.NoError(t, svc.ValidateRegistration(validRegistration()))
}

func TestRegister_HashesWithCost12(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	svc := services.NewAuthService(users)

	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "abcdefg1", user.Password)

	cost, err := bcrypt.Cost([]byte(user.Password))
	require.NoError(t, err)
	assert.Equal(t, 12, cost)
}

func TestRegister_UsernameTaken(t *testing.T) {
	svc := services.NewAuthService(repository.NewMemoryUserRepository())
	ctx := context.Background()
	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validRegistration())
	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "username", validationErr.Field)
}

func TestLogin_UniformFailure(t *testing.T) {
	svc := services.NewAuthService(repository.NewMemoryUserRepository())
	ctx := context.Background()
	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, errUnknown := svc.Login(ctx, models.LoginData{Username: "nobody123", Password: "abcdefg1"})
	_, errWrong := svc.Login(ctx, models.LoginData{Username: "abcdefgh", Password: "wrongpass1"})

	assert.ErrorIs(t, errUnknown, services.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, services.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())

	user, err := svc.Login(ctx, models.LoginData{Username: "abcdefgh", Password: "abcdefg1"})
	require.NoError(t, err)
	assert.Equal(t, "abcdefgh", user.Username)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := services.NewAuthService(repository.NewMemoryUserRepository())

	_, err := svc.Login(context.Background(), models.LoginData{Username: "abcdefgh"})
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
