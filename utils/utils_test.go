package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/decorshop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumber_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n := GenerateOrderNumber()
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestRandomBytes(t *testing.T) {
	a, err := RandomBytes(32)
	require.NoError(t, err)
	b, err := RandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestJalaliDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"nowruz", time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC), "1403/1/1"},
		{"last day of year", time.Date(2024, time.March, 19, 12, 0, 0, 0, time.UTC), "1402/12/29"},
		{"first of mehr", time.Date(2023, time.September, 23, 12, 0, 0, 0, time.UTC), "1402/7/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JalaliDate(tt.in))
		})
	}
}

func TestJalaliMonth(t *testing.T) {
	month, ok := JalaliMonth("1403/11/2")
	assert.True(t, ok)
	assert.Equal(t, 11, month)

	for _, bad := range []string{"", "1403", "1403/x/2", "1403/13/1", "1403/0/1"} {
		_, ok := JalaliMonth(bad)
		assert.False(t, ok, bad)
	}
}

func wideImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOptimizeImage_ShrinksWideImages(t *testing.T) {
	data, err := OptimizeImage(bytes.NewReader(wideImage(t, 1600, 400)))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestOptimizeImage_RejectsGarbage(t *testing.T) {
	_, err := OptimizeImage(strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestLocalImageStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStore(dir, "/static/uploads/")
	require.NoError(t, err)

	stored, err := store.Save(context.Background(), bytes.NewReader(wideImage(t, 10, 10)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.URL, "/static/uploads/products/"))

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(stored.Key)))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), stored.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(stored.Key)))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, store.Delete(context.Background(), "../outside.jpg"))
}

func TestMailer_NotifyOrderPlaced(t *testing.T) {
	tmpl := template.Must(template.New("order_confirmation.html").Parse(`Hi {{.Name}}, order {{.Order.OrderNumber}}`))
	mailer := NewMailer(MailConfig{From: "shop@example.com", Address: "smtp.example.com:587", SMTPHost: "smtp.example.com"}, tmpl)

	var sentTo []string
	var sentMsg string
	mailer.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.example.com:587", addr)
		assert.Equal(t, "shop@example.com", from)
		sentTo = to
		sentMsg = string(msg)
		return nil
	}

	user := &models.User{Username: "shopper1", Email: "a@b.com"}
	order := &models.Order{OrderNumber: 123456}
	require.NoError(t, mailer.NotifyOrderPlaced(context.Background(), user, order))

	assert.Equal(t, []string{"a@b.com"}, sentTo)
	assert.Contains(t, sentMsg, "Hi shopper1, order 123456")
	assert.Contains(t, sentMsg, "Content-Type: text/html")
}

func TestAppError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAppError(503, "store unavailable", cause)

	assert.Equal(t, "store unavailable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &appErr)
	assert.Equal(t, 503, appErr.Code)

	notFound := NotFound()
	assert.Equal(t, 404, notFound.Code)
	assert.Equal(t, "Page not found", notFound.Error())
	assert.Nil(t, notFound.Unwrap())
}
