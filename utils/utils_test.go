package utils

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"demo@example.com", true},
		{" padded@example.co ", true},
		{"no-at-sign.com", false},
		{"missing@tld", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			valid, _ := ValidateEmail(tt.email)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("demo123")
	require.NoError(t, err)
	assert.NotEqual(t, "demo123", hash)

	assert.True(t, CheckPassword("demo123", hash))
	assert.False(t, CheckPassword("demo124", hash))
	assert.False(t, CheckPassword("", ""))
}

func TestNewPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query  string
		page   int
		limit  int
		offset int
	}{
		{"", 1, 10, 0},
		{"?page=3&limit=20", 3, 20, 40},
		{"?page=-1&limit=abc", 1, 10, 0},
		{"?limit=5000", 1, maxPageSize, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/admin/payments"+tt.query, nil)

			p := NewPagination(c)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestPaginationSetTotal(t *testing.T) {
	p := &Pagination{Page: 1, Limit: 10}
	p.SetTotal(21)
	assert.Equal(t, 3, p.LastPage)

	p.SetTotal(0)
	assert.Equal(t, 0, p.LastPage)
}

func TestAppErrorKinds(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewVerificationError(ErrPaymentVerification))
	assert.True(t, IsKind(err, KindVerification))
	assert.False(t, IsKind(err, KindValidation))
	require.NotNil(t, AsAppError(err))
	assert.Equal(t, 400, AsAppError(err).Code)
	assert.Nil(t, AsAppError(fmt.Errorf("plain")))
}

func TestContactEmailsEscapeInput(t *testing.T) {
	admin := ContactAdminEmail("admin@example.com", "<b>Eve</b>", "eve@example.com", "Hi", "line one\n<script>x</script>")
	assert.Equal(t, "admin@example.com", admin.To)
	assert.NotContains(t, admin.HTML, "<script>")
	assert.NotContains(t, admin.HTML, "<b>Eve</b>")
	assert.Contains(t, admin.HTML, "line one<br>&lt;script&gt;")

	ack := ContactAckEmail("eve@example.com", "Eve", "thanks")
	assert.Equal(t, "eve@example.com", ack.To)
	assert.True(t, strings.Contains(ack.HTML, "Hi Eve"))
}

func TestMaskSecretAndStripTags(t *testing.T) {
	assert.Equal(t, "abcde...", MaskSecret("abcdefgh", 5))
	assert.Equal(t, "abc...", MaskSecret("abc", 5))
	assert.Equal(t, "Hello world", StripTags("<p>Hello <b>world</b></p>"))
}

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹499.00", FormatRupees(49900))
	assert.Equal(t, "₹0.05", FormatRupees(5))
}

type chanMailer chan Email

func (c chanMailer) Send(email Email) error {
	c <- email
	return nil
}

func TestSendAsync(t *testing.T) {
	assert.NotPanics(t, func() { SendAsync(nil, Email{To: "a@example.com"}) })

	sent := make(chanMailer, 1)
	SendAsync(sent, Email{To: "b@example.com", Subject: "hi"})
	select {
	case e := <-sent:
		assert.Equal(t, "b@example.com", e.To)
	case <-time.After(time.Second):
		t.Fatal("email was not sent")
	}
}
