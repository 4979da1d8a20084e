package auth

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/Govind-619/ClipCraft/repository"
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []utils.Email
}

func (m *recordingMailer) Send(e utils.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func newTestService() (*Service, *recordingMailer) {
	mailer := &recordingMailer{}
	users := repository.NewMemoryUserRepository(DemoUser())
	return NewService(users, mailer, "test-secret", "http://localhost:3000"), mailer
}

func TestAuthorize_DemoUser(t *testing.T) {
	svc, _ := newTestService()

	user, ok := svc.Authorize(context.Background(), "demo@example.com", "demo123")
	require.True(t, ok)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "Demo User", user.Name)
}

func TestAuthorize_Rejections(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"missing email", "", "demo123"},
		{"missing password", "demo@example.com", ""},
		{"unknown user", "nobody@example.com", "demo123"},
		{"wrong password", "demo@example.com", "demo124"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, ok := svc.Authorize(ctx, tc.email, tc.password)
			assert.False(t, ok)
			assert.Nil(t, user)
		})
	}
}

func TestRegister_ThenDuplicate(t *testing.T) {
	svc, mailer := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "new@example.com", "secret1", "New User")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = svc.Register(ctx, "new@example.com", "secret2", "Someone Else")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindDuplicateUser))

	logged, ok := svc.Authorize(ctx, "new@example.com", "secret1")
	require.True(t, ok)
	assert.Equal(t, user.ID, logged.ID)

	assert.Eventually(t, func() bool { return mailer.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name, email, password, userName string
	}{
		{"missing name", "a@example.com", "secret1", ""},
		{"missing password", "a@example.com", "", "A"},
		{"bad email", "not-an-email", "secret1", "A"},
		{"short password", "a@example.com", "12345", "A"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.email, tc.password, tc.userName)
			require.Error(t, err)
			appErr := utils.AsAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, utils.KindValidation, appErr.Kind)
			assert.Equal(t, 400, appErr.Code)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	user := DemoUser()

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.ID)
	assert.Equal(t, "demo@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), time.Unix(claims.ExpiresAt, 0), time.Minute)

	other := NewService(repository.NewMemoryUserRepository(), &recordingMailer{}, "other-secret", "")
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_RejectsExpiredAndUnsigned(t *testing.T) {
	svc, _ := newTestService()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:             "1",
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Hour).Unix()},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(signed)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: "1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ParseToken(unsigned)
	assert.Error(t, err)
}

func TestUpsertOAuthUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	existing, err := svc.UpsertOAuthUser(ctx, "demo@example.com", "Ignored", "google")
	require.NoError(t, err)
	assert.Equal(t, "1", existing.ID)

	created, err := svc.UpsertOAuthUser(ctx, "g@example.com", "Google User", "google")
	require.NoError(t, err)
	assert.Equal(t, "google", created.Provider)

	again, err := svc.UpsertOAuthUser(ctx, "g@example.com", "Google User", "google")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

var resetTokenPattern = regexp.MustCompile(`token=([A-Za-z0-9._-]+)`)

func (m *recordingMailer) resetToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if match := resetTokenPattern.FindStringSubmatch(m.sent[i].HTML); match != nil {
			return match[1]
		}
	}
	return ""
}

func TestPasswordReset(t *testing.T) {
	svc, mailer := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.RequestPasswordReset(ctx, "demo@example.com"))
	assert.Eventually(t, func() bool { return mailer.resetToken() != "" }, time.Second, 10*time.Millisecond)
	token := mailer.resetToken()

	_, err := svc.ParseToken(token)
	assert.Error(t, err, "reset tokens must not authenticate a session")

	require.NoError(t, svc.ResetPassword(ctx, token, "brand-new-pass"))

	_, ok := svc.Authorize(ctx, "demo@example.com", "demo123")
	assert.False(t, ok)
	_, ok = svc.Authorize(ctx, "demo@example.com", "brand-new-pass")
	assert.True(t, ok)

	err = svc.ResetPassword(ctx, token, "another-pass")
	require.Error(t, err)
	assert.Equal(t, utils.ErrInvalidResetToken, err.Error())
}

func TestRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	svc, mailer := newTestService()

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "nobody@example.com"))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, mailer.count())

	err := svc.RequestPasswordReset(context.Background(), "not-an-email")
	assert.Error(t, err)
}

func TestResetPassword_Rejections(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	session, err := svc.IssueToken(DemoUser())
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		password string
	}{
		{"missing token", "", "long-enough"},
		{"short password", "whatever", "123"},
		{"session token", session, "long-enough"},
		{"garbage", "not.a.jwt", "long-enough"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ResetPassword(ctx, tt.token, tt.password)
			require.Error(t, err)
			appErr := utils.AsAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, utils.KindValidation, appErr.Kind)
		})
	}
}
