package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tourmate/internal/audit"
	"tourmate/internal/auth"
	"tourmate/internal/domain"
)

func newAuthService(t *testing.T) AuthService {
	return AuthService{
		Store:     newTestStore(t),
		Audit:     audit.NopSink{},
		JWTSecret: "test-secret",
		Now:       fixedClock("2024-03-01 10:00:00"),
	}
}

func TestEnsureDefaultAdminSeedsOnce(t *testing.T) {
	svc := newAuthService(t)

	require.NoError(t, svc.EnsureDefaultAdmin("bootpass"))
	require.NoError(t, svc.EnsureDefaultAdmin("otherpass"))

	token, user, err := svc.Login("admin", "bootpass")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, auth.RoleAdmin, user.Role)

	// The second call must not have reset the password.
	_, _, err = svc.Login("admin", "otherpass")
	require.True(t, domain.IsAuthenticationRequired(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.EnsureDefaultAdmin("bootpass"))

	_, _, err := svc.Login("admin", "wrong")
	require.True(t, domain.IsAuthenticationRequired(err))

	_, _, err = svc.Login("ghost", "bootpass")
	require.True(t, domain.IsAuthenticationRequired(err))
}

func TestRegisterIsAdminOnly(t *testing.T) {
	svc := newAuthService(t)
	require.NoError(t, svc.EnsureDefaultAdmin("bootpass"))

	_, err := svc.Register(staffActor, RegisterInput{Username: "new", Password: "longenough", Role: auth.RoleStaff})
	require.True(t, domain.IsPermissionDenied(err))

	user, err := svc.Register(adminActor, RegisterInput{Username: "new", Password: "longenough", Role: auth.RoleStaff})
	require.NoError(t, err)
	require.Equal(t, "new", user.Username)

	_, err = svc.Register(adminActor, RegisterInput{Username: "new", Password: "longenough", Role: auth.RoleStaff})
	require.True(t, domain.IsDuplicateID(err))

	_, err = svc.Register(adminActor, RegisterInput{Username: "short", Password: "tiny", Role: auth.RoleStaff})
	require.True(t, domain.IsInvalidData(err))

	_, err = svc.Register(adminActor, RegisterInput{Username: "badrole", Password: "longenough", Role: "root"})
	require.True(t, domain.IsInvalidData(err))
}

func TestRegisteredUserCanLogin(t *testing.T) {
	svc := newAuthService(t)
	// ParseToken checks expiry against wall time, so the token must be
	// issued with a real clock rather than the pinned fixture clock.
	svc.Now = time.Now
	require.NoError(t, svc.EnsureDefaultAdmin("bootpass"))

	_, err := svc.Register(adminActor, RegisterInput{Username: "ops", Password: "longenough", Role: auth.RoleManager})
	require.NoError(t, err)

	token, user, err := svc.Login("ops", "longenough")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, auth.RoleManager, user.Role)

	claims, err := auth.ParseToken("test-secret", token)
	require.NoError(t, err)
	require.Equal(t, "ops", claims.Username)
	require.Equal(t, auth.RoleManager, claims.Role)
}
