package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/pkg/apperror"
)

func TestIssueAndVerify(t *testing.T) {
	authority := NewAuthority("test-secret")
	userID := uuid.New()

	raw, err := authority.Issue(userID, AccessTokenTTL)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	got, err := authority.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyExpired(t *testing.T) {
	authority := NewAuthority("test-secret")
	userID := uuid.New()

	raw, err := authority.Issue(userID, time.Minute)
	require.NoError(t, err)

	// Move the authority's clock past expiry.
	authority.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = authority.Verify(raw)
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestVerifyValidUntilExpiry(t *testing.T) {
	issued := time.Now()
	authority := NewAuthority("test-secret")
	authority.now = func() time.Time { return issued }

	raw, err := authority.Issue(uuid.New(), time.Hour)
	require.NoError(t, err)

	// Just before expiry: valid.
	authority.now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	_, err = authority.Verify(raw)
	assert.NoError(t, err)

	// At expiry: rejected, no grace period.
	authority.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	_, err = authority.Verify(raw)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestVerifyWrongSecret(t *testing.T) {
	raw, err := NewAuthority("secret-a").Issue(uuid.New(), AccessTokenTTL)
	require.NoError(t, err)

	_, err = NewAuthority("secret-b").Verify(raw)
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestVerifyMalformed(t *testing.T) {
	authority := NewAuthority("test-secret")
	for _, raw := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
		_, err := authority.Verify(raw)
		require.Error(t, err, "token %q", raw)
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	}
}

func TestOldTokenStillValidAfterReissue(t *testing.T) {
	authority := NewAuthority("test-secret")
	userID := uuid.New()

	first, err := authority.Issue(userID, AccessTokenTTL)
	require.NoError(t, err)
	second, err := authority.Issue(userID, AccessTokenTTL)
	require.NoError(t, err)

	// Refresh does not invalidate previously issued tokens.
	_, err = authority.Verify(first)
	assert.NoError(t, err)
	_, err = authority.Verify(second)
	assert.NoError(t, err)
}
