package jwtcodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, now func() time.Time) *Codec {
	t.Helper()
	codec, err := New(Options{Secret: "test-secret", TTL: time.Hour, Now: now})
	require.NoError(t, err)
	return codec
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_DefaultTTL(t *testing.T) {
	codec, err := New(Options{Secret: "s"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, codec.TTL())
}

func TestCodec_IssueVerifyRoundTrip(t *testing.T) {
	issued := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, func() time.Time { return issued })

	token, err := codec.Issue("user-1", "ana@aerolink.com.br")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@aerolink.com.br", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.IssuedAt.Equal(issued))
}

func TestCodec_UniqueTokenIDs(t *testing.T) {
	codec := newTestCodec(t, nil)

	first, err := codec.Issue("user-1", "a@b.c")
	require.NoError(t, err)
	second, err := codec.Issue("user-1", "a@b.c")
	require.NoError(t, err)

	c1, err := codec.Verify(first)
	require.NoError(t, err)
	c2, err := codec.Verify(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.TokenID, c2.TokenID)
}

func TestCodec_ExpiredToken(t *testing.T) {
	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, func() time.Time { return clock })

	token, err := codec.Issue("user-1", "a@b.c")
	require.NoError(t, err)

	clock = clock.Add(2 * time.Hour)
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_WrongSecret(t *testing.T) {
	issuer := newTestCodec(t, nil)
	token, err := issuer.Issue("user-1", "a@b.c")
	require.NoError(t, err)

	verifier, err := New(Options{Secret: "other-secret", TTL: time.Hour})
	require.NoError(t, err)
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_MalformedToken(t *testing.T) {
	codec := newTestCodec(t, nil)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
