package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("secret", time.Hour, "u-1", "admin@example.com", "admin")
	require.NoError(t, err)

	claims, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.True(t, claims.IsAdmin())
}

func TestValidateTokenRejectsBadTokens(t *testing.T) {
	token, err := IssueToken("secret", time.Hour, "u-1", "staff@example.com", "staff")
	require.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	assert.Error(t, err)

	expired, err := IssueToken("secret", -time.Minute, "u-1", "staff@example.com", "staff")
	require.NoError(t, err)
	_, err = ValidateToken("secret", expired)
	assert.Error(t, err)

	_, err = ValidateToken("secret", "not-a-token")
	assert.Error(t, err)

	_, err = IssueToken("", time.Hour, "u-1", "", "admin")
	assert.Error(t, err)
}

func TestIsPasswordStrong(t *testing.T) {
	assert.False(t, IsPasswordStrong("short"))
	assert.False(t, IsPasswordStrong("         "))
	assert.True(t, IsPasswordStrong("longenough"))
}

func TestRequestIDContext(t *testing.T) {
	assert.Empty(t, RequestIDFrom(context.Background()))
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestIDFrom(ctx))
}

func TestStringTrim(t *testing.T) {
	assert.Equal(t, "chair-1", StringTrim(` "chair-1" `))
	assert.Equal(t, "chair-1", StringTrim("'chair-1'"))
}

func TestUploadImagesWithoutCloudinaryKeepsReferences(t *testing.T) {
	u := NewImageUploader(nil, nil)

	urls, err := u.UploadImages(context.Background(), []string{"https://cdn.example.com/a.jpg", " ", "local/b.jpg"}, ItemsFolder)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "local/b.jpg"}, urls)

	assert.True(t, IsHostedURL("HTTP://example.com/x.png"))
	assert.False(t, IsHostedURL("data:image/png;base64,AAAA"))
}
