package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePostText(t *testing.T) {
	assert.NoError(t, ValidatePostText("обычный текст поста"))
	assert.Error(t, ValidatePostText(""))
	assert.Error(t, ValidatePostText("   \t\n  "))
}

func TestValidateCommentTextLength(t *testing.T) {
	assert.NoError(t, ValidateCommentText(strings.Repeat("a", 500)))

	err := ValidateCommentText(strings.Repeat("a", 501))
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "text", vErr.Field)
}

func TestValidateCommentTextBlank(t *testing.T) {
	assert.Error(t, ValidateCommentText(" \n "))
}
