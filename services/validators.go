package services

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const MAX_COMMENT_LENGTH = 500

// ValidationError - ошибка валидации одного поля формы
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidatePostText отклоняет текст, который пуст после удаления пробелов
func ValidatePostText(text string) error {
	if len(strings.Fields(text)) == 0 {
		return &ValidationError{Field: "text", Message: "text must not be blank"}
	}
	return nil
}

// ValidateCommentText - как ValidatePostText, плюс лимит в 500 символов
func ValidateCommentText(text string) error {
	if err := ValidatePostText(text); err != nil {
		return err
	}
	if utf8.RuneCountInString(text) > MAX_COMMENT_LENGTH {
		return &ValidationError{Field: "text", Message: "text must be at most 500 characters"}
	}
	return nil
}
