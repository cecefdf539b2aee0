package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type ProjectType string

const (
	ProjectTypeImage ProjectType = "image"
	ProjectTypeCode  ProjectType = "code"
	ProjectTypeVideo ProjectType = "video"
)

func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeImage, ProjectTypeCode, ProjectTypeVideo:
		return true
	}
	return false
}

type LanguageCode string

const (
	LanguagePython     LanguageCode = "python"
	LanguageTypeScript LanguageCode = "typescript"
	LanguageJavaScript LanguageCode = "javascript"
)

// UserID is an opaque identifier owned by an external auth system.
// Clients send it either as a JSON string or a JSON number.
type UserID string

func (u UserID) String() string {
	return string(u)
}

func (u *UserID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*u = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*u = UserID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user_id must be a string or a number")
	}
	*u = UserID(n.String())
	return nil
}
