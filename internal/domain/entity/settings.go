package entity

import "strings"

type NotificationSettings struct {
	Messages bool `json:"messages"`
	Likes    bool `json:"likes"`
	NewPosts bool `json:"newPosts"`
}

type Settings struct {
	Name          string               `json:"name"`
	Username      string               `json:"username"`
	Notifications NotificationSettings `json:"notifications"`
}

func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{Messages: true, Likes: true, NewPosts: false},
	}
}

func (s Settings) Validate() error {
	if strings.ContainsAny(s.Username, " \t\n") {
		return NewValidationError("username", "username cannot contain whitespace")
	}
	return nil
}
