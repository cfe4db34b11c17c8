package models

import "encoding/json"

// User represents a user as listed by the backend.
type User struct {
	ID        ID     `json:"uid"`
	Name      string `json:"uname"`
	Email     string `json:"email,omitempty"`
	StudentID string `json:"sid,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
	IsTeacher bool   `json:"is_teacher"`
}

// Group represents a work group. Only the lengths of the member and project
// lists are used by the console.
type Group struct {
	ID          ID                `json:"gid"`
	Name        string            `json:"gname"`
	Description string            `json:"ginfo,omitempty"`
	Users       []json.RawMessage `json:"users,omitempty"`
	Projects    []json.RawMessage `json:"projects,omitempty"`
}

// UserCount returns the number of members, 0 when the backend omitted the list.
func (g Group) UserCount() int {
	return len(g.Users)
}

// ProjectCount returns the number of projects, 0 when the backend omitted the list.
func (g Group) ProjectCount() int {
	return len(g.Projects)
}
