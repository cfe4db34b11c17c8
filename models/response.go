package models

// Response is the JSON body the backend returns from admin mutations.
type Response struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ActionResult is the outcome of a successful admin mutation.
type ActionResult struct {
	Endpoint string `json:"endpoint"`
	Message  string `json:"message,omitempty"`
}

// ListKind identifies one of the three record lists.
type ListKind string

const (
	ListUsers    ListKind = "users"
	ListGroups   ListKind = "groups"
	ListProjects ListKind = "projects"
)

// ListKinds returns the list kinds in display order.
func ListKinds() []ListKind {
	return []ListKind{ListUsers, ListGroups, ListProjects}
}

// Stats holds the record counts shown above the lists.
type Stats struct {
	Users    int `json:"users"`
	Groups   int `json:"groups"`
	Projects int `json:"projects"`
}
