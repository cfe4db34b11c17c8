// Package actions maps the action tags carried by list controls to backend
// mutation endpoints.
package actions

import (
	"net/url"
	"strings"

	"github.com/EO-DataHub/eodhp-admin-console/internal/appconfig"
	"github.com/EO-DataHub/eodhp-admin-console/models"
)

// Kind is one of the destructive admin actions.
type Kind int

const (
	DeleteUser Kind = iota + 1
	ResetPassword
	DeleteGroup
	DeleteProject
)

// idPlaceholder is replaced with the record id in endpoint templates.
const idPlaceholder = "{id}"

var tags = map[Kind]string{
	DeleteUser:    "del_user",
	ResetPassword: "reset_password",
	DeleteGroup:   "del_group",
	DeleteProject: "del_projects",
}

// Tag returns the wire tag attached to list controls.
func (k Kind) Tag() string {
	return tags[k]
}

func (k Kind) String() string {
	if tag, ok := tags[k]; ok {
		return tag
	}
	return "unknown"
}

// Label is the short text shown on the control.
func (k Kind) Label() string {
	switch k {
	case DeleteUser, DeleteGroup, DeleteProject:
		return "Delete"
	case ResetPassword:
		return "Reset password"
	}
	return ""
}

// ParseKind resolves a wire tag. Unknown tags report false.
func ParseKind(tag string) (Kind, bool) {
	for k, t := range tags {
		if t == tag {
			return k, true
		}
	}
	return 0, false
}

// Resolution is everything needed to confirm and carry out an action.
type Resolution struct {
	Kind     Kind
	ID       string
	Endpoint string
	Prompt   string
	Refresh  models.ListKind
}

// Dispatcher resolves (tag, id) pairs against the configured endpoints.
type Dispatcher struct {
	endpoints appconfig.EndpointsConfig
}

func NewDispatcher(endpoints appconfig.EndpointsConfig) *Dispatcher {
	return &Dispatcher{endpoints: endpoints}
}

// Resolve maps an action tag and record id to its endpoint, confirmation
// prompt and the list to refresh afterwards. An unknown tag or an empty id is
// not an error: it reports false and the caller does nothing.
func (d *Dispatcher) Resolve(tag, id string) (Resolution, bool) {
	if tag == "" || id == "" {
		return Resolution{}, false
	}
	kind, ok := ParseKind(tag)
	if !ok {
		return Resolution{}, false
	}

	res := Resolution{Kind: kind, ID: id}
	switch kind {
	case DeleteUser:
		res.Endpoint = expand(d.endpoints.DeleteUser, id)
		res.Prompt = "Delete this user? This cannot be undone!"
		res.Refresh = models.ListUsers
	case ResetPassword:
		res.Endpoint = expand(d.endpoints.ResetPassword, id)
		res.Prompt = "Reset this user's password to the default password?"
		res.Refresh = models.ListUsers
	case DeleteGroup:
		res.Endpoint = expand(d.endpoints.DeleteGroup, id)
		res.Prompt = "Delete this group? This cannot be undone!"
		res.Refresh = models.ListGroups
	case DeleteProject:
		res.Endpoint = expand(d.endpoints.DeleteProject, id)
		res.Prompt = "Delete this project? This cannot be undone!"
		res.Refresh = models.ListProjects
	default:
		return Resolution{}, false
	}
	return res, true
}

// ForList returns the actions offered on rows of the given list.
func ForList(kind models.ListKind) []Kind {
	switch kind {
	case models.ListUsers:
		return []Kind{DeleteUser, ResetPassword}
	case models.ListGroups:
		return []Kind{DeleteGroup}
	case models.ListProjects:
		return []Kind{DeleteProject}
	}
	return nil
}

func expand(template, id string) string {
	return strings.ReplaceAll(template, idPlaceholder, url.PathEscape(id))
}
