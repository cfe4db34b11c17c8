package client

import (
	"bytes"
	"context"
	"errors"
	"io"

	"golang.org/x/net/html"
)

// Markup holds the values the backend's dashboard page publishes for its
// own front-end.
type Markup struct {
	CSRFToken string
	Users     string
	Groups    string
	Projects  string
}

// endpoint ids on the dashboard page and the attribute carrying the path
const (
	usersButtonID    = "btn-users"
	groupsButtonID   = "btn-groups"
	projectsButtonID = "btn-projects"
	endpointAttr     = "data-endpoint"
	csrfMetaName     = "csrf-token"
)

// ScanDashboard fetches the backend's admin dashboard page and reads the
// anti-forgery token and list endpoints from its markup.
func (c *Client) ScanDashboard(ctx context.Context) (*Markup, error) {
	respBody, err := c.get(ctx, c.Endpoints.Dashboard)
	if err != nil {
		return nil, err
	}

	markup, err := ParseMarkup(bytes.NewReader(respBody))
	if err != nil {
		return nil, &ParseError{URL: c.resolve(c.Endpoints.Dashboard), Err: err}
	}
	return markup, nil
}

// ApplyMarkup fills in the token and any endpoints the page advertises.
// Explicitly configured tokens win over discovered ones.
func (c *Client) ApplyMarkup(m *Markup) {
	if m == nil {
		return
	}
	if c.CSRFToken == "" {
		c.CSRFToken = m.CSRFToken
	}
	if m.Users != "" {
		c.Endpoints.Users = m.Users
	}
	if m.Groups != "" {
		c.Endpoints.Groups = m.Groups
	}
	if m.Projects != "" {
		c.Endpoints.Projects = m.Projects
	}
}

// ParseMarkup scans an HTML document for the csrf-token meta tag and the
// data-endpoint attributes of the list buttons.
func ParseMarkup(r io.Reader) (*Markup, error) {
	m := &Markup{}
	z := html.NewTokenizer(r)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return m, nil
			}
			return nil, z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			attrs := make(map[string]string, len(t.Attr))
			for _, a := range t.Attr {
				attrs[a.Key] = a.Val
			}

			if t.Data == "meta" && attrs["name"] == csrfMetaName {
				m.CSRFToken = attrs["content"]
				continue
			}

			switch attrs["id"] {
			case usersButtonID:
				m.Users = attrs[endpointAttr]
			case groupsButtonID:
				m.Groups = attrs[endpointAttr]
			case projectsButtonID:
				m.Projects = attrs[endpointAttr]
			}
		}
	}
}
