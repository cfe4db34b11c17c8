package models

// Project represents a deployed project.
type Project struct {
	ID          ID     `json:"pid"`
	Name        string `json:"pname"`
	Description string `json:"pinfo,omitempty"`
	GroupName   string `json:"gname,omitempty"`
	Port        Port   `json:"port"`
	DockerPort  Port   `json:"docker_port"`
}
