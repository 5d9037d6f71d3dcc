package api

import (
	"github.com/newtron-network/mistconv/pkg/eventlog"
	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/pipeline"
)

// Response is the envelope returned by every JSON endpoint except
// /api/disclaimer.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Disclaimer is the login banner shown by the front end. Empty fields are
// omitted.
type Disclaimer struct {
	Disclaimer string `json:"disclaimer,omitempty"`
	GithubURL  string `json:"github_url,omitempty"`
	DockerURL  string `json:"docker_url,omitempty"`
}

// InputFile is one uploaded configuration.
type InputFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ConvertRequest is the body of POST /api/convert.
type ConvertRequest struct {
	Name   string      `json:"name,omitempty"`
	Files  []InputFile `json:"files"`
	Export bool        `json:"export,omitempty"`
}

// ConvertResponse is the data of a successful conversion.
type ConvertResponse struct {
	Template *model.MistTemplate    `json:"template"`
	Files    []*pipeline.ConfigFile `json:"files"`
	Events   []*eventlog.Event      `json:"events"`
	Exported bool                   `json:"exported,omitempty"`
}

// HealthResponse reports server status.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
