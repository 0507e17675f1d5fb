// Package instruction describes the Dockerfile instructions recorded in the image history.
package instruction

import (
	"strings"
)

// All supported instruction names
const (
	Add         = "add"
	Arg         = "arg"
	Cmd         = "cmd"
	Copy        = "copy"
	Entrypoint  = "entrypoint"
	Env         = "env"
	Expose      = "expose"
	From        = "from"
	Healthcheck = "healthcheck"
	Label       = "label"
	Maintainer  = "maintainer"
	Onbuild     = "onbuild"
	Run         = "run"
	Shell       = "shell"
	StopSignal  = "stopsignal"
	User        = "user"
	Volume      = "volume"
	Workdir     = "workdir"
)

type Format struct {
	Name             string
	SupportsJSONForm bool
	//the instruction only changes the image config (no new layer)
	IsMetadata   bool
	IsDeprecated bool
}

// Specs is a map of all available instructions and their format info (by name)
var Specs = map[string]Format{
	Add: {
		Name:             Add,
		SupportsJSONForm: true,
	},
	Arg: {
		Name:       Arg,
		IsMetadata: true,
	},
	Cmd: {
		Name:             Cmd,
		SupportsJSONForm: true,
		IsMetadata:       true,
	},
	Copy: {
		Name:             Copy,
		SupportsJSONForm: true,
	},
	Entrypoint: {
		Name:             Entrypoint,
		SupportsJSONForm: true,
		IsMetadata:       true,
	},
	Env: {
		Name:       Env,
		IsMetadata: true,
	},
	Expose: {
		Name:       Expose,
		IsMetadata: true,
	},
	From: {
		Name: From,
	},
	Healthcheck: {
		Name:             Healthcheck,
		SupportsJSONForm: true,
		IsMetadata:       true,
	},
	Label: {
		Name:       Label,
		IsMetadata: true,
	},
	Maintainer: {
		Name:         Maintainer,
		IsMetadata:   true,
		IsDeprecated: true,
	},
	Onbuild: {
		Name:       Onbuild,
		IsMetadata: true,
	},
	Run: {
		Name:             Run,
		SupportsJSONForm: true,
	},
	Shell: {
		Name:             Shell,
		SupportsJSONForm: true,
		IsMetadata:       true,
	},
	StopSignal: {
		Name:       StopSignal,
		IsMetadata: true,
	},
	User: {
		Name:       User,
		IsMetadata: true,
	},
	Volume: {
		Name:             Volume,
		SupportsJSONForm: true,
		IsMetadata:       true,
	},
	Workdir: {
		Name:       Workdir,
		IsMetadata: true,
	},
}

func IsKnown(name string) bool {
	name = strings.ToLower(name)
	_, ok := Specs[name]
	return ok
}

// IsKeyword returns true for the instruction names in their canonical (upper case) form.
// Lower case names are shell commands ('env', 'user', etc).
func IsKeyword(token string) bool {
	return token != "" && token == strings.ToUpper(token) && IsKnown(token)
}

// Keyword returns the instruction keyword if the line starts with one
func Keyword(line string) (string, bool) {
	token, _, found := strings.Cut(strings.TrimSpace(line), " ")
	if !found || !IsKeyword(token) {
		return "", false
	}

	return token, true
}
