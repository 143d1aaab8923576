package server

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*
var templateFiles embed.FS

// ParseTemplate parses a single template from the embedded filesystem.
func ParseTemplate(name string) (*template.Template, error) {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, err
	}
	content, err := fs.ReadFile(subFS, name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Parse(string(content))
}

// MustParseTemplate is ParseTemplate for templates compiled into the binary;
// a missing or malformed one is a programming error.
func MustParseTemplate(name string) *template.Template {
	tmpl, err := ParseTemplate(name)
	if err != nil {
		panic("failed to parse template " + name + ": " + err.Error())
	}
	return tmpl
}
