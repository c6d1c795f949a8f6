// Package render implements the rendering collaborator of the pipeline: it
// resolves a template code to a registered template and substitutes
// variables. Template storage and versioning live outside this service;
// templates are registered once at startup.
package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/olegtsov/notify-dispatcher/internal/model"
)

// ErrTemplateNotFound is returned for template codes nothing registered.
var ErrTemplateNotFound = errors.New("template not found")

type parsedTemplate struct {
	subject *template.Template
	body    *template.Template
}

// Renderer renders registered templates. Safe for concurrent use.
type Renderer struct {
	mu        sync.RWMutex
	templates map[string]parsedTemplate
}

// New creates an empty renderer.
func New() *Renderer {
	return &Renderer{templates: make(map[string]parsedTemplate)}
}

// Register parses and stores a template under a code, replacing any
// previous registration.
func (r *Renderer) Register(code, subject, body string) error {
	subjectTmpl, err := template.New(code + ":subject").Option("missingkey=error").Parse(subject)
	if err != nil {
		return fmt.Errorf("parse subject template %s: %w", code, err)
	}

	bodyTmpl, err := template.New(code + ":body").Option("missingkey=error").Parse(body)
	if err != nil {
		return fmt.Errorf("parse body template %s: %w", code, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[code] = parsedTemplate{subject: subjectTmpl, body: bodyTmpl}
	return nil
}

// Render substitutes variables into the template registered under code.
func (r *Renderer) Render(code string, variables map[string]string) (model.Rendered, error) {
	r.mu.RLock()
	tmpl, ok := r.templates[code]
	r.mu.RUnlock()

	if !ok {
		return model.Rendered{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, code)
	}

	var subject, body strings.Builder
	if err := tmpl.subject.Execute(&subject, variables); err != nil {
		return model.Rendered{}, fmt.Errorf("render subject %s: %w", code, err)
	}
	if err := tmpl.body.Execute(&body, variables); err != nil {
		return model.Rendered{}, fmt.Errorf("render body %s: %w", code, err)
	}

	return model.Rendered{Subject: subject.String(), Body: body.String()}, nil
}
