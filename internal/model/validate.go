package model

import (
	"fmt"
	"strings"
)

// Validate methods cover the fields the original content required; resources
// whose fields are all optional (certificates, content blocks) have none.

func (p *Project) Validate() error {
	return requireFields(map[string]string{
		"title":       p.Title,
		"description": p.Description,
		"date":        p.Date,
	})
}

func (a *Achievement) Validate() error {
	return requireFields(map[string]string{
		"title":       a.Title,
		"description": a.Description,
	})
}

func (s *Skill) Validate() error {
	return requireFields(map[string]string{"name": s.Name})
}

func (e *TimelineEntry) Validate() error {
	return requireFields(map[string]string{
		"title":       e.Title,
		"year":        e.Year,
		"description": e.Description,
		"icon":        e.Icon,
	})
}

func (m *ContactMessage) Validate() error {
	if err := requireFields(map[string]string{
		"name":    m.Name,
		"email":   m.Email,
		"message": m.Message,
	}); err != nil {
		return err
	}
	if !strings.Contains(m.Email, "@") {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	return nil
}

func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
		}
	}
	return nil
}
