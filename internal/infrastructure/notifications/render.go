package notifications

import (
	"bytes"
	"fmt"
	"text/template"

	"montage_service/internal/domain/workflow"
)

// Render executes the subject and body of tpl with vars. Missing variables
// render as empty strings.
func Render(tpl workflow.NotificationTemplate, vars map[string]string) (subject, body string, err error) {
	subject, err = execute(tpl.ID+".subject", tpl.Subject, vars)
	if err != nil {
		return "", "", err
	}
	body, err = execute(tpl.ID+".body", tpl.Body, vars)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func execute(name, src string, vars map[string]string) (string, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(src)
	if err != nil {
		return "", fmt.Errorf("notifications: parse %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("notifications: render %s: %w", name, err)
	}
	return buf.String(), nil
}
