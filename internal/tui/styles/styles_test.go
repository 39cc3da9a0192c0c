package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	ok := StatusStyle(true).Render("ok")
	assert.Contains(t, ok, "ok")

	fail := StatusStyle(false).Render("fail")
	assert.Contains(t, fail, "fail")
}

func TestStylesRender(t *testing.T) {
	tests := []struct {
		name  string
		style func(...string) string
	}{
		{"TitleStyle", TitleStyle.Render},
		{"HeaderStyle", HeaderStyle.Render},
		{"BorderStyle", BorderStyle.Render},
		{"SelectedStyle", SelectedStyle.Render},
		{"CursorStyle", CursorStyle.Render},
		{"HelpStyle", HelpStyle.Render},
		{"ErrorStyle", ErrorStyle.Render},
		{"OkStyle", OkStyle.Render},
		{"FailStyle", FailStyle.Render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.style("hello")
			assert.Contains(t, result, "hello")
		})
	}
}
