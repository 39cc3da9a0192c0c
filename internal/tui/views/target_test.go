package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTargetModel(t *testing.T) {
	m := NewTargetModel()
	assert.Equal(t, "", m.ModuleName())
}

func TestTargetModelSetModuleName(t *testing.T) {
	m := NewTargetModel()
	m.SetModuleName("port_scan")
	assert.Equal(t, "port_scan", m.ModuleName())
}

func TestTargetModelView(t *testing.T) {
	m := NewTargetModel()
	m.SetModuleName("osint")
	view := m.View()

	assert.Contains(t, view, "Aegis")
	assert.Contains(t, view, "osint")
	assert.Contains(t, view, "Enter target")
	assert.Contains(t, view, "esc back")
}

func TestTargetModelValidatedTargetEmpty(t *testing.T) {
	m := NewTargetModel()
	_, err := m.ValidatedTarget()
	assert.Error(t, err)
}

func TestTargetModelInit(t *testing.T) {
	m := NewTargetModel()
	cmd := m.Init()
	assert.NotNil(t, cmd)
}
