package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		inputName string
		email     string
		want      string
	}{
		{"explicit name wins", "Ada Lovelace", "ada@example.com", "Ada Lovelace"},
		{"whitespace name falls back", "   ", "ada@example.com", "ada"},
		{"empty name falls back", "", "grace.hopper@navy.mil", "grace.hopper"},
		{"no at sign keeps email", "", "not-an-email", "not-an-email"},
		{"leading at sign keeps email", "", "@example.com", "@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultDisplayName(tt.inputName, tt.email))
		})
	}
}
