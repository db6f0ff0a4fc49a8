package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHost_Matches(t *testing.T) {
	h := Host{Hostname: "DB01.corp.example.com", Description: "Primary SQL"}

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"db01", true},
		{"CORP", true},
		{"sql", true},
		{"primary s", true},
		{"web", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Matches(tt.query))
		})
	}
}
