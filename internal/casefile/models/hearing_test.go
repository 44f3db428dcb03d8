package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapImportedStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want HearingStatus
	}{
		{"Cancelada", HearingStatusCancelled},
		{"AUDIÊNCIA CANCELADA", HearingStatusCancelled},
		{"Redesignada", HearingStatusRescheduled},
		{"remarcada", HearingStatusRescheduled},
		{"Realizada", HearingStatusHeld},
		{"Designada", HearingStatusScheduled},
		{"", HearingStatusScheduled},
		{"anything else", HearingStatusScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, MapImportedStatus(tt.raw))
		})
	}
}
