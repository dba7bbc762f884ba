package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackPhases(t *testing.T) {
	t.Parallel()

	gates := PhaseGates{MiddayUnlockHour: 12, EveningUnlockHour: 17}

	tests := []struct {
		name  string
		flags PhaseFlags
		hour  int
		want  PhaseStates
	}{
		{
			name: "fresh day morning active",
			hour: 8,
			want: PhaseStates{Morning: PhaseActive, Midday: PhaseLocked, Evening: PhaseLocked},
		},
		{
			name:  "morning done before noon keeps midday locked",
			flags: PhaseFlags{Morning: true},
			hour:  11,
			want:  PhaseStates{Morning: PhaseComplete, Midday: PhaseLocked, Evening: PhaseLocked},
		},
		{
			name:  "midday unlocks exactly at the gate",
			flags: PhaseFlags{Morning: true},
			hour:  12,
			want:  PhaseStates{Morning: PhaseComplete, Midday: PhaseActive, Evening: PhaseLocked},
		},
		{
			name:  "late hour alone does not unlock midday",
			hour:  15,
			flags: PhaseFlags{},
			want:  PhaseStates{Morning: PhaseActive, Midday: PhaseLocked, Evening: PhaseLocked},
		},
		{
			name:  "midday done before evening gate",
			flags: PhaseFlags{Morning: true, Midday: true},
			hour:  16,
			want:  PhaseStates{Morning: PhaseComplete, Midday: PhaseComplete, Evening: PhaseLocked},
		},
		{
			name:  "evening unlocks at the gate",
			flags: PhaseFlags{Morning: true, Midday: true},
			hour:  17,
			want:  PhaseStates{Morning: PhaseComplete, Midday: PhaseComplete, Evening: PhaseActive},
		},
		{
			name:  "all complete",
			flags: PhaseFlags{Morning: true, Midday: true, Evening: true},
			hour:  22,
			want:  PhaseStates{Morning: PhaseComplete, Midday: PhaseComplete, Evening: PhaseComplete},
		},
		{
			name:  "midday flag without morning still counts",
			flags: PhaseFlags{Midday: true},
			hour:  18,
			want:  PhaseStates{Morning: PhaseActive, Midday: PhaseComplete, Evening: PhaseActive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TrackPhases(tt.flags, tt.hour, gates))
		})
	}
}

func TestTrackPhases_ConfigurableEveningGate(t *testing.T) {
	t.Parallel()

	gates := PhaseGates{MiddayUnlockHour: 12, EveningUnlockHour: 19}
	flags := PhaseFlags{Morning: true, Midday: true}

	assert.Equal(t, PhaseLocked, TrackPhases(flags, 18, gates).Evening)
	assert.Equal(t, PhaseActive, TrackPhases(flags, 19, gates).Evening)
}

func TestParsePhase(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"morning", "midday", "evening"} {
		p, ok := ParsePhase(valid)
		assert.True(t, ok)
		assert.Equal(t, Phase(valid), p)
	}

	_, ok := ParsePhase("night")
	assert.False(t, ok)
}
