package mediasession

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaybackStatusFromValue(t *testing.T) {
	tests := []struct {
		value    int32
		expected string
	}{
		{0, "Closed"},
		{1, "Opened"},
		{2, "Changing"},
		{3, "Stopped"},
		{4, "Playing"},
		{5, "Paused"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			status, err := PlaybackStatusFromValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status.String())
		})
	}
}

func TestPlaybackStatusFromValueRejectsOutOfRange(t *testing.T) {
	for _, value := range []int32{-1, 6, 42} {
		t.Run(fmt.Sprintf("%d", value), func(t *testing.T) {
			_, err := PlaybackStatusFromValue(value)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidEnumValue)
		})
	}
}

func TestAutoRepeatModeFromValue(t *testing.T) {
	tests := []struct {
		value    int32
		expected string
	}{
		{0, "None"},
		{1, "Track"},
		{2, "List"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			mode, err := AutoRepeatModeFromValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode.String())
		})
	}

	for _, value := range []int32{-1, 3, 100} {
		_, err := AutoRepeatModeFromValue(value)
		assert.ErrorIs(t, err, ErrInvalidEnumValue, "value %d", value)
	}
}

func TestPlaybackTypeFromValue(t *testing.T) {
	tests := []struct {
		value    int32
		expected string
	}{
		{0, "Unknown"},
		{1, "Music"},
		{2, "Video"},
		{3, "Image"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			pt, err := PlaybackTypeFromValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, pt.String())
		})
	}

	for _, value := range []int32{-1, 4, 255} {
		_, err := PlaybackTypeFromValue(value)
		assert.ErrorIs(t, err, ErrInvalidEnumValue, "value %d", value)
	}
}

func TestControlFlagsOrderAndCount(t *testing.T) {
	flags := PlaybackControls{}.Flags()
	require.Len(t, flags, 15)

	expected := []string{
		"is_channel_down_enabled",
		"is_channel_up_enabled",
		"is_fast_forward_enabled",
		"is_next_enabled",
		"is_pause_enabled",
		"is_playback_position_enabled",
		"is_playback_rate_enabled",
		"is_play_enabled",
		"is_play_pause_toggle_enabled",
		"is_previous_enabled",
		"is_record_enabled",
		"is_repeat_enabled",
		"is_rewind_enabled",
		"is_shuffle_enabled",
		"is_stop_enabled",
	}
	for i, flag := range flags {
		assert.Equal(t, expected[i], flag.Name)
		assert.False(t, flag.Enabled)
	}
}

func TestControlFlagsReflectState(t *testing.T) {
	controls := PlaybackControls{
		IsPlayEnabled:            true,
		IsPauseEnabled:           true,
		IsPlayPauseToggleEnabled: true,
		IsStopEnabled:            true,
	}

	enabled := map[string]bool{}
	for _, flag := range controls.Flags() {
		enabled[flag.Name] = flag.Enabled
	}

	assert.True(t, enabled["is_play_enabled"])
	assert.True(t, enabled["is_pause_enabled"])
	assert.True(t, enabled["is_play_pause_toggle_enabled"])
	assert.True(t, enabled["is_stop_enabled"])
	assert.False(t, enabled["is_record_enabled"])
	assert.False(t, enabled["is_channel_up_enabled"])
}

func TestThumbnailStreamAttributes(t *testing.T) {
	stream := NewThumbnailStream("image/png", 1024, nil)
	assert.Equal(t, "image/png", stream.ContentType())
	assert.Equal(t, uint64(1024), stream.Size())

	buf := make([]byte, 8)
	n, err := stream.Read(buf)
	assert.Equal(t, 0, n)
	assert.Error(t, err)
	assert.NoError(t, stream.Close())
}
