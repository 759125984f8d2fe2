package mediasession

// PlaybackControls is the capability set: which transport commands the
// current session permits right now. All fifteen flags are always reported;
// none are optional.
type PlaybackControls struct {
	IsChannelDownEnabled      bool
	IsChannelUpEnabled        bool
	IsFastForwardEnabled      bool
	IsNextEnabled             bool
	IsPauseEnabled            bool
	IsPlaybackPositionEnabled bool
	IsPlaybackRateEnabled     bool
	IsPlayEnabled             bool
	IsPlayPauseToggleEnabled  bool
	IsPreviousEnabled         bool
	IsRecordEnabled           bool
	IsRepeatEnabled           bool
	IsRewindEnabled           bool
	IsShuffleEnabled          bool
	IsStopEnabled             bool
}

// ControlFlag pairs a capability's wire name with its state.
type ControlFlag struct {
	Name    string
	Enabled bool
}

// Flags lists the capability set in the facility's member order. Renderers
// iterate this instead of reaching into the struct so text and ndjson output
// agree on names and order.
func (c PlaybackControls) Flags() []ControlFlag {
	return []ControlFlag{
		{"is_channel_down_enabled", c.IsChannelDownEnabled},
		{"is_channel_up_enabled", c.IsChannelUpEnabled},
		{"is_fast_forward_enabled", c.IsFastForwardEnabled},
		{"is_next_enabled", c.IsNextEnabled},
		{"is_pause_enabled", c.IsPauseEnabled},
		{"is_playback_position_enabled", c.IsPlaybackPositionEnabled},
		{"is_playback_rate_enabled", c.IsPlaybackRateEnabled},
		{"is_play_enabled", c.IsPlayEnabled},
		{"is_play_pause_toggle_enabled", c.IsPlayPauseToggleEnabled},
		{"is_previous_enabled", c.IsPreviousEnabled},
		{"is_record_enabled", c.IsRecordEnabled},
		{"is_repeat_enabled", c.IsRepeatEnabled},
		{"is_rewind_enabled", c.IsRewindEnabled},
		{"is_shuffle_enabled", c.IsShuffleEnabled},
		{"is_stop_enabled", c.IsStopEnabled},
	}
}
