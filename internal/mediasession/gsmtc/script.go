package gsmtc

// snapshotScript interrogates the Windows media transport facility and emits
// one JSON document on stdout. Each section is fetched inside its own
// try/catch so a failing section degrades to a *_error string instead of
// killing the snapshot. Exit code 3 means no current session.
//
// Times cross the wire as integers: TimeSpan ticks are 100ns, so *100 yields
// nanoseconds; the last-updated stamp converts to Unix nanoseconds, 0 when
// the facility never stamped it.
const snapshotScript = `
$ErrorActionPreference = 'Stop'
Add-Type -AssemblyName System.Runtime.WindowsRuntime
$asTask = [System.WindowsRuntimeSystemExtensions].GetMethods() |
    Where-Object { $_.Name -eq 'AsTask' -and $_.GetParameters().Count -eq 1 -and $_.GetParameters()[0].ParameterType.Name -like 'IAsyncOperation*' } |
    Select-Object -First 1

function Await($operation, $resultType) {
    $task = $asTask.MakeGenericMethod($resultType).Invoke($null, @($operation))
    $task.Wait() | Out-Null
    $task.Result
}

$null = [Windows.Media.Control.GlobalSystemMediaTransportControlsSessionManager, Windows.Media.Control, ContentType = WindowsRuntime]
$manager = Await ([Windows.Media.Control.GlobalSystemMediaTransportControlsSessionManager]::RequestAsync()) ([Windows.Media.Control.GlobalSystemMediaTransportControlsSessionManager])
$session = $manager.GetCurrentSession()
if ($null -eq $session) { exit 3 }

$epochTicks = 621355968000000000
$result = [ordered]@{ source_app_user_model_id = $session.SourceAppUserModelId }

try {
    $media = Await ($session.TryGetMediaPropertiesAsync()) ([Windows.Media.Control.GlobalSystemMediaTransportControlsSessionMediaProperties])
    $genres = @($media.Genres | ForEach-Object { $_ })
    $m = [ordered]@{
        title = $media.Title
        subtitle = $media.Subtitle
        artist = $media.Artist
        album_title = $media.AlbumTitle
        album_artist = $media.AlbumArtist
        album_track_count = $media.AlbumTrackCount
        track_number = $media.TrackNumber
        genres = $genres
    }
    if ($null -ne $media.PlaybackType) { $m.playback_type = [int]$media.PlaybackType.Value }
    if ($null -ne $media.Thumbnail) {
        try {
            $stream = Await ($media.Thumbnail.OpenReadAsync()) ([Windows.Storage.Streams.IRandomAccessStreamWithContentType])
            $m.thumbnail = [ordered]@{ content_type = $stream.ContentType; size = [uint64]$stream.Size }
            $stream.Dispose()
        } catch { $m.thumbnail_error = $_.Exception.Message }
    }
    $result.media_properties = $m
} catch { $result.media_properties_error = $_.Exception.Message }

try {
    $playback = $session.GetPlaybackInfo()
    $p = [ordered]@{ playback_status = [int]$playback.PlaybackStatus }
    if ($null -ne $playback.AutoRepeatMode) { $p.auto_repeat_mode = [int]$playback.AutoRepeatMode.Value }
    if ($null -ne $playback.IsShuffleActive) { $p.is_shuffle_active = [bool]$playback.IsShuffleActive.Value }
    if ($null -ne $playback.PlaybackRate) { $p.playback_rate = [double]$playback.PlaybackRate.Value }
    if ($null -ne $playback.PlaybackType) { $p.playback_type = [int]$playback.PlaybackType.Value }
    $c = $playback.Controls
    $p.controls = [ordered]@{
        is_channel_down_enabled = [bool]$c.IsChannelDownEnabled
        is_channel_up_enabled = [bool]$c.IsChannelUpEnabled
        is_fast_forward_enabled = [bool]$c.IsFastForwardEnabled
        is_next_enabled = [bool]$c.IsNextEnabled
        is_pause_enabled = [bool]$c.IsPauseEnabled
        is_playback_position_enabled = [bool]$c.IsPlaybackPositionEnabled
        is_playback_rate_enabled = [bool]$c.IsPlaybackRateEnabled
        is_play_enabled = [bool]$c.IsPlayEnabled
        is_play_pause_toggle_enabled = [bool]$c.IsPlayPauseToggleEnabled
        is_previous_enabled = [bool]$c.IsPreviousEnabled
        is_record_enabled = [bool]$c.IsRecordEnabled
        is_repeat_enabled = [bool]$c.IsRepeatEnabled
        is_rewind_enabled = [bool]$c.IsRewindEnabled
        is_shuffle_enabled = [bool]$c.IsShuffleEnabled
        is_stop_enabled = [bool]$c.IsStopEnabled
    }
    $result.playback_info = $p
} catch { $result.playback_info_error = $_.Exception.Message }

try {
    $timeline = $session.GetTimelineProperties()
    $lastUpdated = 0
    if ($timeline.LastUpdatedTime.UtcTicks -gt $epochTicks) {
        $lastUpdated = ($timeline.LastUpdatedTime.UtcTicks - $epochTicks) * 100
    }
    $result.timeline_properties = [ordered]@{
        start_time_ns = $timeline.StartTime.Ticks * 100
        end_time_ns = $timeline.EndTime.Ticks * 100
        min_seek_time_ns = $timeline.MinSeekTime.Ticks * 100
        max_seek_time_ns = $timeline.MaxSeekTime.Ticks * 100
        position_ns = $timeline.Position.Ticks * 100
        last_updated_unix_ns = $lastUpdated
    }
} catch { $result.timeline_properties_error = $_.Exception.Message }

$result | ConvertTo-Json -Depth 6 -Compress
`
