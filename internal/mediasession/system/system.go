// Package system selects the media session provider for the build target:
// MPRIS over the session bus on Linux, the Windows transport-controls
// facility through PowerShell, and osascript against Music or Spotify on
// macOS.
package system
