package cli

import (
	"encoding/json"
	"strings"
)

// SchemaCmd outputs JSON Schema for npdump output types
type SchemaCmd struct {
	Type []string `short:"t" help:"Output types to include (session,playback_info,media_properties,timeline_properties,error,doctor). Default: all"`
}

// Run executes the schema command
func (c *SchemaCmd) Run(globals *Globals) error {
	schemas := map[string]interface{}{
		"session":             sessionSchema(),
		"playback_info":       playbackInfoSchema(),
		"media_properties":    mediaPropertiesSchema(),
		"timeline_properties": timelinePropertiesSchema(),
		"error":               errorSchema(),
		"doctor":              doctorSchema(),
	}

	typesToOutput := c.Type
	if len(typesToOutput) == 0 {
		typesToOutput = []string{"session", "playback_info", "media_properties", "timeline_properties", "error", "doctor"}
	}

	out := map[string]interface{}{
		"$schema":     "http://json-schema.org/draft-07/schema#",
		"title":       "npdump Output Schemas",
		"description": "JSON Schema definitions for all npdump NDJSON output types",
		"definitions": map[string]interface{}{},
	}

	defs := out["definitions"].(map[string]interface{})
	for _, t := range typesToOutput {
		t = strings.ToLower(strings.TrimSpace(t))
		if schema, ok := schemas[t]; ok {
			defs[t] = schema
		}
	}

	encoder := json.NewEncoder(globals.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func sessionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Session Header",
		"description": "Identifies the app that owns the current media session",
		"properties": map[string]interface{}{
			"type": map[string]interface{}{
				"type":  "string",
				"const": "session",
			},
			"schemaVersion": map[string]interface{}{
				"type":        "integer",
				"description": "NDJSON record layout version",
			},
			"app_user_model_id": map[string]interface{}{
				"type":        "string",
				"description": "Source app identifier (AUMID, bus name, or bundle id)",
			},
		},
		"required": []string{"type", "schemaVersion", "app_user_model_id"},
	}
}

func playbackInfoSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Playback Info",
		"description": "Playback state and the transport controls capability set",
		"properties": map[string]interface{}{
			"type": map[string]interface{}{
				"type":  "string",
				"const": "playback_info",
			},
			"schemaVersion": map[string]interface{}{
				"type": "integer",
			},
			"playback_status": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"Closed", "Opened", "Changing", "Stopped", "Playing", "Paused"},
				"description": "Current playback status",
			},
			"auto_repeat_mode": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"None", "Track", "List"},
				"description": "Repeat mode; omitted when the platform does not report it",
			},
			"is_shuffle_active": map[string]interface{}{
				"type":        "boolean",
				"description": "Shuffle state; omitted when the platform does not report it",
			},
			"playback_rate": map[string]interface{}{
				"type":        "number",
				"description": "Playback rate multiplier; omitted when the platform does not report it",
			},
			"playback_type": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"Unknown", "Music", "Video", "Image"},
				"description": "Kind of content the session plays; omitted when the platform does not report it",
			},
			"controls": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": map[string]interface{}{"type": "boolean"},
				"description":          "All fifteen transport control capability flags",
			},
		},
		"required": []string{"type", "schemaVersion", "playback_status", "controls"},
	}
}

func mediaPropertiesSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Media Properties",
		"description": "Metadata the source app attached to the playing media",
		"properties": map[string]interface{}{
			"type": map[string]interface{}{
				"type":  "string",
				"const": "media_properties",
			},
			"schemaVersion": map[string]interface{}{
				"type": "integer",
			},
			"title":        map[string]interface{}{"type": "string"},
			"subtitle":     map[string]interface{}{"type": "string"},
			"artist":       map[string]interface{}{"type": "string"},
			"album_title":  map[string]interface{}{"type": "string"},
			"album_artist": map[string]interface{}{"type": "string"},
			"album_track_count": map[string]interface{}{
				"type":        "integer",
				"description": "Number of tracks on the album, 0 when unknown",
			},
			"track_number": map[string]interface{}{
				"type":        "integer",
				"description": "Position of this track on the album, 0 when unknown",
			},
			"genres": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Genre labels, empty when the app reports none",
			},
			"playback_type": map[string]interface{}{
				"type": "string",
				"enum": []string{"Unknown", "Music", "Video", "Image"},
			},
			"thumbnail": map[string]interface{}{
				"type":        "object",
				"description": "Artwork descriptor, omitted when the media has no thumbnail",
				"properties": map[string]interface{}{
					"content_type": map[string]interface{}{
						"type":        "string",
						"description": "MIME type of the artwork stream",
					},
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Declared stream size in bytes",
					},
				},
				"required": []string{"content_type", "size"},
			},
			"thumbnail_error": map[string]interface{}{
				"type":        "string",
				"description": "Why the thumbnail could not be opened; omitted on success",
			},
		},
		"required": []string{"type", "schemaVersion", "title", "genres", "playback_type"},
	}
}

func timelinePropertiesSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Timeline Properties",
		"description": "Track window, seek range, and position, all in integer nanoseconds",
		"properties": map[string]interface{}{
			"type": map[string]interface{}{
				"type":  "string",
				"const": "timeline_properties",
			},
			"schemaVersion": map[string]interface{}{
				"type": "integer",
			},
			"start_time_ns":    map[string]interface{}{"type": "integer"},
			"end_time_ns":      map[string]interface{}{"type": "integer"},
			"min_seek_time_ns": map[string]interface{}{"type": "integer"},
			"max_seek_time_ns": map[string]interface{}{"type": "integer"},
			"position_ns":      map[string]interface{}{"type": "integer"},
			"last_updated_unix_ns": map[string]interface{}{
				"type":        "integer",
				"description": "Unix nanoseconds of the last position update, 0 when never stamped",
			},
		},
		"required": []string{
			"type", "schemaVersion", "start_time_ns", "end_time_ns",
			"min_seek_time_ns", "max_seek_time_ns", "position_ns", "last_updated_unix_ns",
		},
	}
}

func errorSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Error",
		"description": "Error record from npdump",
		"properties": map[string]interface{}{
			"type": map[string]interface{}{
				"type":  "string",
				"const": "error",
			},
			"schemaVersion": map[string]interface{}{
				"type": "integer",
			},
			"code": map[string]interface{}{
				"type":        "string",
				"description": "Machine-readable error code",
				"enum": []string{
					"MANAGER_UNAVAILABLE",
					"NO_CURRENT_SESSION",
					"SECTION_UNAVAILABLE",
					"INVALID_FLAGS",
				},
			},
			"message": map[string]interface{}{
				"type":        "string",
				"description": "Human-readable error description",
			},
			"section": map[string]interface{}{
				"type":        "string",
				"description": "Dump section that failed; omitted for fatal errors",
			},
			"hint": map[string]interface{}{
				"type":        "string",
				"description": "Suggested remediation; omitted when none applies",
			},
		},
		"required": []string{"type", "schemaVersion", "code", "message"},
	}
}

func doctorSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Doctor Report",
		"description": "Environment check results",
		"properties": map[string]interface{}{
			"type": map[string]interface{}{
				"type":  "string",
				"const": "doctor",
			},
			"schemaVersion": map[string]interface{}{
				"type": "integer",
			},
			"timestamp": map[string]interface{}{
				"type":   "string",
				"format": "date-time",
			},
			"checks": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":    map[string]interface{}{"type": "string"},
						"status":  map[string]interface{}{"type": "string", "enum": []string{"ok", "warning", "error"}},
						"message": map[string]interface{}{"type": "string"},
						"details": map[string]interface{}{"type": "string"},
					},
					"required": []string{"name", "status", "message"},
				},
			},
			"all_passed":  map[string]interface{}{"type": "boolean"},
			"error_count": map[string]interface{}{"type": "integer"},
			"warn_count":  map[string]interface{}{"type": "integer"},
		},
		"required": []string{"type", "schemaVersion", "timestamp", "checks", "all_passed", "error_count", "warn_count"},
	}
}
