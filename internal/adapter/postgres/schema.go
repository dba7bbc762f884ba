package postgres

// Writable column sets per table. The primary and secondary databases carry
// different layouts for the same logical data: the secondary predates the
// work_mode/energy_level columns, so those values either travel inside the
// tags array (schedules, re-encoded by the replication transform) or are
// simply not mirrored (daily_logs).
//
// id, created_at and updated_at are server-generated and intentionally
// absent: writes never supply them.

// PrimaryTables describes the primary database schema.
func PrimaryTables() map[string][]string {
	return map[string][]string{
		"challenges": {"user_id", "name", "description", "is_active"},
		"wisdom_library": {
			"user_id", "name", "description", "tag", "is_active",
		},
		"daily_logs": {
			"user_id", "date", "situation",
			"morning_insight", "morning_follow_up",
			"midday_insight", "midday_adjustment", "midday_follow_up",
			"evening_insight", "evening_follow_up",
			"morning_complete", "midday_complete", "evening_complete",
			"win", "weakness", "tomorrows_prep",
			"completed_action_items", "work_mode", "energy_level",
		},
		"schedules": {
			"user_id", "day_of_week", "work_mode", "tags", "description",
		},
		"user_settings": {"user_id", "setting_key", "setting_value"},
	}
}

// SecondaryTables describes the secondary database schema.
func SecondaryTables() map[string][]string {
	return map[string][]string{
		"challenges": {"user_id", "name", "description", "is_active"},
		"wisdom_library": {
			"user_id", "name", "description", "tag", "is_active",
		},
		"daily_logs": {
			"user_id", "date", "situation",
			"morning_insight", "morning_follow_up",
			"midday_insight", "midday_adjustment", "midday_follow_up",
			"evening_insight", "evening_follow_up",
			"morning_complete", "midday_complete", "evening_complete",
			"win", "weakness", "tomorrows_prep",
			"completed_action_items",
		},
		// No work_mode column: the value lives inside tags.
		"schedules": {
			"user_id", "day_of_week", "tags", "description",
		},
		"user_settings": {"user_id", "setting_key", "setting_value"},
	}
}
