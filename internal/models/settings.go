package models

// Settings is the free-form site content blob (contact details, hero copy,
// opening hours). It has no schema of its own.
type Settings map[string]any

const SettingsRowID = "site"
