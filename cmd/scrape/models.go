package main

import "dorm-menu-csv/internal/menu"

// ---------- Output models ----------

type DormMeta struct {
	Date        string `json:"date"` // YYYY-MM-DD requested from the site
	Timezone    string `json:"timezone"`
	Source      string `json:"source"`
	Encoding    string `json:"encoding,omitempty"`
	LastUpdated string `json:"lastUpdated"`
}

type DormOut struct {
	Menus []menu.Record `json:"menus"`
	Meta  DormMeta      `json:"meta"`
}

type uploadResult struct {
	OK     bool   `json:"ok"`
	Bucket string `json:"bucket,omitempty"`
	Key    string `json:"key,omitempty"`
	Path   string `json:"path,omitempty"`
}
