package config

import "testing"

func TestGetCatalogTimeout(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 15},
		{"invalid", "abc", 15},
		{"zero", "0", 15},
		{"negative", "-5", 15},
		{"valid_small", "5", 5},
		{"valid_default", "15", 15},
		{"max", "120", 120},
		{"over_max", "300", 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CATALOG_TIMEOUT_SECONDS", tt.env)
			if got := getCatalogTimeout(); got != tt.want {
				t.Errorf("getCatalogTimeout() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetBatchDownloadLimit(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 50},
		{"invalid", "foo", 50},
		{"zero", "0", 50},
		{"negative", "-10", 50},
		{"min", "1", 1},
		{"mid", "25", 25},
		{"max", "100", 100},
		{"over", "101", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BATCH_DOWNLOAD_LIMIT", tt.env)
			if got := getBatchDownloadLimit(); got != tt.want {
				t.Errorf("getBatchDownloadLimit() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetAdminID(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int64
	}{
		{"empty", "", 0},
		{"invalid", "abc", 0},
		{"negative", "-1", 0},
		{"valid", "123456789", 123456789},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADMIN_ID", tt.env)
			if got := getAdminID(); got != tt.want {
				t.Errorf("getAdminID() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := TelegramConfig{AdminID: 42}
	if !cfg.IsAdmin(42) {
		t.Error("IsAdmin(42) = false; want true")
	}
	if cfg.IsAdmin(43) {
		t.Error("IsAdmin(43) = true; want false")
	}

	unset := TelegramConfig{}
	if unset.IsAdmin(0) {
		t.Error("IsAdmin(0) with no admin configured should be false")
	}
}
