package logger

import (
	"testing"
)

func newTestZapLogger(t *testing.T) *ZapLogger {
	t.Helper()
	return NewZapLogger(t.TempDir()+"/app.log", false)
}

func TestGetLogsClampsPagination(t *testing.T) {
	l := newTestZapLogger(t)
	l.Info("TEST", "first", nil)
	l.Info("TEST", "second", nil)
	_ = l.Sync()

	tests := []struct {
		name   string
		limit  int
		offset int
		want   int
	}{
		{"normal window", 100, 0, 2},
		{"negative offset", 100, -1, 2},
		{"negative limit", -5, 0, 0},
		{"both negative", -1, -1, 0},
		{"offset past end", 100, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := l.GetLogs("", tt.limit, tt.offset)
			if err != nil {
				t.Fatalf("GetLogs: %v", err)
			}
			if len(entries) != tt.want {
				t.Errorf("len(entries) = %d, want %d", len(entries), tt.want)
			}
		})
	}
}

func TestGetLogsFiltersByLevelAndOrdersNewestFirst(t *testing.T) {
	l := newTestZapLogger(t)
	l.Info("TEST", "older info", nil)
	l.Warn("TEST", "a warning", nil)
	l.Info("TEST", "newer info", nil)
	_ = l.Sync()

	entries, err := l.GetLogs("INFO", 100, 0)
	if err != nil {
		t.Fatalf("GetLogs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Message != "newer info" {
		t.Errorf("entries[0].Message = %q, want newest first", entries[0].Message)
	}
	if entries[1].Message != "older info" {
		t.Errorf("entries[1].Message = %q", entries[1].Message)
	}
}

func TestGetLogsMissingFile(t *testing.T) {
	l := &ZapLogger{filePath: t.TempDir() + "/never-written.log"}

	entries, err := l.GetLogs("", 100, 0)
	if err != nil {
		t.Fatalf("GetLogs: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}
