package model

import (
	"testing"
	"time"
)

func TestUploadTask_GetETAString(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{30, "00:30"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7323, "02:02:03"},
	}

	for _, test := range tests {
		task := &UploadTask{ETASec: test.etaSec}
		result := task.GetETAString()
		if result != test.expected {
			t.Errorf("GetETAString() with ETASec=%d = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestUploadTask_GetDisplayName(t *testing.T) {
	tests := []struct {
		fileName string
		filePath string
		key      string
		expected string
	}{
		{"My Trip.mp4", "/videos/My Trip #fun.mp4", "up/20240101/abc", "My Trip.mp4"},
		{"", "/videos/clip.mp4", "up/20240101/abc", "clip.mp4"},
		{"", `C:\videos\clip.mp4`, "up/20240101/abc", "clip.mp4"},
		{"", "", "up/20240101/abc-cover", "abc-cover"},
		{"", "", "", ""},
	}

	for _, test := range tests {
		task := &UploadTask{FileName: test.fileName, FilePath: test.filePath, Key: test.key}
		result := task.GetDisplayName()
		if result != test.expected {
			t.Errorf("GetDisplayName() with fileName='%s', filePath='%s', key='%s' = '%s', expected '%s'",
				test.fileName, test.filePath, test.key, result, test.expected)
		}
	}
}

func TestUploadTask_Creation(t *testing.T) {
	now := time.Now()
	task := &UploadTask{
		Key:       "up/20240101/abc",
		Status:    TaskStatusUploading,
		Progress:  42.9,
		Attempt:   1,
		ETASec:    -1,
		StartedAt: now,
	}

	if task.Status != TaskStatusUploading {
		t.Errorf("Expected status to be TaskStatusUploading, got %s", task.Status)
	}

	if task.Percent() != 42 {
		t.Errorf("Expected Percent() to be 42, got %d", task.Percent())
	}

	if !task.StartedAt.Equal(now) {
		t.Errorf("Expected StartedAt to be %v, got %v", now, task.StartedAt)
	}
}
