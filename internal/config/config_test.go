package config

import (
	"testing"
	"time"
)

func TestBuildAlertConfigDefaults(t *testing.T) {
	cfg := buildAlertConfig(AlertSettings{})
	if cfg.HoldDuration != 10*time.Second {
		t.Fatalf("hold duration default: %v", cfg.HoldDuration)
	}
	if cfg.CallGap != 7*time.Second {
		t.Fatalf("call gap default: %v", cfg.CallGap)
	}
	if cfg.TrackingInterval != 15*time.Second {
		t.Fatalf("tracking interval default: %v", cfg.TrackingInterval)
	}
	if cfg.InboxMaxCount != 20 || cfg.FailureWarnStreak != 3 {
		t.Fatalf("count defaults: %d %d", cfg.InboxMaxCount, cfg.FailureWarnStreak)
	}
}

func TestBuildAlertConfigOverrides(t *testing.T) {
	cfg := buildAlertConfig(AlertSettings{
		HoldSeconds:         3,
		CallGapSeconds:      5,
		InboxMaxCount:       50,
		TrackingLinkBaseURL: "https://track.example.com/live",
	})
	if cfg.HoldDuration != 3*time.Second {
		t.Fatalf("hold duration: %v", cfg.HoldDuration)
	}
	if cfg.CallGap != 5*time.Second {
		t.Fatalf("call gap: %v", cfg.CallGap)
	}
	if cfg.InboxMaxCount != 50 {
		t.Fatalf("inbox max: %d", cfg.InboxMaxCount)
	}
	if cfg.TrackingLinkBaseURL != "https://track.example.com/live" {
		t.Fatalf("tracking base: %q", cfg.TrackingLinkBaseURL)
	}
}
