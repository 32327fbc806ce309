package services

import (
	"context"
	"errors"
	"testing"

	"github.com/saktilink/edge-backend/internal/repos"
)

func TestTriggerSyncDisabled(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger()
	t.Setenv("ENABLE_CLOUD_SYNC", "false")

	svc := NewSystemService(db, log, repos.NewSystemMetricRepo(db, log))
	if err := svc.TriggerSync(context.Background()); !errors.Is(err, ErrSyncDisabled) {
		t.Fatalf("TriggerSync = %v, want ErrSyncDisabled", err)
	}
}

func TestTriggerSyncEnabledNeverReportsSuccess(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger()
	t.Setenv("ENABLE_CLOUD_SYNC", "true")
	t.Setenv("CLOUD_API_URL", "https://hub.example.org")

	svc := NewSystemService(db, log, repos.NewSystemMetricRepo(db, log))
	if err := svc.TriggerSync(context.Background()); !errors.Is(err, ErrSyncUnavailable) {
		t.Fatalf("TriggerSync = %v, want ErrSyncUnavailable", err)
	}

	status := svc.SyncStatus()
	if !status.Enabled {
		t.Error("SyncStatus().Enabled = false, want true")
	}
	if status.CloudURL != "https://hub.example.org" {
		t.Errorf("SyncStatus().CloudURL = %q", status.CloudURL)
	}
}
