package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	exportDomain "pf-loan-generator/internal/domain/export"
)

// openTestDB creates an in-memory sqlite DB with the exports table.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every new connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&exportDomain.Record{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeRecord(sessionID string, startedAt time.Time) *exportDomain.Record {
	return &exportDomain.Record{
		RecordID:  uuid.NewString(),
		SessionID: sessionID,
		Status:    exportDomain.StatusInProgress,
		StartedAt: startedAt,
	}
}

func TestExport_CreateAndGetByRecordID(t *testing.T) {
	repo := NewExportRepository(openTestDB(t))
	ctx := context.Background()

	rec := makeRecord("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", time.Now().UTC())
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByRecordID(ctx, rec.RecordID)
	if err != nil {
		t.Fatalf("GetByRecordID: %v", err)
	}
	if got.SessionID != rec.SessionID || got.Status != exportDomain.StatusInProgress {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.FinishedAt != nil {
		t.Errorf("FinishedAt should be empty for an in-flight export")
	}
}

func TestExport_SaveCompletes(t *testing.T) {
	repo := NewExportRepository(openTestDB(t))
	ctx := context.Background()

	rec := makeRecord("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", time.Now().UTC())
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	done := time.Now().UTC()
	rec.Status = exportDomain.StatusCompleted
	rec.RasterWidth, rec.RasterHeight = 1280, 1800
	rec.OffsetX, rec.OffsetY = 40, 40
	rec.RenderWidth, rec.RenderHeight = 515.28, 724.61
	rec.Bytes = 48213
	rec.FinishedAt = &done
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByRecordID(ctx, rec.RecordID)
	if err != nil {
		t.Fatalf("GetByRecordID: %v", err)
	}
	if got.Status != exportDomain.StatusCompleted || got.Bytes != 48213 || got.RasterWidth != 1280 {
		t.Errorf("record not updated: %+v", got)
	}
	if got.FinishedAt == nil {
		t.Errorf("FinishedAt not persisted")
	}
}

func TestExport_SaveFailure(t *testing.T) {
	repo := NewExportRepository(openTestDB(t))
	ctx := context.Background()

	rec := makeRecord("cccccccccccccccccccccccccccccccc", time.Now().UTC())
	_ = repo.Create(ctx, rec)
	rec.Status = exportDomain.StatusFailed
	rec.Error = "rasterize: target detached"
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, _ := repo.GetByRecordID(ctx, rec.RecordID)
	if got.Status != exportDomain.StatusFailed || got.Error != rec.Error {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestExport_GetByRecordID_NotFound(t *testing.T) {
	repo := NewExportRepository(openTestDB(t))

	_, err := repo.GetByRecordID(context.Background(), uuid.NewString())
	if !errors.Is(err, exportDomain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestExport_ListBySessionID(t *testing.T) {
	repo := NewExportRepository(openTestDB(t))
	ctx := context.Background()

	s1 := "dddddddddddddddddddddddddddddddd"
	now := time.Now().UTC()

	older := makeRecord(s1, now.Add(-2*time.Hour))
	newer := makeRecord(s1, now.Add(-1*time.Hour))
	other := makeRecord("eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", now)
	for _, r := range []*exportDomain.Record{older, newer, other} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListBySessionID(ctx, s1)
	if err != nil {
		t.Fatalf("ListBySessionID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].RecordID != newer.RecordID || got[1].RecordID != older.RecordID {
		t.Fatalf("records not newest first: %s, %s", got[0].RecordID, got[1].RecordID)
	}

	none, err := repo.ListBySessionID(ctx, "ffffffffffffffffffffffffffffffff")
	if err != nil || len(none) != 0 {
		t.Fatalf("want empty list, got %v, %v", none, err)
	}
}
