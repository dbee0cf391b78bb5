package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/lithoslabs/evidence"
	"github.com/lithoslabs/evidence/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testRecord(url string) *evidence.HighlightRecord {
	now := time.Now().UTC().Truncate(time.Second)
	return &evidence.HighlightRecord{
		ID:          "rec-1",
		DocumentURL: url,
		ProjectID:   "proj-1",
		ContentHash: "abc123",
		Highlights: []*evidence.Highlight{
			{
				ID:       "auto-npv-1-deadbeef",
				DataType: "npv",
				Quote:    "NPV of $485.3M",
				Areas:    []evidence.PixelRegion{{PageIndex: 11, Left: 10, Top: 20, Width: 30, Height: 2}},
				Page:     12,
			},
		},
		NumPages:      50,
		RelevantPages: []int{3, 12},
		ExtractedAt:   now,
		UpdatedAt:     now,
	}
}

func TestHighlightService_UpsertAndFind(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewHighlightService(db)
	ctx := context.Background()

	rec := testRecord("https://example.com/report.pdf")
	require.NoError(t, svc.UpsertHighlights(ctx, rec))

	got, err := svc.FindHighlightsByURL(ctx, "https://example.com/report.pdf")
	require.NoError(t, err)

	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.ProjectID, got.ProjectID)
	assert.Equal(t, rec.ContentHash, got.ContentHash)
	require.Len(t, got.Highlights, 1)
	assert.Equal(t, "NPV of $485.3M", got.Highlights[0].Quote)
	require.Len(t, got.Highlights[0].Areas, 1)
	assert.Equal(t, 11, got.Highlights[0].Areas[0].PageIndex)
	assert.Equal(t, []int{3, 12}, got.RelevantPages)
}

func TestHighlightService_UpsertReplacesByURL(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewHighlightService(db)
	ctx := context.Background()

	first := testRecord("https://example.com/report.pdf")
	require.NoError(t, svc.UpsertHighlights(ctx, first))

	second := testRecord("https://example.com/report.pdf")
	second.ID = "rec-2"
	second.ContentHash = "def456"
	second.Highlights = nil
	require.NoError(t, svc.UpsertHighlights(ctx, second))

	got, err := svc.FindHighlightsByURL(ctx, "https://example.com/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "rec-2", got.ID)
	assert.Equal(t, "def456", got.ContentHash)
	assert.Empty(t, got.Highlights)
}

func TestHighlightService_FindNotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewHighlightService(db)

	_, err := svc.FindHighlightsByURL(context.Background(), "https://example.com/missing.pdf")
	require.Error(t, err)
	assert.Equal(t, evidence.ENOTFOUND, evidence.ErrorCode(err))
}

func TestHighlightService_UpsertInvalid(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewHighlightService(db)

	err := svc.UpsertHighlights(context.Background(), &evidence.HighlightRecord{})
	require.Error(t, err)
	assert.Equal(t, evidence.EINVALID, evidence.ErrorCode(err))
}
