package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/manav03panchal/alarmbook/internal/errors"
	"github.com/manav03panchal/alarmbook/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a database in a temp directory with the schema applied.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Options{Path: filepath.Join(t.TempDir(), DatabaseFile)})
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(context.Background()))
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRepo(t *testing.T) *AlarmRepo {
	t.Helper()
	return NewAlarmRepo(setupTestDB(t))
}

// seed saves the given alarms in order and returns them with ids assigned.
func seed(t *testing.T, repo *AlarmRepo, alarms ...*model.Alarm) []*model.Alarm {
	t.Helper()
	for _, a := range alarms {
		require.NoError(t, repo.Save(context.Background(), a))
	}
	return alarms
}

func fixtures() []*model.Alarm {
	return []*model.Alarm{
		{Time: "07:30", Days: "Daily", Description: "Wake up", IsActive: true},
		{Time: "06:00", Days: "Mon,Wed,Fri", Description: "Gym", IsActive: true},
		{Time: "22:15", Days: "Sun", Description: "Take out bins", IsActive: false},
		{Time: "12:00", Days: "Weekdays", Description: "", IsActive: false},
	}
}

func ids(alarms []*model.Alarm) []int64 {
	out := make([]int64, 0, len(alarms))
	for _, a := range alarms {
		out = append(out, a.ID)
	}
	return out
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpen(t *testing.T) {
	t.Run("creates_directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", DatabaseFile)
		db, err := Open(Options{Path: path})
		require.NoError(t, err)
		assert.Equal(t, path, db.Path())

		info, err := os.Stat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("empty_path_uses_default", func(t *testing.T) {
		assert.Contains(t, DefaultPath(), AppName)
		assert.Contains(t, DefaultPath(), DatabaseFile)
	})
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.EnsureSchema(ctx))
	require.NoError(t, db.EnsureSchema(ctx))

	repo := NewAlarmRepo(db)
	seed(t, repo, model.NewAlarm())
	require.NoError(t, db.EnsureSchema(ctx))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestExecReportsRowsAffected(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	res, err := db.Exec(ctx, "INSERT INTO alarms (time) VALUES (?)", "09:00")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.RowsAffected)
	assert.Equal(t, int64(1), res.LastInsertID)

	res, err = db.Exec(ctx, "UPDATE alarms SET days = ? WHERE id = ?", "Sat", 999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.RowsAffected)
}

func TestExecStatementError(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Exec(context.Background(), "INSERT INTO missing_table VALUES (1)")
	assert.Error(t, err)
}

func TestStorageAcceptsMalformedTime(t *testing.T) {
	repo := setupTestRepo(t)
	a := &model.Alarm{Time: "noon", Days: "whenever", IsActive: true}
	seed(t, repo, a)

	got, err := repo.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "noon", got.Time)
}

func TestNullColumnsScanAsEmpty(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	res, err := db.Exec(ctx, "INSERT INTO alarms (time) VALUES (?)", "05:00")
	require.NoError(t, err)

	got, err := NewAlarmRepo(db).Get(ctx, res.LastInsertID)
	require.NoError(t, err)
	assert.Empty(t, got.Days)
	assert.Empty(t, got.Description)
	assert.True(t, got.IsActive, "is_active defaults to true")
}

// =============================================================================
// AlarmRepo Tests
// =============================================================================

func TestSaveInsertAssignsID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	a := &model.Alarm{Time: "07:30", Days: "Daily", Description: "Wake up", IsActive: true}
	require.NoError(t, repo.Save(ctx, a))
	assert.NotZero(t, a.ID)

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	if diff := cmp.Diff(a, all[0]); diff != "" {
		t.Errorf("fetched alarm mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAssignsDistinctIDs(t *testing.T) {
	repo := setupTestRepo(t)
	alarms := seed(t, repo, fixtures()...)

	seen := map[int64]bool{}
	for _, a := range alarms {
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
	}
}

func TestSaveUpdateKeepsRowCount(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	alarms := seed(t, repo, fixtures()...)

	before, err := repo.Count(ctx)
	require.NoError(t, err)

	target := alarms[1]
	target.Time = "05:45"
	target.Days = "Tue,Thu"
	target.Description = "Early gym"
	target.IsActive = false
	require.NoError(t, repo.Save(ctx, target))

	after, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	got, err := repo.Get(ctx, target.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(target, got); diff != "" {
		t.Errorf("updated alarm mismatch (-want +got):\n%s", diff)
	}

	// Other rows are untouched.
	other, err := repo.Get(ctx, alarms[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Wake up", other.Description)
}

func TestSaveUpdateOfDeletedRowIsNoop(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	alarms := seed(t, repo, fixtures()...)

	gone := alarms[0].Clone()
	require.NoError(t, repo.Delete(ctx, alarms[0]))

	gone.Days = "Never"
	require.NoError(t, repo.Save(ctx, gone))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDelete(t *testing.T) {
	t.Run("removes_exactly_one_row", func(t *testing.T) {
		repo := setupTestRepo(t)
		ctx := context.Background()
		alarms := seed(t, repo, fixtures()...)

		require.NoError(t, repo.Delete(ctx, alarms[2]))

		all, err := repo.FetchAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{alarms[0].ID, alarms[1].ID, alarms[3].ID}, ids(all))
	})

	t.Run("unset_id_is_noop", func(t *testing.T) {
		repo := setupTestRepo(t)
		ctx := context.Background()
		seed(t, repo, fixtures()...)

		require.NoError(t, repo.Delete(ctx, model.NewAlarm()))
		require.NoError(t, repo.Delete(ctx, nil))

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})
}

func TestGet(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	alarms := seed(t, repo, fixtures()...)

	got, err := repo.Get(ctx, alarms[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "Take out bins", got.Description)
	assert.False(t, got.IsActive)

	_, err = repo.Get(ctx, 12345)
	assert.ErrorIs(t, err, errors.ErrAlarmNotFound)
}

func TestFetchAllOrder(t *testing.T) {
	repo := setupTestRepo(t)
	alarms := seed(t, repo, fixtures()...)

	all, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ids(alarms), ids(all))
}

func TestFetchAllEmpty(t *testing.T) {
	repo := setupTestRepo(t)

	all, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestSearch(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo, fixtures()...)

	t.Run("empty_text_equals_fetch_all", func(t *testing.T) {
		all, err := repo.FetchAll(ctx)
		require.NoError(t, err)
		found, err := repo.Search(ctx, "")
		require.NoError(t, err)
		if diff := cmp.Diff(all, found); diff != "" {
			t.Errorf("search(\"\") != fetch_all (-want +got):\n%s", diff)
		}
	})

	tests := []struct {
		name string
		text string
		want int
	}{
		{"by_time", "07:", 1},
		{"by_days", "Wed", 1},
		{"by_description", "bins", 1},
		{"case_insensitive_ascii", "GYM", 1},
		{"or_across_fields", "u", 2},
		{"no_match", "zzz", 0},
		{"percent_is_literal", "%", 0},
		{"underscore_is_literal", "_", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.Search(ctx, tt.text)
			require.NoError(t, err)
			assert.Len(t, found, tt.want)
			for _, a := range found {
				assert.True(t, containsFold(a.Time, tt.text) ||
					containsFold(a.Days, tt.text) ||
					containsFold(a.Description, tt.text),
					"%v does not contain %q", a, tt.text)
			}
		})
	}
}

func TestSearchOnlyReturnsMatches(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo, fixtures()...)

	found, err := repo.Search(ctx, "Daily")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Wake up", found[0].Description)

	found, err = repo.Search(ctx, "00")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, []string{"06:00", "12:00"}, []string{found[0].Time, found[1].Time})
}

func TestSearchEscapedWildcardMatchesLiteral(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo,
		&model.Alarm{Time: "08:00", Days: "Daily", Description: "100% awake", IsActive: true},
		&model.Alarm{Time: "09:00", Days: "Daily", Description: "snake_case", IsActive: true},
		&model.Alarm{Time: "10:00", Days: "Daily", Description: "plain", IsActive: true},
	)

	found, err := repo.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100% awake", found[0].Description)

	found, err = repo.Search(ctx, "_")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "snake_case", found[0].Description)
}

func TestFilterByStatusPartitions(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo, fixtures()...)

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	active, err := repo.FilterByStatus(ctx, true)
	require.NoError(t, err)
	inactive, err := repo.FilterByStatus(ctx, false)
	require.NoError(t, err)

	for _, a := range active {
		assert.True(t, a.IsActive)
	}
	for _, a := range inactive {
		assert.False(t, a.IsActive)
	}

	union := append(append([]*model.Alarm{}, active...), inactive...)
	byID := cmpopts.SortSlices(func(a, b *model.Alarm) bool { return a.ID < b.ID })
	if diff := cmp.Diff(all, union, byID); diff != "" {
		t.Errorf("active ∪ inactive != fetch_all (-want +got):\n%s", diff)
	}

	activeIDs := map[int64]bool{}
	for _, a := range active {
		activeIDs[a.ID] = true
	}
	for _, a := range inactive {
		assert.False(t, activeIDs[a.ID], "alarm %d in both subsets", a.ID)
	}
}

func TestListCombinesPredicates(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seed(t, repo, fixtures()...)

	active := true
	found, err := repo.List(ctx, AlarmQuery{Text: "u", Active: &active})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Wake up", found[0].Description)

	inactive := false
	found, err = repo.List(ctx, AlarmQuery{Text: "u", Active: &inactive})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Take out bins", found[0].Description)
}

// Create, edit and delete one alarm end to end.
func TestAlarmLifecycleScenario(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	a := &model.Alarm{Time: "07:30", Days: "Daily", Description: "Wake up", IsActive: true}
	require.NoError(t, repo.Save(ctx, a))
	id := a.ID
	require.NotZero(t, id)

	all, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)

	a.Days = "Mon,Wed,Fri"
	require.NoError(t, repo.Save(ctx, a))

	all, err = repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
	assert.Equal(t, "Mon,Wed,Fri", all[0].Days)

	require.NoError(t, repo.Delete(ctx, a))

	all, err = repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids(all), id)
}

func TestQueryErrorIsSystemError(t *testing.T) {
	db, err := Open(Options{Path: filepath.Join(t.TempDir(), DatabaseFile)})
	require.NoError(t, err)

	// No schema: the table does not exist.
	_, err = NewAlarmRepo(db).FetchAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))

	se, ok := errors.AsSystemError(err)
	require.True(t, ok)
	assert.Equal(t, "fetch_all", se.Op)
}

// =============================================================================
// Health Tests
// =============================================================================

func TestCheckIntegrity(t *testing.T) {
	db := setupTestDB(t)
	seed(t, NewAlarmRepo(db), fixtures()...)

	report, err := CheckIntegrity(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, report.Healthy)
	assert.Equal(t, 4, report.AlarmCount)
	assert.True(t, report.TablePresent)
	assert.Empty(t, report.Problems)
}

func TestCheckIntegrityFreshDatabase(t *testing.T) {
	db, err := Open(Options{Path: filepath.Join(t.TempDir(), DatabaseFile)})
	require.NoError(t, err)

	report, err := CheckIntegrity(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, report.Healthy)
	assert.False(t, report.TablePresent)
	assert.Zero(t, report.AlarmCount)

	// The check must not create the table.
	_, err = NewAlarmRepo(db).Count(context.Background())
	assert.Error(t, err)
}

func TestCheckIntegrityCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DatabaseFile)
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("not a sqlite database ", 200)), 0o644))

	db, err := Open(Options{Path: path})
	require.NoError(t, err)

	report, err := CheckIntegrity(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDatabaseCorrupted)
	assert.False(t, report.Healthy)
	assert.NotEmpty(t, report.Problems)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
