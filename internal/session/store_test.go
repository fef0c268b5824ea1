package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/laporinfra/laporinfra/pkg/config"
	"github.com/laporinfra/laporinfra/pkg/database"
	"github.com/laporinfra/laporinfra/pkg/logger"
	"github.com/laporinfra/laporinfra/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samsudin() Reporter {
	return Reporter{
		ReporterName:   "Samsudin",
		PhoneNumber:    "081234567890",
		Role:           "Masyarakat Umum",
		Village:        "Ngawi",
		ReportDatetime: time.Date(2026, 10, 14, 9, 30, 0, 0, time.FixedZone("WIB", 7*3600)),
		Latitude:       "-7.4034",
		Longitude:      "111.4464",
	}
}

func TestReporter_Complete(t *testing.T) {
	r := samsudin()
	assert.True(t, r.Complete())
	assert.Empty(t, r.Missing())

	r.Village = "  "
	r.ReportDatetime = time.Time{}
	assert.False(t, r.Complete())
	assert.Equal(t, []string{"village", "report_datetime"}, r.Missing())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "reporter-session", Key(DefaultKey, ""))
	assert.Equal(t, "reporter-session:abc", Key(DefaultKey, "abc"))
}

// storeContract runs the same behaviour checks against any Store
func storeContract(t *testing.T, store Store) {
	ctx := context.Background()
	key := Key(DefaultKey, "contract")

	_, err := store.Load(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Require(ctx, store, key)
	assert.ErrorIs(t, err, ErrIdentityRequired)

	want := samsudin()
	require.NoError(t, store.Save(ctx, key, want))

	got, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.True(t, want.ReportDatetime.Equal(got.ReportDatetime), "date is rehydrated")
	got.ReportDatetime = want.ReportDatetime
	assert.Equal(t, want, got)

	updated := want
	updated.Village = "Paron"
	require.NoError(t, store.Save(ctx, key, updated))
	got, err = Require(ctx, store, key)
	require.NoError(t, err)
	assert.Equal(t, "Paron", got.Village)

	require.NoError(t, store.Clear(ctx, key))
	_, err = store.Load(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, store.Clear(ctx, key))
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestRequire_Incomplete(t *testing.T) {
	store := NewMemoryStore()
	r := samsudin()
	r.PhoneNumber = ""
	require.NoError(t, store.Save(context.Background(), DefaultKey, r))

	_, err := Require(context.Background(), store, DefaultKey)
	assert.ErrorIs(t, err, ErrIdentityRequired)
	assert.Contains(t, err.Error(), "phone_number")

	_, err = store.Load(context.Background(), DefaultKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStore_SQLite(t *testing.T) {
	cfg := &config.StoreConfig{Driver: config.StoreSQLite, DSN: filepath.Join(t.TempDir(), "session.db")}
	db, err := database.New(cfg, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, nil)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Migrate(context.Background()), "migrate is idempotent")

	storeContract(t, store)
}

func TestSQLStore_Mock(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	store := NewSQLStore(database.Wrap(mockDB.DB, logger.Nop()), nil)
	ctx := context.Background()

	mockDB.ExpectExec("INSERT INTO kv_store (store_key, value, updated_at)").
		WithArgs("reporter-session:s1", sqlmock.AnyArg(), testutil.AnyTime{}).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, store.Save(ctx, "reporter-session:s1", samsudin()))

	mockDB.ExpectQuery("SELECT value FROM kv_store WHERE store_key = ?").
		WithArgs("reporter-session:s1").
		WillReturnRows(testutil.MockRows("value").AddRow(
			`{"reporter_name":"Samsudin","phone_number":"081234567890","role":"Masyarakat Umum","village":"Ngawi","report_datetime":"2026-10-14T02:30:00Z","latitude":"-7.4034","longitude":"111.4464"}`,
		))
	got, err := store.Load(ctx, "reporter-session:s1")
	require.NoError(t, err)
	assert.Equal(t, "Samsudin", got.ReporterName)
	assert.Equal(t, time.Date(2026, 10, 14, 2, 30, 0, 0, time.UTC), got.ReportDatetime)

	mockDB.ExpectQuery("SELECT value FROM kv_store WHERE store_key = ?").
		WithArgs("reporter-session:missing").
		WillReturnRows(testutil.MockRows("value"))
	_, err = store.Load(ctx, "reporter-session:missing")
	assert.ErrorIs(t, err, ErrNotFound)

	mockDB.ExpectQuery("SELECT value FROM kv_store WHERE store_key = ?").
		WithArgs("reporter-session:bad").
		WillReturnRows(testutil.MockRows("value").AddRow("not json"))
	_, err = store.Load(ctx, "reporter-session:bad")
	assert.ErrorContains(t, err, "decode reporter session")

	mockDB.ExpectExec("DELETE FROM kv_store WHERE store_key = ?").
		WithArgs("reporter-session:s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Clear(ctx, "reporter-session:s1"))

	mockDB.ExpectationsWereMet(t)
}

func TestSQLStore_Postgres(t *testing.T) {
	testutil.SkipIfShort(t)
	ctx := testutil.DefaultTestContext(t)

	container, err := testutil.NewPostgresContainer(ctx, testutil.DefaultPostgresConfig())
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	defer container.Terminate(ctx)

	db, err := database.New(container.StoreConfig(DefaultKey), logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, nil)
	require.NoError(t, store.Migrate(ctx))
	storeContract(t, store)
}
