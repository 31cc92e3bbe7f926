package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dryrunbot/dryrun/ledger"
)

func testDoc() *Document {
	doc := NewDocument()
	doc.Strategies["BTC_RSI"] = &ledger.Entry{
		Capital: 1040,
		ClosedTrades: []ledger.ClosedTrade{{
			Side:       ledger.Long,
			EntryPrice: 50000,
			ExitPrice:  51000,
			Size:       0.04,
			PnL:        40,
			PnLPct:     4,
			ExitReason: ledger.ExitTakeProfit,
		}},
	}
	doc.Strategies["ETH_CCI"] = &ledger.Entry{
		Capital: 1000,
		Positions: []ledger.Position{{
			Side:       ledger.Long,
			EntryPrice: 2000,
			EntryTime:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			Size:       1,
			StopLoss:   1980,
			TakeProfit: 2040,
			Status:     "open",
		}},
	}
	return doc
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStore(path)

	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	require.NoError(t, store.Save(testDoc(), now))

	loaded, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, loaded.Schema)
	assert.Equal(t, now, loaded.LastUpdated)
	require.Contains(t, loaded.Strategies, "BTC_RSI")
	require.Contains(t, loaded.Strategies, "ETH_CCI")

	btc := loaded.Strategies["BTC_RSI"]
	assert.InDelta(t, 1040, btc.Capital, 1e-9)
	require.Len(t, btc.ClosedTrades, 1)
	assert.Equal(t, ledger.ExitTakeProfit, btc.ClosedTrades[0].ExitReason)

	eth := loaded.Strategies["ETH_CCI"]
	require.NotNil(t, eth.Open())
	assert.InDelta(t, 1980, eth.Open().StopLoss, 1e-9)
}

func TestReservedKeysStayOutOfStrategies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStore(path)
	require.NoError(t, store.Save(testDoc(), time.Now()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var flat map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Contains(t, flat, "_schema")
	assert.Contains(t, flat, "_last_updated")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.NotContains(t, loaded.Strategies, "_schema")
	assert.NotContains(t, loaded.Strategies, "_last_updated")
}

func TestFreshEntrySerializesEmptyArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStore(path)

	doc := NewDocument()
	doc.Strategies["FRESH"] = &ledger.Entry{Capital: 1000}
	require.NoError(t, store.Save(doc, time.Now()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var flat map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &flat))
	require.Contains(t, flat, "FRESH")

	// External readers iterate these arrays; never-traded entries must
	// carry [] rather than null.
	var fresh struct {
		Capital      float64           `json:"capital"`
		Positions    []json.RawMessage `json:"positions"`
		ClosedTrades []json.RawMessage `json:"closed_trades"`
	}
	require.NoError(t, json.Unmarshal(flat["FRESH"], &fresh))
	assert.NotNil(t, fresh.Positions)
	assert.NotNil(t, fresh.ClosedTrades)
	assert.Empty(t, fresh.Positions)
	assert.Empty(t, fresh.ClosedTrades)
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	doc, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Strategies)
	assert.Equal(t, SchemaVersion, doc.Schema)
}

func TestLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "state.json"))
	require.NoError(t, store.Save(testDoc(), time.Now()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestMigrateCapital(t *testing.T) {
	doc := NewDocument()
	doc.Schema = ""
	doc.Strategies["BTC_RSI"] = &ledger.Entry{Capital: 1500}
	doc.Strategies["ETH_CCI"] = &ledger.Entry{Capital: 1470.555}
	doc.Strategies["SOL_CCI"] = &ledger.Entry{Capital: 900} // diverged, untouched

	names := []string{"BTC_RSI", "ETH_CCI", "SOL_CCI", "MISSING"}
	require.True(t, MigrateCapital(doc, names))

	assert.InDelta(t, 1000, doc.Strategies["BTC_RSI"].Capital, 1e-9)
	assert.InDelta(t, 970.56, doc.Strategies["ETH_CCI"].Capital, 1e-9)
	assert.InDelta(t, 900, doc.Strategies["SOL_CCI"].Capital, 1e-9)
	assert.Equal(t, SchemaVersion, doc.Schema)

	// Idempotent: the schema marker short-circuits a second run.
	assert.False(t, MigrateCapital(doc, names))
	assert.InDelta(t, 1000, doc.Strategies["BTC_RSI"].Capital, 1e-9)
}

func TestMigrateCapitalNothingToDo(t *testing.T) {
	doc := NewDocument()
	doc.Schema = ""
	doc.Strategies["BTC_RSI"] = &ledger.Entry{Capital: 1000}

	assert.False(t, MigrateCapital(doc, []string{"BTC_RSI"}))
	assert.Empty(t, doc.Schema)
}

func TestLockStaleTakeover(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.lock")
	now := time.Now()

	// A pid that cannot exist on Linux (beyond pid_max).
	stale, err := json.Marshal(lockInfo{PID: 99999999, StartedAt: now.Add(-time.Hour)})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, stale, 0o644))

	lock, err := AcquireLock(path, now)
	require.NoError(t, err)
	defer lock.Release()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var info lockInfo
	require.NoError(t, json.Unmarshal(data, &info))
	assert.Equal(t, os.Getpid(), info.PID)
}

func TestLockHeldByLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.lock")
	now := time.Now()

	held, err := json.Marshal(lockInfo{PID: os.Getpid(), StartedAt: now})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, held, 0o644))

	_, err = AcquireLock(path, now)
	assert.Error(t, err)
}

func TestLockGarbageFileTakenOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.lock")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	lock, err := AcquireLock(path, time.Now())
	require.NoError(t, err)
	require.NoError(t, lock.Release())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
