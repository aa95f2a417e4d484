package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/ctrail/internal/model"
)

func testSession(ts time.Time, meth model.Methodology) model.SessionMetadata {
	id := ts.Format(model.SessionIDFormat)
	return model.SessionMetadata{
		ID:               id,
		Timestamp:        ts,
		Project:          "demo",
		Methodology:      meth,
		WorkingDirectory: "/home/u/demo",
		Command:          "claude",
		LogFile:          "/logs/" + id + ".log",
		FeaturesWorkedOn: []string{},
	}
}

func TestOpenMetaMissingFile(t *testing.T) {
	store, err := OpenMeta(t.TempDir())
	if err != nil {
		t.Fatalf("OpenMeta: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}

func TestOpenMetaCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, MetadataFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := OpenMeta(dir); err == nil {
		t.Fatal("OpenMeta accepted corrupt metadata")
	}
}

func TestPutRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenMeta(dir)
	if err != nil {
		t.Fatalf("OpenMeta: %v", err)
	}

	sess := testSession(time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC), model.ContextDriven)
	energy := 3
	secs := int64(600)
	end := sess.Timestamp.Add(10 * time.Minute)
	sess.CreativeEnergy = &energy
	sess.DurationSecs = &secs
	sess.EndTime = &end
	sess.FeaturesWorkedOn = []string{"auth", "search"}

	if err := store.Put(sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	reopened, err := OpenMeta(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok := reopened.Get(sess.ID)
	if !ok {
		t.Fatalf("session %s not found after reopen", sess.ID)
	}
	if got.Project != sess.Project || got.Methodology != sess.Methodology {
		t.Errorf("got %+v, want %+v", got, sess)
	}
	if got.DurationSecs == nil || *got.DurationSecs != 600 {
		t.Errorf("DurationSecs = %v, want 600", got.DurationSecs)
	}
	if got.CreativeEnergy == nil || *got.CreativeEnergy != 3 {
		t.Errorf("CreativeEnergy = %v, want 3", got.CreativeEnergy)
	}
	if got.EndTime == nil || !got.EndTime.Equal(end) {
		t.Errorf("EndTime = %v, want %v", got.EndTime, end)
	}
	if len(got.FeaturesWorkedOn) != 2 || got.FeaturesWorkedOn[0] != "auth" {
		t.Errorf("FeaturesWorkedOn = %v", got.FeaturesWorkedOn)
	}
}

func TestPutOverwritesSameID(t *testing.T) {
	store, err := OpenMeta(t.TempDir())
	if err != nil {
		t.Fatalf("OpenMeta: %v", err)
	}

	sess := testSession(time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC), model.Unknown)
	if err := store.Put(sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	secs := int64(120)
	sess.DurationSecs = &secs
	if err := store.Put(sess); err != nil {
		t.Fatalf("Put update: %v", err)
	}

	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
	got, _ := store.Get(sess.ID)
	if got.DurationSecs == nil || *got.DurationSecs != 120 {
		t.Errorf("DurationSecs = %v, want 120", got.DurationSecs)
	}
}

func TestAllSortedByID(t *testing.T) {
	store, err := OpenMeta(t.TempDir())
	if err != nil {
		t.Fatalf("OpenMeta: %v", err)
	}

	base := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		if err := store.Put(testSession(base.Add(offset), model.Unknown)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	all := store.All()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Errorf("All() out of order: %s before %s", all[i-1].ID, all[i].ID)
		}
	}
}

func TestByMethodology(t *testing.T) {
	store, err := OpenMeta(t.TempDir())
	if err != nil {
		t.Fatalf("OpenMeta: %v", err)
	}

	base := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)
	if err := store.Put(testSession(base, model.ContextDriven)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(testSession(base.Add(time.Minute), model.CommandBased)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(testSession(base.Add(2*time.Minute), model.ContextDriven)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	groups := store.ByMethodology()
	if len(groups[model.ContextDriven]) != 2 {
		t.Errorf("context-driven group = %d sessions, want 2", len(groups[model.ContextDriven]))
	}
	if len(groups[model.CommandBased]) != 1 {
		t.Errorf("command-based group = %d sessions, want 1", len(groups[model.CommandBased]))
	}
	cd := groups[model.ContextDriven]
	if cd[0].ID >= cd[1].ID {
		t.Errorf("group out of id order: %s before %s", cd[0].ID, cd[1].ID)
	}
}
