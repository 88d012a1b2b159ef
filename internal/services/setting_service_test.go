package services

import (
	"errors"
	"reflect"
	"testing"
)

func newTestSettingService() (SettingService, *fakeSettingRepo) {
	repo := newFakeSettingRepo()
	return NewSettingService(repo, &fakeDatabase{}, "main"), repo
}

func TestSettingValuesRoundTripTyped(t *testing.T) {
	svc, _ := newTestSettingService()

	cases := []struct {
		key   string
		value interface{}
	}{
		{"enableBarcodeScanning", false},
		{"theme", "dark"},
		{"receiptFooter", map[string]interface{}{"line1": "Merci", "line2": "À bientôt"}},
	}
	for _, c := range cases {
		if err := svc.Set(c.key, c.value); err != nil {
			t.Fatalf("set %q failed: %v", c.key, err)
		}
		got, err := svc.Get(c.key)
		if err != nil {
			t.Fatalf("get %q failed: %v", c.key, err)
		}
		if !reflect.DeepEqual(got, c.value) {
			t.Fatalf("round trip %q: got %#v, want %#v", c.key, got, c.value)
		}
	}
}

func TestGetAllMergesDefaults(t *testing.T) {
	svc, _ := newTestSettingService()

	if err := svc.Set(SettingCurrentStore, "depot"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	values, err := svc.GetAll()
	if err != nil {
		t.Fatalf("get all failed: %v", err)
	}
	if values[SettingCurrentStore] != "depot" {
		t.Fatalf("currentStore = %v, want stored value depot", values[SettingCurrentStore])
	}
	if values[SettingDefaultStore] != "main" {
		t.Fatalf("defaultStore = %v, want default main", values[SettingDefaultStore])
	}
	if values[SettingBarcodeScanning] != true || values[SettingProfitMargins] != true {
		t.Fatalf("boolean defaults missing: %v", values)
	}
}

func TestGetFallsBackToReservedDefaults(t *testing.T) {
	svc, _ := newTestSettingService()

	value, err := svc.Get(SettingProfitMargins)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != true {
		t.Fatalf("showProfitMargins default = %v, want true", value)
	}

	if _, err := svc.Get("inconnue"); !errors.Is(err, ErrSettingNotFound) {
		t.Fatalf("expected ErrSettingNotFound, got %v", err)
	}
}

func TestSetMultipleWritesEveryKeyInOneTransaction(t *testing.T) {
	repo := newFakeSettingRepo()
	db := &fakeDatabase{}
	svc := NewSettingService(repo, db, "main")

	err := svc.SetMultiple(map[string]interface{}{
		"taxe":   20.0,
		"devise": "MAD",
	})
	if err != nil {
		t.Fatalf("set multiple failed: %v", err)
	}
	if len(repo.settings) != 2 {
		t.Fatalf("stored settings = %d, want 2", len(repo.settings))
	}
	if tx := db.lastTx(); tx == nil || !tx.committed {
		t.Fatalf("batch was not committed in a transaction")
	}
}

func TestSetMultipleRollsBackWhenAnUpsertFails(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.failOn = "devise"
	db := &fakeDatabase{}
	svc := NewSettingService(repo, db, "main")

	err := svc.SetMultiple(map[string]interface{}{
		"taxe":   20.0,
		"devise": "MAD",
		"theme":  "dark",
	})
	if err == nil {
		t.Fatalf("expected an error from the failing upsert")
	}
	tx := db.lastTx()
	if tx == nil || tx.committed || !tx.rolledBack {
		t.Fatalf("failed batch was not rolled back")
	}
}

func TestDeleteSettingNotFound(t *testing.T) {
	svc, _ := newTestSettingService()

	if err := svc.Delete("inconnue"); !errors.Is(err, ErrSettingNotFound) {
		t.Fatalf("expected ErrSettingNotFound, got %v", err)
	}
}

func TestSetRequiresKey(t *testing.T) {
	svc, _ := newTestSettingService()

	if err := svc.Set("  ", "x"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
