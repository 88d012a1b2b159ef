package services

import (
	"errors"
	"testing"

	"quincaillerie_backend/internal/models"
	"quincaillerie_backend/internal/repositories"
)

func newTestStoreService(policy MainStorePolicy) (StoreService, *fakeStoreRepo, *fakeReportRepo) {
	storeRepo := newFakeStoreRepo()
	reportRepo := &fakeReportRepo{}
	return NewStoreService(storeRepo, reportRepo, &fakeDatabase{}, policy), storeRepo, reportRepo
}

func TestCreateStoreGeneratesIDWhenOmitted(t *testing.T) {
	svc, _, _ := newTestStoreService(MainPolicyAllowMultiple)

	store, err := svc.CreateStore(CreateStoreRequest{Name: "Dépôt Anfa"})
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	if store.ID == "" {
		t.Fatalf("expected a generated store id")
	}
}

func TestCreateStoreDuplicateID(t *testing.T) {
	svc, _, _ := newTestStoreService(MainPolicyAllowMultiple)

	id := "depot"
	if _, err := svc.CreateStore(CreateStoreRequest{ID: &id, Name: "Dépôt"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.CreateStore(CreateStoreRequest{ID: &id, Name: "Autre dépôt"})
	if !errors.Is(err, ErrStoreIDExists) {
		t.Fatalf("expected ErrStoreIDExists, got %v", err)
	}
}

func TestCreateStoreMainPolicyAllowMultiple(t *testing.T) {
	svc, _, _ := newTestStoreService(MainPolicyAllowMultiple)

	if _, err := svc.CreateStore(CreateStoreRequest{Name: "Magasin 1", IsMain: true}); err != nil {
		t.Fatalf("first main store failed: %v", err)
	}
	if _, err := svc.CreateStore(CreateStoreRequest{Name: "Magasin 2", IsMain: true}); err != nil {
		t.Fatalf("second main store should be allowed by default, got %v", err)
	}
}

func TestCreateStoreMainPolicyEnforceSingle(t *testing.T) {
	svc, _, _ := newTestStoreService(MainPolicyEnforceSingle)

	if _, err := svc.CreateStore(CreateStoreRequest{Name: "Magasin 1", IsMain: true}); err != nil {
		t.Fatalf("first main store failed: %v", err)
	}
	_, err := svc.CreateStore(CreateStoreRequest{Name: "Magasin 2", IsMain: true})
	if !errors.Is(err, ErrMainStoreConflict) {
		t.Fatalf("expected ErrMainStoreConflict, got %v", err)
	}
}

func TestUpdateStoreMainPolicyIgnoresSelf(t *testing.T) {
	svc, _, _ := newTestStoreService(MainPolicyEnforceSingle)

	id := "main"
	if _, err := svc.CreateStore(CreateStoreRequest{ID: &id, Name: "Principal", IsMain: true}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Re-flagging the same store as main must not conflict with itself.
	isMain := true
	if _, err := svc.UpdateStore("main", repositories.StoreUpdate{IsMain: &isMain}); err != nil {
		t.Fatalf("self update should pass, got %v", err)
	}
}

func TestDeleteStoreInUse(t *testing.T) {
	svc, storeRepo, _ := newTestStoreService(MainPolicyAllowMultiple)

	id := "depot"
	if _, err := svc.CreateStore(CreateStoreRequest{ID: &id, Name: "Dépôt"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	storeRepo.inUse["depot"] = true

	if err := svc.DeleteStore("depot"); !errors.Is(err, ErrStoreInUse) {
		t.Fatalf("expected ErrStoreInUse, got %v", err)
	}
}

func TestDeleteStoreNotFound(t *testing.T) {
	svc, _, _ := newTestStoreService(MainPolicyAllowMultiple)

	if err := svc.DeleteStore("nulle-part"); !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestStoreComparisonAvgGuardsAgainstZeroTransactions(t *testing.T) {
	svc, _, reportRepo := newTestStoreService(MainPolicyAllowMultiple)
	reportRepo.comparisons = []models.StoreComparison{
		{Store: models.Store{ID: "main", Name: "Principal"}, Revenue: 300, Transactions: 4},
		{Store: models.Store{ID: "depot", Name: "Dépôt"}, Revenue: 0, Transactions: 0},
	}

	comparisons, err := svc.StoreComparison()
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if comparisons[0].AvgTransaction != 75 {
		t.Fatalf("avgTransaction = %v, want 75", comparisons[0].AvgTransaction)
	}
	if comparisons[1].AvgTransaction != 0 {
		t.Fatalf("zero-sale store avgTransaction = %v, want 0", comparisons[1].AvgTransaction)
	}
}
