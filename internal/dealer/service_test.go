package dealer_test

import (
	"context"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rlimports/autovitrine/internal/apperr"
	"github.com/rlimports/autovitrine/internal/catalog"
	"github.com/rlimports/autovitrine/internal/dealer"
	"github.com/rlimports/autovitrine/internal/models"
	"github.com/rlimports/autovitrine/internal/testutil"
)

// eventRecorder captures published change events for assertions.
type eventRecorder struct {
	kinds []string
	ids   []string
}

func (r *eventRecorder) record(kind, id string) {
	r.kinds = append(r.kinds, kind)
	r.ids = append(r.ids, id)
}

func newService(t *testing.T) (*dealer.Service, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	svc := dealer.NewService(testutil.TestStore(t), testutil.Logger(), rec.record)
	return svc, rec
}

func draft() dealer.VehicleDraft {
	return dealer.VehicleDraft{
		Make:   "Audi",
		Model:  "RS6 Avant",
		Year:   2024,
		Price:  980000,
		Status: models.VehicleAvailable,
	}
}

func TestCreateVehicle(t *testing.T) {
	svc, rec := newService(t)
	ctx := context.Background()

	v, err := svc.CreateVehicle(ctx, draft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.ID == "" || v.CreatedAt == 0 {
		t.Errorf("id and createdAt must be assigned, got %+v", v)
	}
	if v.Gallery == nil {
		t.Error("gallery must be materialized, not nil")
	}

	// Creation prepends, so the fresh vehicle leads the admin listing.
	vehicles, err := svc.ListVehicles(ctx, catalog.Query{Mode: catalog.ModeAdmin})
	if err != nil {
		t.Fatal(err)
	}
	if vehicles[0].ID != v.ID {
		t.Errorf("new vehicle not first: %+v", vehicles[0])
	}

	if len(rec.kinds) != 1 || rec.kinds[0] != "vehicle.created" || rec.ids[0] != v.ID {
		t.Errorf("events = %v/%v", rec.kinds, rec.ids)
	}
}

func TestCreateVehicleUniqueIDs(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	a, err := svc.CreateVehicle(ctx, draft())
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.CreateVehicle(ctx, draft())
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Errorf("duplicate id %q", a.ID)
	}
}

func TestCreateVehicleValidation(t *testing.T) {
	svc, rec := newService(t)

	bad := draft()
	bad.Make = ""
	bad.Price = 0
	_, err := svc.CreateVehicle(context.Background(), bad)
	var verr validation.Errors
	if !errors.As(err, &verr) {
		t.Fatalf("want validation errors, got %v", err)
	}
	if len(rec.kinds) != 0 {
		t.Errorf("no event on rejected create, got %v", rec.kinds)
	}
}

func TestUpdateVehiclePreservesIdentity(t *testing.T) {
	svc, rec := newService(t)
	ctx := context.Background()

	created, err := svc.CreateVehicle(ctx, draft())
	if err != nil {
		t.Fatal(err)
	}

	d := draft()
	d.Price = 950000
	d.Status = models.VehicleReserved
	updated, err := svc.UpdateVehicle(ctx, created.ID, d)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID || updated.CreatedAt != created.CreatedAt {
		t.Errorf("identity changed: %+v vs %+v", updated, created)
	}
	if updated.Price != 950000 || updated.Status != models.VehicleReserved {
		t.Errorf("draft fields not applied: %+v", updated)
	}

	got, err := svc.GetVehicle(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Price != 950000 {
		t.Errorf("update not persisted: %+v", got)
	}

	if rec.kinds[len(rec.kinds)-1] != "vehicle.updated" {
		t.Errorf("events = %v", rec.kinds)
	}
}

func TestUpdateVehicleNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.UpdateVehicle(context.Background(), "missing", draft())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteVehicleIdempotent(t *testing.T) {
	svc, rec := newService(t)
	ctx := context.Background()

	created, err := svc.CreateVehicle(ctx, draft())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteVehicle(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetVehicle(ctx, created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("vehicle still present after delete: %v", err)
	}

	events := len(rec.kinds)
	if err := svc.DeleteVehicle(ctx, created.ID); err != nil {
		t.Fatalf("second delete must be a no-op, got %v", err)
	}
	if len(rec.kinds) != events {
		t.Errorf("no-op delete published an event: %v", rec.kinds)
	}
}

func TestMarkLeadContacted(t *testing.T) {
	svc, rec := newService(t)
	ctx := context.Background()

	res, err := svc.SubmitFinancing(ctx, financingInput())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.MarkLeadContacted(ctx, res.Lead.ID); err != nil {
		t.Fatal(err)
	}
	leads, err := svc.ListLeads(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if leads[0].Status != models.LeadContacted {
		t.Errorf("status = %q, want contacted", leads[0].Status)
	}

	// Repeating the call must not publish again: the transition only
	// fires when the lead is still new.
	events := len(rec.kinds)
	if err := svc.MarkLeadContacted(ctx, res.Lead.ID); err != nil {
		t.Fatal(err)
	}
	if len(rec.kinds) != events {
		t.Errorf("repeated contact published an event: %v", rec.kinds)
	}

	// Absent ids are ignored.
	if err := svc.MarkLeadContacted(ctx, "missing"); err != nil {
		t.Errorf("absent id should not error: %v", err)
	}
}

func TestSaveSettingsPinsStoreName(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	in := models.Settings{
		StoreName:    "LOJA FALSA",
		Phone:        "11912345678",
		Address:      "Rua A, 10",
		PrimaryColor: "blue",
	}
	saved, err := svc.SaveSettings(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if saved.StoreName != models.CanonicalStoreName {
		t.Errorf("store name = %q, want %q", saved.StoreName, models.CanonicalStoreName)
	}
	if saved.Phone != "11912345678" || saved.PrimaryColor != "blue" {
		t.Errorf("other fields must survive: %+v", saved)
	}

	got, err := svc.Settings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != saved {
		t.Errorf("persisted %+v, want %+v", got, saved)
	}
}

func TestStats(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	// The seeded inventory carries 2 available, 1 reserved, 1 sold.
	if _, err := svc.SubmitFinancing(ctx, financingInput()); err != nil {
		t.Fatal(err)
	}
	resA, err := svc.SubmitFinancing(ctx, financingInput())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubmitSell(ctx, sellInput()); err != nil {
		t.Fatal(err)
	}
	if err := svc.MarkLeadContacted(ctx, resA.Lead.ID); err != nil {
		t.Fatal(err)
	}

	st, err := svc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := dealer.Stats{
		AvailableVehicles: 2,
		TotalVehicles:     4,
		FinancingLeads:    2,
		NewFinancingLeads: 1,
		SellLeads:         1,
		NewSellLeads:      1,
	}
	if *st != want {
		t.Errorf("stats = %+v, want %+v", *st, want)
	}
}
