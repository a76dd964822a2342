package models

import "testing"

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("+91 98765-43210"); got != "919876543210" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizePhone("(900) 000 0001"); got != "9000000001" {
		t.Fatalf("got %q", got)
	}
}

func TestContactValid(t *testing.T) {
	if !(Contact{Name: "Mom", Phone: "9000000001"}).Valid() {
		t.Fatal("expected valid contact")
	}
	if (Contact{Name: "  ", Phone: "9000000001"}).Valid() {
		t.Fatal("blank name accepted")
	}
	if (Contact{Name: "Mom", Phone: "12345"}).Valid() {
		t.Fatal("short phone accepted")
	}
	if !(Contact{Name: "Mom", Phone: "90-0000-0001"}).Valid() {
		t.Fatal("formatted 10-digit phone rejected")
	}
}

func TestValidContactsFiltersAndCaps(t *testing.T) {
	in := []Contact{
		{Name: "Mom", Phone: "900 000 0001"},
		{Name: "", Phone: "9000000002"},
		{Name: "Dad", Phone: "9000000003"},
		{Name: "Priya", Phone: "9000000004"},
		{Name: "Extra", Phone: "9000000005"},
	}
	out := ValidContacts(in)
	if len(out) != MaxContacts {
		t.Fatalf("expected %d contacts, got %d", MaxContacts, len(out))
	}
	if out[0].Phone != "9000000001" {
		t.Fatalf("expected normalized phone, got %q", out[0].Phone)
	}
	for _, c := range out {
		if c.Name == "" {
			t.Fatal("invalid entry survived the filter")
		}
	}
}

func TestEmptyTripContext(t *testing.T) {
	trip := EmptyTripContext()
	if trip.DriverName != NotFound || trip.VehicleNumber != NotFound || trip.DriverPhone != NotFound {
		t.Fatalf("unexpected defaults %+v", trip)
	}
}
