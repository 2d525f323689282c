package nomis

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/nomiskit/pkg/integrations/nomisweb"
)

func TestCatalog_Datasets(t *testing.T) {
	f := seededTransport()
	f.structures[base+"def.sdmx.json?search=claimant"] = listingDoc(keyFamily("NM_7_1", "Claimant count by age"))
	c := newTestClient(f)
	ctx := context.Background()

	all, err := c.Catalog.Datasets(ctx, "")
	if err != nil {
		t.Fatalf("Datasets: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len = %d, want 2", len(all))
	}

	found, err := c.Catalog.Datasets(ctx, "claimant")
	if err != nil {
		t.Fatalf("Datasets(search): %v", err)
	}
	if len(found) != 1 || found[0].ID != "NM_7_1" {
		t.Errorf("search result = %+v", found)
	}
}

func TestCatalog_ListingMemoised(t *testing.T) {
	f := seededTransport()
	c := newTestClient(f)
	ctx := context.Background()

	for range 3 {
		if _, err := c.Catalog.Lookup(ctx, "NM_1_1"); err != nil {
			t.Fatal(err)
		}
	}
	if len(f.calls) != 1 {
		t.Errorf("calls = %v, want the listing once", f.calls)
	}
}

func TestCatalog_ListingIsCopied(t *testing.T) {
	f := seededTransport()
	c := newTestClient(f)
	ctx := context.Background()

	all, err := c.Catalog.Datasets(ctx, "")
	if err != nil {
		t.Fatalf("Datasets: %v", err)
	}
	all[0].ID = "CHANGED"
	all[0].Dimensions[0].Concept = "CHANGED"

	some, err := c.Catalog.Lookup(ctx, "NM_7_1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	some[0].Name = "CHANGED"

	again, err := c.Catalog.Lookup(ctx)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if again[0].ID != "NM_1_1" || again[0].Dimensions[0].Concept != "GEOGRAPHY" {
		t.Errorf("cached listing changed: %+v", again[0])
	}
	if again[1].Name != "Claimant count by age" {
		t.Errorf("cached name changed to %q", again[1].Name)
	}

	if _, err := c.Metadata.Metadata(ctx, "NM_1_1"); err != nil {
		t.Errorf("Metadata after caller edits: %v", err)
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := newTestClient(seededTransport())
	ctx := context.Background()

	got, err := c.Catalog.Lookup(ctx, "NM_7_1", "NM_404_1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(got) != 1 || got[0].ID != "NM_7_1" {
		t.Errorf("got %+v", got)
	}
	if n := len(got[0].Dimensions); n != 4 {
		t.Errorf("dimensions = %d, want 4", n)
	}

	all, _ := c.Catalog.Lookup(ctx)
	if len(all) != 2 {
		t.Errorf("Lookup() = %d datasets, want 2", len(all))
	}
}

func TestCatalog_Property(t *testing.T) {
	c := newTestClient(seededTransport())
	ctx := context.Background()

	tests := []struct {
		id, prop, want string
	}{
		{"NM_1_1", "name", "Jobseeker's Allowance"},
		{"NM_1_1", "description", "Jobseeker's Allowance description"},
		{"NM_1_1", "agency", "NOMIS"},
		{"NM_1_1", "idx", "NM_1_1"},
		{"NM_1_1", "colour", ""},
		{"NM_404_1", "name", ""},
		{"", "name", ""},
		{"NM_1_1", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id+"/"+tt.prop, func(t *testing.T) {
			got, err := c.Catalog.Property(ctx, tt.id, tt.prop)
			if err != nil {
				t.Fatalf("Property: %v", err)
			}
			if got != tt.want {
				t.Errorf("Property(%q, %q) = %q, want %q", tt.id, tt.prop, got, tt.want)
			}
		})
	}
}

func TestParseDatasets_MissingSections(t *testing.T) {
	got := parseDatasets(&nomisweb.Structure{})
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}

	kf := keyFamily("NM_2_1", "No description")
	kf.Description = nil
	got = parseDatasets(listingDoc(kf))
	if got[0].Description != "" {
		t.Errorf("description = %q, want empty", got[0].Description)
	}
}

func TestDescribeDatasets(t *testing.T) {
	var buf bytes.Buffer
	err := DescribeDatasets(&buf, []Dataset{{ID: "NM_1_1", Name: "JSA", Description: "Claimants"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "NM_1_1 - JSA: Claimants\n\n" {
		t.Errorf("got %q", got)
	}
}

func TestHelpURL(t *testing.T) {
	c := newTestClient(seededTransport())
	md, err := c.Metadata.Metadata(context.Background(), "NM_7_1")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := HelpURL(&buf, md); err != nil {
		t.Fatal(err)
	}
	want := "Dataset NM_7_1 (Claimant count by age) supports the following dimensions: geography, sex, age, item.\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
