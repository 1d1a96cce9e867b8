package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vmunix/collectarr/internal/collections"
	"github.com/vmunix/collectarr/internal/config"
)

func TestResultLine(t *testing.T) {
	res := collections.Result{
		Name:    "90s Movies",
		Status:  collections.StatusSynced,
		Adds:    3,
		Removes: 1,
	}
	want := "  synced     90s Movies" + strings.Repeat(" ", 21) + "+3 -1"
	if got := resultLine(res); got != want {
		t.Errorf("resultLine() = %q, want %q", got, want)
	}
}

func TestResultLineCreated(t *testing.T) {
	res := collections.Result{
		Name:    "Unwatched",
		Status:  collections.StatusSynced,
		Created: true,
		Adds:    12,
	}
	got := resultLine(res)
	if !strings.HasSuffix(got, "+12 -0 (created)") {
		t.Errorf("resultLine() = %q, want created marker suffix", got)
	}
}

func TestResultLineError(t *testing.T) {
	res := collections.Result{
		Name:   "Broken",
		Status: collections.StatusFailed,
		Err:    errors.New("find collection: boom"),
	}
	got := resultLine(res)
	if !strings.HasPrefix(got, "  failed") {
		t.Errorf("resultLine() = %q, want failed status prefix", got)
	}
	if !strings.HasSuffix(got, "find collection: boom") {
		t.Errorf("resultLine() = %q, want error text suffix", got)
	}
	if strings.Contains(got, "+0 -0") {
		t.Errorf("resultLine() = %q, should not show add/remove counts on error", got)
	}
}

func TestReportToJSON(t *testing.T) {
	started := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	report := &collections.Report{
		Started:  started,
		Finished: started.Add(2500 * time.Millisecond),
		DryRun:   true,
		Results: []collections.Result{
			{Name: "Unwatched", Status: collections.StatusPlanned, Created: true, Desired: 12, Observed: 0, Adds: 12},
			{Name: "Broken", Status: collections.StatusFailed, Err: errors.New("boom")},
		},
	}

	got := reportToJSON(report)
	if got.DurationMS != 2500 {
		t.Errorf("DurationMS = %d, want 2500", got.DurationMS)
	}
	if !got.DryRun {
		t.Error("DryRun not carried over")
	}
	if got.Failed != 1 {
		t.Errorf("Failed = %d, want 1", got.Failed)
	}
	if len(got.Results) != 2 {
		t.Fatalf("Results count = %d, want 2", len(got.Results))
	}
	if got.Results[0].Status != "planned" || !got.Results[0].Created || got.Results[0].Adds != 12 {
		t.Errorf("first result = %+v, want planned/created/+12", got.Results[0])
	}
	if got.Results[0].Error != "" {
		t.Errorf("first result error = %q, want empty", got.Results[0].Error)
	}
	if got.Results[1].Error != "boom" {
		t.Errorf("second result error = %q, want %q", got.Results[1].Error, "boom")
	}
}

func syncTestConfig() *config.Config {
	return &config.Config{
		Collections: map[string]config.CollectionConfig{
			"Zebra": {From: "Movies", Query: "Played = false"},
			"Apple": {From: "Movies", Query: "ProductionYear > 2000", Scope: "movies"},
			"Mango": {From: "Shows", Query: "Played = true", Scope: "series"},
		},
		CollectionOrder: []string{"Zebra", "Apple", "Mango"},
	}
}

func TestDefinitionsKeepFileOrder(t *testing.T) {
	defs := definitions(syncTestConfig())
	if len(defs) != 3 {
		t.Fatalf("definitions count = %d, want 3", len(defs))
	}
	wantOrder := []string{"Zebra", "Apple", "Mango"}
	for i, name := range wantOrder {
		if defs[i].Name != name {
			t.Errorf("defs[%d].Name = %q, want %q", i, defs[i].Name, name)
		}
	}
	if defs[1].From != "Movies" || defs[1].Query != "ProductionYear > 2000" || defs[1].Scope != "movies" {
		t.Errorf("defs[1] = %+v, fields not carried over", defs[1])
	}
}

func TestSelectDefinitionsAll(t *testing.T) {
	defs, err := selectDefinitions(syncTestConfig(), nil)
	if err != nil {
		t.Fatalf("selectDefinitions() error = %v", err)
	}
	if len(defs) != 3 {
		t.Errorf("definitions count = %d, want 3", len(defs))
	}
}

func TestSelectDefinitionsSubset(t *testing.T) {
	defs, err := selectDefinitions(syncTestConfig(), []string{"Mango", "Zebra"})
	if err != nil {
		t.Fatalf("selectDefinitions() error = %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("definitions count = %d, want 2", len(defs))
	}
	// Requested order wins over file order.
	if defs[0].Name != "Mango" || defs[1].Name != "Zebra" {
		t.Errorf("selected order = [%s, %s], want [Mango, Zebra]", defs[0].Name, defs[1].Name)
	}
}

func TestSelectDefinitionsUnknownName(t *testing.T) {
	_, err := selectDefinitions(syncTestConfig(), []string{"Missing"})
	if err == nil {
		t.Fatal("selectDefinitions() expected error for unknown name")
	}
	if !strings.Contains(err.Error(), `"Missing"`) {
		t.Errorf("error = %q, want it to name the collection", err)
	}
}
