package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"opsboard/internal/core"
	"opsboard/internal/dataset/memory"
	"opsboard/internal/services"
)

// testClock pins day arithmetic to the sample dataset's period.
var testClock = time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv := NewServer(":0", memory.NewSample(), services.DefaultScoreConfig())
	srv.now = func() time.Time { return testClock }
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
	})
	return srv
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rr.Body.String())
	}
}

func TestEndpointsRespond(t *testing.T) {
	srv := newTestServer(t)

	paths := []string{
		"/api/dashboard", "/api/pipeline", "/api/ventures", "/api/studio",
		"/api/clients", "/api/finance", "/api/compliance", "/api/weekly",
		"/api/farmstead",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rr := get(t, srv, path)
			if rr.Code != http.StatusOK {
				t.Fatalf("GET %s = %d, want 200\nbody: %s", path, rr.Code, rr.Body.String())
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)
	rr := get(t, srv, "/api/dashboard")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body struct {
		Period string `json:"period"`
		Health struct {
			BD       int `json:"bd"`
			Ventures int `json:"ventures"`
			Clients  int `json:"clients"`
			Finance  int `json:"finance"`
			Admin    int `json:"admin"`
			Overall  int `json:"overall"`
		} `json:"health"`
		WeightedPipeline string `json:"weightedPipeline"`
		OpenDeals        int    `json:"openDeals"`
		AlertCount       int    `json:"alertCount"`
	}
	decode(t, rr, &body)

	if body.Period != "2026-01" {
		t.Errorf("period = %q", body.Period)
	}
	if body.Health.BD != 100 {
		t.Errorf("bd score = %d, want 100", body.Health.BD)
	}
	if body.Health.Ventures != 65 {
		t.Errorf("ventures score = %d, want 65", body.Health.Ventures)
	}
	if body.Health.Clients != 50 {
		t.Errorf("clients score = %d, want 50", body.Health.Clients)
	}
	if body.Health.Admin != 17 {
		t.Errorf("admin score = %d, want 17", body.Health.Admin)
	}
	if body.Health.Overall != 76 {
		t.Errorf("overall = %d, want 76", body.Health.Overall)
	}
	if body.WeightedPipeline != "R2.6M" {
		t.Errorf("weighted pipeline = %q, want R2.6M", body.WeightedPipeline)
	}
	if body.OpenDeals != 6 {
		t.Errorf("open deals = %d, want 6", body.OpenDeals)
	}
	// Overdue VAT201 plus EMP201 due within the week.
	if body.AlertCount != 2 {
		t.Errorf("alert count = %d, want 2", body.AlertCount)
	}
}

func TestPipelineColumns(t *testing.T) {
	srv := newTestServer(t)
	rr := get(t, srv, "/api/pipeline")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body struct {
		Columns []struct {
			Stage string `json:"stage"`
			Count int    `json:"count"`
			Total string `json:"total"`
			Deals []struct {
				Client string `json:"client"`
				Value  string `json:"value"`
				Owner  struct {
					Initials string `json:"initials"`
				} `json:"owner"`
			} `json:"deals"`
		} `json:"columns"`
		Other    []json.RawMessage `json:"other"`
		Weighted string            `json:"weighted"`
	}
	decode(t, rr, &body)

	if len(body.Columns) != len(core.DealStages) {
		t.Fatalf("columns = %d, want %d", len(body.Columns), len(core.DealStages))
	}
	for i, stage := range core.DealStages {
		if body.Columns[i].Stage != string(stage) {
			t.Errorf("column %d stage = %q, want %q", i, body.Columns[i].Stage, stage)
		}
	}

	proposal := body.Columns[2]
	if proposal.Count != 2 {
		t.Errorf("proposal count = %d, want 2", proposal.Count)
	}
	if proposal.Total != "R1.5M" {
		t.Errorf("proposal total = %q, want R1.5M", proposal.Total)
	}
	if proposal.Deals[0].Client != "IFC" {
		t.Errorf("first proposal deal = %q, want IFC", proposal.Deals[0].Client)
	}
	if proposal.Deals[0].Value != "R850K" {
		t.Errorf("IFC value = %q, want R850K", proposal.Deals[0].Value)
	}
	if proposal.Deals[0].Owner.Initials != "ZN" {
		t.Errorf("IFC owner initials = %q, want ZN", proposal.Deals[0].Owner.Initials)
	}

	// Quiet stages still render as empty columns.
	if contracting := body.Columns[4]; contracting.Count != 0 || len(contracting.Deals) != 0 {
		t.Errorf("contracting column not empty: %+v", contracting)
	}
	if len(body.Other) != 0 {
		t.Errorf("other bucket = %d deals, want 0", len(body.Other))
	}
	if body.Weighted != "R2.6M" {
		t.Errorf("weighted = %q, want R2.6M", body.Weighted)
	}
}

func TestStudioOverBudgetFlag(t *testing.T) {
	srv := newTestServer(t)
	rr := get(t, srv, "/api/studio")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body struct {
		Columns []struct {
			Stage    string `json:"stage"`
			Projects []struct {
				Project    string `json:"project"`
				HoursPct   int    `json:"hoursPct"`
				OverBudget bool   `json:"overBudget"`
			} `json:"projects"`
		} `json:"columns"`
	}
	decode(t, rr, &body)

	var found bool
	for _, col := range body.Columns {
		for _, p := range col.Projects {
			if p.Project != "VUT Procurement" {
				continue
			}
			found = true
			if p.HoursPct != 130 {
				t.Errorf("hours pct = %d, want 130", p.HoursPct)
			}
			if !p.OverBudget {
				t.Error("VUT Procurement not flagged over budget")
			}
		}
	}
	if !found {
		t.Fatal("VUT Procurement missing from studio board")
	}
}

func TestClientsRelativeLabels(t *testing.T) {
	srv := newTestServer(t)
	rr := get(t, srv, "/api/clients")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body struct {
		Buckets []struct {
			Status  string `json:"status"`
			Clients []struct {
				Name        string `json:"name"`
				LastContact string `json:"lastContact"`
			} `json:"clients"`
		} `json:"buckets"`
	}
	decode(t, rr, &body)

	if len(body.Buckets) != len(core.ClientStatuses) {
		t.Fatalf("buckets = %d, want %d", len(body.Buckets), len(core.ClientStatuses))
	}
	labels := map[string]string{}
	for _, b := range body.Buckets {
		for _, c := range b.Clients {
			labels[c.Name] = c.LastContact
		}
	}
	// 2026-01-28 is three days before the pinned clock.
	if got := labels["Gates Foundation"]; got != "3d ago" {
		t.Errorf("Gates Foundation last contact = %q, want 3d ago", got)
	}
	if got := labels["IBM"]; got != "2mo ago" {
		t.Errorf("IBM last contact = %q, want 2mo ago", got)
	}
}

func TestFinanceGauges(t *testing.T) {
	srv := newTestServer(t)
	rr := get(t, srv, "/api/finance")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body struct {
		Period  string `json:"period"`
		Revenue struct {
			Actual  string `json:"actual"`
			Target  string `json:"target"`
			Percent int    `json:"percent"`
		} `json:"revenue"`
		Cash struct {
			Percent int `json:"percent"`
		} `json:"cash"`
		Tax struct {
			Percent int `json:"percent"`
		} `json:"tax"`
		TaxOutstanding string `json:"taxOutstanding"`
		Progress       struct {
			Actual int `json:"actual"`
			Target int `json:"target"`
			Badge  struct {
				Label string `json:"label"`
			} `json:"badge"`
		} `json:"progress"`
	}
	decode(t, rr, &body)

	if body.Revenue.Actual != "R1.8M" || body.Revenue.Target != "R10.0M" {
		t.Errorf("revenue gauge = %q / %q", body.Revenue.Actual, body.Revenue.Target)
	}
	if body.Revenue.Percent != 18 {
		t.Errorf("revenue pct = %d, want 18", body.Revenue.Percent)
	}
	if body.Cash.Percent != 82 {
		t.Errorf("cash pct = %d, want 82", body.Cash.Percent)
	}
	if body.Tax.Percent != 100 {
		t.Errorf("tax pct = %d, want 100", body.Tax.Percent)
	}
	if body.TaxOutstanding != "R237K" {
		t.Errorf("tax outstanding = %q, want R237K", body.TaxOutstanding)
	}
	// January expectation is 8 percent; 18 actual is comfortably on track.
	if body.Progress.Target != 8 {
		t.Errorf("progress target = %d, want 8", body.Progress.Target)
	}
	if body.Progress.Badge.Label != "On Track" {
		t.Errorf("progress badge = %q, want On Track", body.Progress.Badge.Label)
	}
}

func TestComplianceOrdering(t *testing.T) {
	srv := newTestServer(t)
	rr := get(t, srv, "/api/compliance")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body struct {
		Categories []struct {
			Category string `json:"category"`
			Items    []struct {
				Item   string `json:"item"`
				Status struct {
					Label string `json:"label"`
				} `json:"status"`
			} `json:"items"`
		} `json:"categories"`
		Alerts []struct {
			Item string `json:"item"`
		} `json:"alerts"`
	}
	decode(t, rr, &body)

	if len(body.Categories) != len(core.ComplianceCategories) {
		t.Fatalf("categories = %d, want %d", len(body.Categories), len(core.ComplianceCategories))
	}
	var tax []string
	for _, cat := range body.Categories {
		if cat.Category != string(core.ComplianceTax) {
			continue
		}
		for _, i := range cat.Items {
			tax = append(tax, i.Item)
		}
	}
	// Overdue VAT201 sorts ahead of pending EMP201.
	if len(tax) != 2 || tax[0] != "VAT201 return" || tax[1] != "EMP201 PAYE" {
		t.Errorf("tax items = %v", tax)
	}

	if len(body.Alerts) != 2 {
		t.Fatalf("alerts = %d, want 2", len(body.Alerts))
	}
	if body.Alerts[0].Item != "VAT201 return" {
		t.Errorf("first alert = %q", body.Alerts[0].Item)
	}
}

func TestWeeklyAreas(t *testing.T) {
	srv := newTestServer(t)
	rr := get(t, srv, "/api/weekly")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body struct {
		Areas []struct {
			Area       string `json:"area"`
			Label      string `json:"label"`
			Count      int    `json:"count"`
			Activities []struct {
				Description string `json:"description"`
				Status      struct {
					Label string `json:"label"`
				} `json:"status"`
			} `json:"activities"`
		} `json:"areas"`
	}
	decode(t, rr, &body)

	if len(body.Areas) != len(core.FocusAreas) {
		t.Fatalf("areas = %d, want %d", len(body.Areas), len(core.FocusAreas))
	}
	byArea := map[string]int{}
	for _, a := range body.Areas {
		byArea[a.Area] = a.Count
		if a.Area == string(core.AreaPurposePlatform) && a.Label != "Purpose & Platform" {
			t.Errorf("area label = %q", a.Label)
		}
	}
	if byArea[string(core.AreaStewardship)] != 2 {
		t.Errorf("stewardship count = %d, want 2", byArea[string(core.AreaStewardship)])
	}
}

func TestProgressEndpoint(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantCode   int
		wantTarget int
		wantLabel  string
	}{
		{"on track", "/api/progress?actual=50&month=5", http.StatusOK, 50, "On Track"},
		{"attention", "/api/progress?actual=35&month=5", http.StatusOK, 50, "Attention"},
		{"at risk", "/api/progress?actual=10&month=5", http.StatusOK, 50, "At Risk"},
		{"defaults to current month", "/api/progress?actual=8", http.StatusOK, 8, "On Track"},
		{"missing actual", "/api/progress", http.StatusBadRequest, 0, ""},
		{"bad month", "/api/progress?actual=50&month=x", http.StatusBadRequest, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, srv, tt.target)
			if rr.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var body struct {
				Target int `json:"target"`
				Badge  struct {
					Label string `json:"label"`
				} `json:"badge"`
			}
			decode(t, rr, &body)
			if body.Target != tt.wantTarget {
				t.Errorf("target = %d, want %d", body.Target, tt.wantTarget)
			}
			if body.Badge.Label != tt.wantLabel {
				t.Errorf("badge = %q, want %q", body.Badge.Label, tt.wantLabel)
			}
		})
	}
}

func TestFarmstead(t *testing.T) {
	srv := newTestServer(t)
	rr := get(t, srv, "/api/farmstead")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body struct {
		Team []struct {
			Name      string `json:"name"`
			TopOfMind string `json:"topOfMind"`
			Updated   string `json:"updated"`
		} `json:"team"`
		MustConquer []struct {
			Title      string `json:"title"`
			LinkedGoal string `json:"linkedGoal"`
			Rallied    []struct {
				Initials string `json:"initials"`
			} `json:"rallied"`
		} `json:"mustConquer"`
		Wins []struct {
			Author struct {
				Name string `json:"name"`
			} `json:"author"`
			Posted string `json:"posted"`
			Claps  int    `json:"claps"`
		} `json:"wins"`
	}
	decode(t, rr, &body)

	if len(body.Team) != 4 {
		t.Fatalf("team = %d members, want 4", len(body.Team))
	}
	if body.Team[0].TopOfMind == "" || body.Team[0].Updated == "" {
		t.Errorf("first member missing top of mind: %+v", body.Team[0])
	}

	if len(body.MustConquer) != 3 {
		t.Fatalf("must conquer = %d, want 3", len(body.MustConquer))
	}
	first := body.MustConquer[0]
	if first.LinkedGoal != "Land two anchor clients" {
		t.Errorf("linked goal = %q", first.LinkedGoal)
	}
	if len(first.Rallied) != 2 || first.Rallied[0].Initials != "AL" {
		t.Errorf("rallied = %+v", first.Rallied)
	}
	// Third item has no linked goal.
	if body.MustConquer[2].LinkedGoal != "" {
		t.Errorf("unlinked goal rendered as %q", body.MustConquer[2].LinkedGoal)
	}

	if len(body.Wins) != 2 {
		t.Fatalf("wins = %d, want 2", len(body.Wins))
	}
	if body.Wins[0].Claps != 3 {
		t.Errorf("claps = %d, want 3", body.Wins[0].Claps)
	}
	if body.Wins[0].Posted != "3w ago" {
		t.Errorf("posted = %q, want 3w ago", body.Wins[0].Posted)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard", nil)
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
	if allow := rr.Header().Get("Allow"); allow != "GET" {
		t.Errorf("Allow = %q, want GET", allow)
	}
}

func TestSuspiciousRequestRejected(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("User-Agent", "sqlmap/1.7")
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

type failingReader struct{}

func (failingReader) ReadSnapshot(context.Context) (core.Snapshot, error) {
	return core.Snapshot{}, errors.New("backend down")
}

func TestReadinessReflectsBackend(t *testing.T) {
	healthy := newTestServer(t)
	if rr := get(t, healthy, "/readyz"); rr.Code != http.StatusOK {
		t.Errorf("healthy readyz = %d, want 200", rr.Code)
	}

	broken := NewServer(":0", failingReader{}, services.DefaultScoreConfig())
	t.Cleanup(func() { _ = broken.Shutdown(context.Background()) })
	if rr := get(t, broken, "/readyz"); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("broken readyz = %d, want 503", rr.Code)
	}
	if rr := get(t, broken, "/api/dashboard"); rr.Code != http.StatusBadGateway {
		t.Errorf("broken dashboard = %d, want 502", rr.Code)
	}
}

func TestSnapshotCaching(t *testing.T) {
	reads := 0
	srv := NewServer(":0", readerFunc(func(context.Context) (core.Snapshot, error) {
		reads++
		return memory.Sample(), nil
	}), services.DefaultScoreConfig())
	srv.now = func() time.Time { return testClock }
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	for i := 0; i < 3; i++ {
		if rr := get(t, srv, "/api/dashboard"); rr.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rr.Code)
		}
	}
	if reads != 1 {
		t.Errorf("backend reads = %d, want 1", reads)
	}
}

type readerFunc func(context.Context) (core.Snapshot, error)

func (f readerFunc) ReadSnapshot(ctx context.Context) (core.Snapshot, error) {
	return f(ctx)
}
