package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/warp/leave-engine/accrual"
	"github.com/warp/leave-engine/api"
	"github.com/warp/leave-engine/store/sqlite"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := zerolog.Nop()
	handler := api.NewHandler(store, accrual.NewRegistry(log))
	return api.NewRouter(handler, &log)
}

// do runs one request against the router and decodes the JSON response
// into out (when out is non-nil).
func do(t *testing.T, router http.Handler, method, path string, body, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if out != nil && rr.Body.Len() > 0 {
		if err := json.NewDecoder(rr.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return rr.Code
}

func saveProfile(t *testing.T, router http.Handler, hireDate string) {
	t.Helper()
	code := do(t, router, http.MethodPut, "/api/profile", map[string]any{
		"hire_date": hireDate,
	}, nil)
	if code != http.StatusOK {
		t.Fatalf("save profile: got status %d", code)
	}
}

func TestProfileLifecycle(t *testing.T) {
	router := newTestRouter(t)

	if code := do(t, router, http.MethodGet, "/api/profile", nil, nil); code != http.StatusNotFound {
		t.Fatalf("empty store: want 404, got %d", code)
	}

	// Loosely formatted dates are normalized before storage.
	var profile struct {
		HireDate        string `json:"hire_date"`
		WorkHoursPerDay int    `json:"work_hours_per_day"`
	}
	code := do(t, router, http.MethodPut, "/api/profile", map[string]any{
		"hire_date": "2023/1/1",
	}, &profile)
	if code != http.StatusOK {
		t.Fatalf("save: want 200, got %d", code)
	}
	if profile.HireDate != "2023-01-01" {
		t.Errorf("hire_date: want 2023-01-01, got %s", profile.HireDate)
	}
	if profile.WorkHoursPerDay != 8 {
		t.Errorf("work_hours_per_day default: want 8, got %d", profile.WorkHoursPerDay)
	}

	if code := do(t, router, http.MethodGet, "/api/profile", nil, &profile); code != http.StatusOK {
		t.Fatalf("get: want 200, got %d", code)
	}
	if profile.HireDate != "2023-01-01" {
		t.Errorf("stored hire_date: got %s", profile.HireDate)
	}
}

func TestStoredBalance(t *testing.T) {
	router := newTestRouter(t)
	saveProfile(t, router, "2023-01-01")

	code := do(t, router, http.MethodPost, "/api/records", map[string]any{
		"date": "2024-02-01", "amount_hours": 40,
	}, nil)
	if code != http.StatusCreated {
		t.Fatalf("create record: want 201, got %d", code)
	}

	var result struct {
		AccruedDays     int    `json:"accrued_days"`
		RemainingHours  int    `json:"remaining_hours"`
		RemainingPretty string `json:"remaining_pretty"`
	}
	code = do(t, router, http.MethodGet, "/api/balance?as_of=2024-06-01", nil, &result)
	if code != http.StatusOK {
		t.Fatalf("balance: want 200, got %d", code)
	}
	if result.AccruedDays != 26 {
		t.Errorf("accrued_days: want 26, got %d", result.AccruedDays)
	}
	if result.RemainingHours != 168 {
		t.Errorf("remaining_hours: want 168, got %d", result.RemainingHours)
	}
	if result.RemainingPretty != "21일" {
		t.Errorf("remaining_pretty: want 21일, got %s", result.RemainingPretty)
	}
}

func TestAdHocBalanceValidation(t *testing.T) {
	router := newTestRouter(t)

	var errDTO struct {
		Error    string   `json:"error"`
		Messages []string `json:"messages"`
	}
	code := do(t, router, http.MethodPost, "/api/balance", map[string]any{
		"hire_date":  "not-a-date",
		"as_of_date": "2024-02-30",
	}, &errDTO)
	if code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", code)
	}
	// Both date problems reported at once.
	if len(errDTO.Messages) != 2 {
		t.Errorf("want 2 validation messages, got %v", errDTO.Messages)
	}
}

func TestYearBalanceWithCarry(t *testing.T) {
	router := newTestRouter(t)
	saveProfile(t, router, "2022-02-01")

	if code := do(t, router, http.MethodPut, "/api/years/2024/carry", map[string]any{
		"carry_days": 5,
	}, nil); code != http.StatusOK {
		t.Fatalf("set carry: got %d", code)
	}
	if code := do(t, router, http.MethodPost, "/api/records", map[string]any{
		"date": "2024-04-10", "amount_hours": 40,
	}, nil); code != http.StatusCreated {
		t.Fatalf("create record: got %d", code)
	}
	// A record outside 2024 must not count against it.
	if code := do(t, router, http.MethodPost, "/api/records", map[string]any{
		"date": "2023-06-01", "amount_hours": 8,
	}, nil); code != http.StatusCreated {
		t.Fatalf("create record: got %d", code)
	}

	var result struct {
		YearlyGrantDays int `json:"yearly_grant_days"`
		AvailableHours  int `json:"available_hours"`
		RemainingHours  int `json:"remaining_hours"`
	}
	code := do(t, router, http.MethodGet, "/api/years/2024/balance", nil, &result)
	if code != http.StatusOK {
		t.Fatalf("year balance: want 200, got %d", code)
	}
	if result.YearlyGrantDays != 15 {
		t.Errorf("yearly_grant_days: want 15, got %d", result.YearlyGrantDays)
	}
	if result.AvailableHours != 160 {
		t.Errorf("available_hours: want 160, got %d", result.AvailableHours)
	}
	if result.RemainingHours != 120 {
		t.Errorf("remaining_hours: want 120, got %d", result.RemainingHours)
	}
}

func TestCreateRecordFromPreset(t *testing.T) {
	router := newTestRouter(t)
	saveProfile(t, router, "2023-01-01")

	var rec struct {
		AmountHours int `json:"amount_hours"`
	}
	code := do(t, router, http.MethodPost, "/api/records", map[string]any{
		"date": "2024-03-04", "preset": "half_am",
	}, &rec)
	if code != http.StatusCreated {
		t.Fatalf("want 201, got %d", code)
	}
	if rec.AmountHours != 4 {
		t.Errorf("half day of an 8h profile: want 4, got %d", rec.AmountHours)
	}

	// Unknown preset without an amount is rejected.
	code = do(t, router, http.MethodPost, "/api/records", map[string]any{
		"date": "2024-03-05", "preset": "bogus",
	}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("bogus preset: want 400, got %d", code)
	}
}

func TestHolidayChangeRecomputesEventRecords(t *testing.T) {
	router := newTestRouter(t)

	// GIVEN: 5 calendar days of marriage leave from Friday 2024-05-03
	var created struct {
		ID          string `json:"id"`
		WorkingDays int    `json:"working_days"`
	}
	code := do(t, router, http.MethodPost, "/api/event-leaves", map[string]any{
		"event_type": "MARRIAGE_SELF", "date": "2024-05-03",
	}, &created)
	if code != http.StatusCreated {
		t.Fatalf("create event: want 201, got %d", code)
	}
	if created.WorkingDays != 3 {
		t.Fatalf("initial working_days: want 3, got %d", created.WorkingDays)
	}

	// WHEN: the Monday inside the span becomes a holiday
	code = do(t, router, http.MethodPost, "/api/holidays", map[string]any{
		"date": "2024-05-06", "name": "대체공휴일",
	}, nil)
	if code != http.StatusCreated {
		t.Fatalf("create holiday: want 201, got %d", code)
	}

	// THEN: the stored record's working days shrink
	var events []struct {
		ID          string `json:"id"`
		WorkingDays int    `json:"working_days"`
	}
	if code := do(t, router, http.MethodGet, "/api/event-leaves", nil, &events); code != http.StatusOK {
		t.Fatalf("list events: got %d", code)
	}
	if len(events) != 1 || events[0].WorkingDays != 2 {
		t.Fatalf("after holiday: want working_days 2, got %+v", events)
	}

	// AND: deleting the holiday restores the original translation
	if code := do(t, router, http.MethodDelete, "/api/holidays/2024-05-06", nil, nil); code != http.StatusNoContent {
		t.Fatalf("delete holiday: got %d", code)
	}
	if code := do(t, router, http.MethodGet, "/api/event-leaves", nil, &events); code != http.StatusOK {
		t.Fatalf("list events: got %d", code)
	}
	if events[0].WorkingDays != 3 {
		t.Fatalf("after holiday removal: want working_days 3, got %d", events[0].WorkingDays)
	}
}

func TestEventPreview(t *testing.T) {
	router := newTestRouter(t)

	var preview struct {
		WorkingDays int    `json:"working_days"`
		EndDate     string `json:"end_date"`
	}
	code := do(t, router, http.MethodPost, "/api/event-leaves/preview", map[string]any{
		"event_type": "DEATH_SIBLING", "start_date": "2024-05-03",
	}, &preview)
	if code != http.StatusOK {
		t.Fatalf("preview: want 200, got %d", code)
	}
	// Fri + Sat + Sun: one working day.
	if preview.WorkingDays != 1 {
		t.Errorf("working_days: want 1, got %d", preview.WorkingDays)
	}
	if preview.EndDate != "2024-05-05" {
		t.Errorf("end_date: want 2024-05-05, got %s", preview.EndDate)
	}

	code = do(t, router, http.MethodPost, "/api/event-leaves/preview", map[string]any{
		"event_type": "BIRTHDAY", "start_date": "2024-05-03",
	}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("unknown event type: want 400, got %d", code)
	}
}

func TestRegisterPolicyAndCalculate(t *testing.T) {
	router := newTestRouter(t)

	var cfg struct {
		Type string `json:"type"`
	}
	code := do(t, router, http.MethodPost, "/api/policies", map[string]any{
		"type": "GENEROUS",
		"tiers": []map[string]int{
			{"after_years": 0, "annual_days": 20},
		},
	}, &cfg)
	if code != http.StatusCreated {
		t.Fatalf("register policy: want 201, got %d", code)
	}
	if cfg.Type != "GENEROUS" {
		t.Fatalf("config type: got %s", cfg.Type)
	}

	var result struct {
		AccruedDays int `json:"accrued_days"`
	}
	code = do(t, router, http.MethodPost, "/api/balance", map[string]any{
		"hire_date":  "2023-01-01",
		"as_of_date": "2024-06-01",
		"policy":     map[string]string{"type": "GENEROUS"},
	}, &result)
	if code != http.StatusOK {
		t.Fatalf("balance: want 200, got %d", code)
	}
	if result.AccruedDays != 31 { // 11 monthly + 20 for year one
		t.Errorf("accrued_days: want 31, got %d", result.AccruedDays)
	}
}

func TestWorkdaysEndpoint(t *testing.T) {
	router := newTestRouter(t)

	var bd struct {
		CalendarDays int `json:"calendar_days"`
		WorkingDays  int `json:"working_days"`
		WeekendDays  int `json:"weekend_days"`
	}
	code := do(t, router, http.MethodGet, "/api/workdays?start=2024-01-12&days=7", nil, &bd)
	if code != http.StatusOK {
		t.Fatalf("workdays: want 200, got %d", code)
	}
	if bd.CalendarDays != 7 || bd.WorkingDays != 5 || bd.WeekendDays != 2 {
		t.Errorf("breakdown mismatch: %+v", bd)
	}

	if code := do(t, router, http.MethodGet, "/api/workdays?start=bad&days=7", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("bad start: want 400, got %d", code)
	}
}

func TestRecordNotFound(t *testing.T) {
	router := newTestRouter(t)

	if code := do(t, router, http.MethodDelete, "/api/records/ghost", nil, nil); code != http.StatusNotFound {
		t.Fatalf("delete missing record: want 404, got %d", code)
	}
	code := do(t, router, http.MethodPut, "/api/records/ghost", map[string]any{
		"date": "2024-01-01",
	}, nil)
	if code != http.StatusNotFound {
		t.Fatalf("update missing record: want 404, got %d", code)
	}
}
