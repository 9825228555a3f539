/*
handlers.go - HTTP handlers for the leave engine

PURPOSE:
  Exposes the leave engine over REST. Handlers parse/validate HTTP input,
  assemble complete snapshots from the store, delegate to the engine and
  serialize the results.

ENDPOINTS:
  Profile:
    GET    /api/profile                 Stored employee profile
    PUT    /api/profile                 Replace the profile

  Balances:
    GET    /api/balance                 Lifetime balance from stored state
    POST   /api/balance                 Lifetime balance from request body
    GET    /api/years/{year}/balance    Per-year remainder from stored state
    PUT    /api/years/{year}/carry      Set a year's carry-over days

  Usage records:
    GET    /api/records[?year=]         List usage records
    POST   /api/records                 Add a record (amount or preset)
    PUT    /api/records/{id}            Edit date/memo
    DELETE /api/records/{id}            Remove a record

  Holidays:
    GET    /api/holidays                List holidays
    POST   /api/holidays                Add one (recomputes event records)
    DELETE /api/holidays/{date}         Remove one (recomputes event records)

  Event leave:
    GET    /api/event-leaves/policies   Entitlement table
    POST   /api/event-leaves/preview    Working-day preview for an event
    GET    /api/event-leaves            List committed records
    POST   /api/event-leaves            Commit a record
    DELETE /api/event-leaves/{id}       Remove a record

  Policies:
    GET    /api/policies                Registered accrual policy types
    POST   /api/policies                Register a JSON tier-table policy

  Working days:
    GET    /api/workdays?start=&days=   Working-day breakdown for a span

ERROR HANDLING:
  400 carries the full validation message list; 404 for unknown ids;
  500 for storage failures. Negative balances are data, never an error.

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: routing and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/leave-engine/accrual"
	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/eventleave"
	"github.com/warp/leave-engine/factory"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	Store         *sqlite.Store
	Registry      *accrual.Registry
	Calc          *leave.Calculator
	PolicyFactory *factory.PolicyFactory
}

// NewHandler wires a handler to a store and a policy registry.
func NewHandler(store *sqlite.Store, registry *accrual.Registry) *Handler {
	return &Handler{
		Store:         store,
		Registry:      registry,
		Calc:          leave.NewCalculator(registry),
		PolicyFactory: factory.New(),
	}
}

// =============================================================================
// PROFILE HANDLERS
// =============================================================================

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, found, err := h.Store.GetProfile(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "no profile saved yet")
		return
	}
	respondJSON(w, http.StatusOK, profileDTO(p))
}

func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	hireDate, ok := calendar.NormalizeInput(req.HireDate)
	if !ok {
		respondError(w, http.StatusBadRequest, "hire_date is not a valid calendar date")
		return
	}
	whpd := req.WorkHoursPerDay
	if whpd == 0 {
		whpd = leave.DefaultWorkHoursPerDay
	}
	if whpd < 0 || whpd > 24 {
		respondError(w, http.StatusBadRequest, "work_hours_per_day must be in (0, 24]")
		return
	}
	policy := req.Policy
	if policy.Type == "" {
		policy.Type = accrual.DefaultPolicy
	}
	policyJSON, _ := json.Marshal(policy)

	p := sqlite.Profile{
		HireDate:         hireDate,
		WorkHoursPerDay:  whpd,
		PolicyConfigJSON: string(policyJSON),
	}
	if err := h.Store.SaveProfile(r.Context(), p); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, profileDTO(p))
}

// =============================================================================
// BALANCE HANDLERS
// =============================================================================

// GetBalance computes the lifetime balance from the stored profile and
// usage records. Optional ?as_of= defaults to today.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	p, found, err := h.Store.GetProfile(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "no profile saved yet")
		return
	}

	asOf := r.URL.Query().Get("as_of")
	if asOf == "" {
		asOf = time.Now().UTC().Format(calendar.DateLayout)
	}

	records, err := h.Store.ListUsageRecords(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	in := leave.Input{
		HireDate:        p.HireDate,
		AsOfDate:        asOf,
		WorkHoursPerDay: p.WorkHoursPerDay,
		Policy:          policyConfig(p),
		Records:         records,
	}
	result, err := h.Calc.Calculate(in)
	if err != nil {
		respondComputeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// CalculateBalance computes a lifetime balance from an ad-hoc snapshot in
// the request body, touching no stored state.
func (h *Handler) CalculateBalance(w http.ResponseWriter, r *http.Request) {
	var in leave.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.WorkHoursPerDay == 0 {
		in.WorkHoursPerDay = leave.DefaultWorkHoursPerDay
	}
	if in.Policy.Type == "" {
		in.Policy.Type = accrual.DefaultPolicy
	}
	result, err := h.Calc.Calculate(in)
	if err != nil {
		respondComputeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetYearBalance computes the per-year remainder from the stored snapshot.
func (h *Handler) GetYearBalance(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	snap, err := h.Store.YearSnapshot(r.Context(), year)
	if errors.Is(err, sqlite.ErrNotFound) {
		respondError(w, http.StatusNotFound, "no profile saved yet")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	in := leave.YearInput{
		Year:            year,
		HireDate:        snap.Profile.HireDate,
		CarryDays:       snap.CarryDays,
		WorkHoursPerDay: snap.Profile.WorkHoursPerDay,
		Records:         snap.Records,
	}
	result, err := h.Calc.CalculateYearRemain(in)
	if err != nil {
		respondComputeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// SetCarry stores a year's carried-over days.
func (h *Handler) SetCarry(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "year must be an integer")
		return
	}
	var req SetCarryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.CarryDays < 0 {
		respondError(w, http.StatusBadRequest, "carry_days must be non-negative")
		return
	}
	if err := h.Store.SetCarryDays(r.Context(), year, req.CarryDays); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"year": year, "carry_days": req.CarryDays})
}

// =============================================================================
// USAGE RECORD HANDLERS
// =============================================================================

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	var (
		records []leave.UsageRecord
		err     error
	)
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, convErr := strconv.Atoi(yearStr)
		if convErr != nil {
			respondError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		records, err = h.Store.ListUsageRecordsByYear(r.Context(), year)
	} else {
		records, err = h.Store.ListUsageRecords(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []leave.UsageRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	date, ok := calendar.NormalizeInput(req.Date)
	if !ok {
		respondError(w, http.StatusBadRequest, "date is not a valid calendar date")
		return
	}

	amount := req.AmountHours
	if amount == 0 && req.Preset != "" {
		whpd := leave.DefaultWorkHoursPerDay
		if p, found, err := h.Store.GetProfile(r.Context()); err == nil && found {
			whpd = p.WorkHoursPerDay
		}
		amount = leave.PresetHours(leave.Preset(req.Preset), whpd)
	}
	if amount <= 0 {
		respondError(w, http.StatusBadRequest, "amount_hours must be a positive integer (or give a known preset)")
		return
	}

	rec := leave.UsageRecord{
		ID:          uuid.NewString(),
		Date:        date,
		AmountHours: amount,
		Memo:        req.Memo,
		Tag:         req.Tag,
	}
	if err := h.Store.AddUsageRecord(r.Context(), rec); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	date, ok := calendar.NormalizeInput(req.Date)
	if !ok {
		respondError(w, http.StatusBadRequest, "date is not a valid calendar date")
		return
	}
	err := h.Store.UpdateUsageRecord(r.Context(), id, date, req.Memo)
	if errors.Is(err, sqlite.ErrNotFound) {
		respondError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id, "date": date})
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Store.DeleteUsageRecord(r.Context(), id)
	if errors.Is(err, sqlite.ErrNotFound) {
		respondError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if holidays == nil {
		holidays = []sqlite.Holiday{}
	}
	respondJSON(w, http.StatusOK, holidays)
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	date, ok := calendar.NormalizeInput(req.Date)
	if !ok {
		respondError(w, http.StatusBadRequest, "date is not a valid calendar date")
		return
	}
	if err := h.Store.AddHoliday(r.Context(), sqlite.Holiday{Date: date, Name: req.Name}); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.recomputeEventRecords(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, sqlite.Holiday{Date: date, Name: req.Name})
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	err := h.Store.DeleteHoliday(r.Context(), date)
	if errors.Is(err, sqlite.ErrNotFound) {
		respondError(w, http.StatusNotFound, "holiday not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.recomputeEventRecords(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recomputeEventRecords re-derives every event record's working days from
// the current holiday set. The entitlement (calendar days) never changes;
// its working-day translation does whenever holidays move.
func (h *Handler) recomputeEventRecords(ctx context.Context) error {
	holidays, err := h.holidaySet(ctx)
	if err != nil {
		return err
	}
	records, err := h.Store.ListEventRecords(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	if err := eventleave.RecomputeAll(records, holidays); err != nil {
		return err
	}
	return h.Store.UpdateEventWorkingDays(ctx, records)
}

func (h *Handler) holidaySet(ctx context.Context) (calendar.HolidaySet, error) {
	holidays, err := h.Store.ListHolidays(ctx)
	if err != nil {
		return nil, err
	}
	dates := make([]string, len(holidays))
	for i, hd := range holidays {
		dates[i] = hd.Date
	}
	return calendar.NewHolidaySet(dates...), nil
}

// =============================================================================
// EVENT LEAVE HANDLERS
// =============================================================================

func (h *Handler) ListEventPolicies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, eventleave.Policies())
}

func (h *Handler) PreviewEvent(w http.ResponseWriter, r *http.Request) {
	var req EventPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	holidays, err := h.holidaySet(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	preview, err := eventleave.Resolve(req.EventType, start, holidays)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, preview)
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListEventRecords(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []eventleave.Record{}
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	date, ok := calendar.NormalizeInput(req.Date)
	if !ok {
		respondError(w, http.StatusBadRequest, "date is not a valid calendar date")
		return
	}
	start, _ := calendar.ParseDate(date)
	holidays, err := h.holidaySet(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	preview, err := eventleave.Resolve(req.EventType, start, holidays)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := eventleave.Record{
		ID:           uuid.NewString(),
		Date:         date,
		EventType:    preview.EventType,
		Title:        preview.Title,
		CalendarDays: preview.CalendarDays,
		WorkingDays:  preview.WorkingDays,
		Memo:         req.Memo,
	}
	if err := h.Store.AddEventRecord(r.Context(), rec); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Store.DeleteEventRecord(r.Context(), id)
	if errors.Is(err, sqlite.ErrNotFound) {
		respondError(w, http.StatusNotFound, "event record not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// POLICY HANDLERS
// =============================================================================

func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"types": h.Registry.Types()})
}

// CreatePolicy registers a JSON tier-table policy at runtime. Registration
// is expected during startup/extension, before concurrent balance reads.
func (h *Handler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "cannot read body")
		return
	}
	cfg, err := h.PolicyFactory.RegisterFromJSON(h.Registry, body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, cfg)
}

// =============================================================================
// WORKING DAY HANDLERS
// =============================================================================

func (h *Handler) GetWorkdays(w http.ResponseWriter, r *http.Request) {
	start, err := calendar.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days < 0 {
		respondError(w, http.StatusBadRequest, "days must be a non-negative integer")
		return
	}
	holidays, err := h.holidaySet(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, calendar.WorkingDaysDetailed(start, days, holidays))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorDTO{Error: msg})
}

// respondComputeError maps engine failures: validation errors carry the
// full message list at 400, anything else is a 500.
func respondComputeError(w http.ResponseWriter, err error) {
	var verr *leave.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, ErrorDTO{
			Error:    "validation failed",
			Messages: verr.Messages,
		})
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

func profileDTO(p sqlite.Profile) ProfileDTO {
	return ProfileDTO{
		HireDate:        p.HireDate,
		WorkHoursPerDay: p.WorkHoursPerDay,
		Policy:          policyConfig(p),
	}
}

func policyConfig(p sqlite.Profile) accrual.Config {
	var cfg accrual.Config
	if err := json.Unmarshal([]byte(p.PolicyConfigJSON), &cfg); err != nil || cfg.Type == "" {
		return accrual.Config{Type: accrual.DefaultPolicy}
	}
	return cfg
}
