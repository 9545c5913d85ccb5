package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"team-planner-backend/pkg/export"
	"team-planner-backend/pkg/middleware"
	"team-planner-backend/pkg/models"
	"team-planner-backend/pkg/services"
	"team-planner-backend/pkg/utils"
)

// ScheduleHandler serves the aggregated team calendar and its Excel export.
type ScheduleHandler struct {
	schedule *services.ScheduleService
	orgs     *services.OrgService
}

func NewScheduleHandler(schedule *services.ScheduleService, orgs *services.OrgService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, orgs: orgs}
}

// scheduleQuery resolves the view mode, selected date and member set shared
// by the JSON and export endpoints. Members come either from an explicit
// comma-separated members param or from an org_id roster.
func (h *ScheduleHandler) scheduleQuery(r *http.Request) (services.ViewMode, []time.Time, []string, error) {
	mode, err := services.ParseViewMode(r.URL.Query().Get("view"))
	if err != nil {
		return "", nil, nil, err
	}

	selected := time.Now()
	if d := r.URL.Query().Get("date"); d != "" {
		selected, err = time.ParseInLocation(services.DateLayout, d, time.Local)
		if err != nil {
			return "", nil, nil, &services.ValidationError{Field: "date", Reason: "date must be YYYY-MM-DD"}
		}
	}

	var members []string
	if raw := r.URL.Query().Get("members"); raw != "" {
		for _, m := range strings.Split(raw, ",") {
			if m = strings.TrimSpace(m); m != "" {
				members = append(members, m)
			}
		}
	} else if orgID := r.URL.Query().Get("org_id"); orgID != "" {
		org, err := h.orgs.Get(orgID)
		if err != nil {
			return "", nil, nil, err
		}
		members = org.Members
	}

	return mode, services.DateRange(mode, selected), members, nil
}

// GET /api/schedule?view=week&date=YYYY-MM-DD&members=a@x,b@y
// GET /api/schedule?view=month&org_id=...
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireUser(r.Context()); err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	mode, dates, members, err := h.scheduleQuery(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	buckets, err := h.schedule.BucketByDate(members, dates)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dateStrs := make([]string, len(dates))
	for i, d := range dates {
		dateStrs[i] = d.Format(services.DateLayout)
	}

	utils.WriteSuccessResponse(w, models.ScheduleResponse{
		View:    string(mode),
		Dates:   dateStrs,
		Buckets: buckets,
	})
}

// GET /api/schedule/export?view=week&date=YYYY-MM-DD&members=a@x,b@y
func (h *ScheduleHandler) Export(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireUser(r.Context()); err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	mode, dates, members, err := h.scheduleQuery(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	buckets, err := h.schedule.BucketByDate(members, dates)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dateStrs := make([]string, len(dates))
	for i, d := range dates {
		dateStrs[i] = d.Format(services.DateLayout)
	}

	workbook, err := export.ScheduleWorkbook(dateStrs, buckets)
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, "Failed to build workbook: "+err.Error())
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("schedule-%s-%s.xlsx", mode, dateStrs[0])
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := workbook.Write(w); err != nil {
		// Headers are gone by now; just record the broken download.
		utils.WriteInternalServerErrorResponse(w, "Failed to write workbook")
	}
}
