package models

// MemberDayTasks groups one member's tasks within a single schedule bucket,
// sorted ascending by time of day.
type MemberDayTasks struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// ScheduleResponse is the bucketed team schedule for a view-mode date range.
// Buckets is keyed by "YYYY-MM-DD"; every date in Dates has an entry, empty
// days included.
type ScheduleResponse struct {
	View    string                      `json:"view"`
	Dates   []string                    `json:"dates"`
	Buckets map[string][]MemberDayTasks `json:"buckets"`
}
