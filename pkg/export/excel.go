// Package export renders the bucketed team schedule as an Excel workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"team-planner-backend/pkg/models"
)

const scheduleSheet = "Schedule"

var scheduleHeader = []string{"Date", "Member", "Time", "Title", "Category", "Priority"}

// ScheduleWorkbook builds one row per (date, member, task) for the given
// date range. Dates keep their range order; empty days are skipped.
func ScheduleWorkbook(dates []string, buckets map[string][]models.MemberDayTasks) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(scheduleSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for col, title := range scheduleHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(scheduleSheet, cell, title); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, date := range dates {
		for _, member := range buckets[date] {
			for _, task := range member.Tasks {
				values := []interface{}{date, member.Email, task.Time, task.Title, string(task.Category), string(task.Priority)}
				for col, v := range values {
					cell, err := excelize.CoordinatesToCellName(col+1, row)
					if err != nil {
						return nil, err
					}
					if err := f.SetCellValue(scheduleSheet, cell, v); err != nil {
						return nil, err
					}
				}
				row++
			}
		}
	}

	return f, nil
}
