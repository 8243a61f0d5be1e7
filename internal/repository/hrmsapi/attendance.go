package hrmsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
)

const (
	// pageSize is the largest page the list endpoint accepts.
	pageSize = 100
	maxPages = 50
)

type attendanceRepositoryImpl struct {
	client *Client
}

func NewAttendanceRepository(client *Client) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{client: client}
}

type recordPayload struct {
	ID         string `json:"id"`
	MongoID    string `json:"_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func (p recordPayload) toRecord() attendance.Record {
	id := p.ID
	if id == "" {
		id = p.MongoID
	}
	return attendance.Record{
		ID:     id,
		Date:   p.Date,
		Status: attendance.ParseStatus(p.Status),
	}
}

type recordListPayload struct {
	Total int             `json:"total"`
	Data  []recordPayload `json:"data"`
}

// statsPayload accepts both half_days and half_day_days; servers differ.
type statsPayload struct {
	TotalDays      *float64 `json:"total_days"`
	PresentDays    *float64 `json:"present_days"`
	AbsentDays     *float64 `json:"absent_days"`
	HalfDays       *float64 `json:"half_days"`
	HalfDayDays    *float64 `json:"half_day_days"`
	LeaveDays      *float64 `json:"leave_days"`
	AttendanceRate *float64 `json:"attendance_rate"`
}

func (p statsPayload) toServerStats() *attendance.ServerStats {
	half := p.HalfDays
	if half == nil {
		half = p.HalfDayDays
	}
	return &attendance.ServerStats{
		TotalDays:      p.TotalDays,
		PresentDays:    p.PresentDays,
		AbsentDays:     p.AbsentDays,
		HalfDays:       half,
		LeaveDays:      p.LeaveDays,
		AttendanceRate: p.AttendanceRate,
	}
}

type markPayload struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
	MarkedBy   string  `json:"marked_by,omitempty"`
}

// ListRecords implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListRecords(ctx context.Context, query attendance.RecordQuery) ([]attendance.Record, error) {
	var records []attendance.Record

	for page := 0; page < maxPages; page++ {
		params := url.Values{}
		params.Set("employee_id", query.EmployeeID)
		params.Set("start_date", query.StartDate.String())
		params.Set("end_date", query.EndDate.String())
		params.Set("skip", strconv.Itoa(page*pageSize))
		params.Set("limit", strconv.Itoa(pageSize))

		var payload recordListPayload
		if err := r.client.do(ctx, http.MethodGet, "/api/v1/attendance", params, nil, &payload); err != nil {
			if errors.Is(err, errNotFound) {
				return records, nil
			}
			return nil, fmt.Errorf("failed to list attendance records: %w", err)
		}

		for _, item := range payload.Data {
			records = append(records, item.toRecord())
		}

		if len(payload.Data) < pageSize || len(records) >= payload.Total {
			break
		}
	}

	return records, nil
}

// GetStats implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetStats(ctx context.Context, query attendance.RecordQuery) (*attendance.ServerStats, error) {
	params := url.Values{}
	// Both spellings are sent; the stats endpoint has used each.
	params.Set("start_date", query.StartDate.String())
	params.Set("end_date", query.EndDate.String())
	params.Set("date_from", query.StartDate.String())
	params.Set("date_to", query.EndDate.String())

	var raw json.RawMessage
	path := "/api/v1/attendance/employee/" + url.PathEscape(query.EmployeeID) + "/stats"
	if err := r.client.do(ctx, http.MethodGet, path, params, nil, &raw); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("attendance stats: %w", employee.ErrEmployeeNotFound)
		}
		return nil, fmt.Errorf("failed to get attendance stats: %w", err)
	}

	var payload statsPayload
	if err := json.Unmarshal(unwrapData(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode attendance stats: %w", err)
	}

	return payload.toServerStats(), nil
}

// MarkAttendance implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Record, error) {
	body := markPayload{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     req.Status,
		Notes:      req.Notes,
		MarkedBy:   req.MarkedBy,
	}

	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodPost, "/api/v1/attendance", nil, body, &raw); err != nil {
		if errors.Is(err, errNotFound) {
			return attendance.Record{}, employee.ErrEmployeeNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	var payload recordPayload
	if err := json.Unmarshal(unwrapData(raw), &payload); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to decode marked attendance: %w", err)
	}

	return payload.toRecord(), nil
}
