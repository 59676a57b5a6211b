package models

// DashboardStats holds the aggregate counters shown on the landing view.
type DashboardStats struct {
	TotalClients      int64 `json:"total_clients"`
	TotalPrograms     int64 `json:"total_programs"`
	TotalEnrollments  int64 `json:"total_enrollments"`
	ActiveEnrollments int64 `json:"active_enrollments"`
}
