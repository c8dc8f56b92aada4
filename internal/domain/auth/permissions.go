package auth

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

const (
	PermTimeClock       = "time.clock"
	PermTimeRead        = "time.read"
	PermTimeManage      = "time.manage"
	PermScheduleRead    = "schedule.read"
	PermScheduleWrite   = "schedule.write"
	PermRequestsSubmit  = "requests.submit"
	PermRequestsReview  = "requests.review"
	PermTimeOffSubmit   = "timeoff.submit"
	PermTimeOffReview   = "timeoff.review"
	PermPayrollRead     = "payroll.read"
	PermPayrollWrite    = "payroll.write"
	PermAllocationRead  = "allocation.read"
	PermAllocationWrite = "allocation.write"
	PermReportsRead     = "reports.read"
	PermAuditRead       = "audit.read"
)

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermTimeClock,
		PermScheduleRead,
		PermRequestsSubmit,
		PermTimeOffSubmit,
		PermAllocationRead,
	},
	RoleAdmin: {
		PermTimeClock,
		PermTimeRead,
		PermTimeManage,
		PermScheduleRead,
		PermScheduleWrite,
		PermRequestsSubmit,
		PermRequestsReview,
		PermTimeOffSubmit,
		PermTimeOffReview,
		PermPayrollRead,
		PermPayrollWrite,
		PermAllocationRead,
		PermAllocationWrite,
		PermReportsRead,
		PermAuditRead,
	},
}

func HasPermission(role, permission string) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
