package user

type Permission string

const (
	// Attendance
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"

	// Leave
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveApprove Permission = "leave.approve"

	// Tasks
	PermissionTaskView   Permission = "task.view"
	PermissionTaskAssign Permission = "task.assign"
	PermissionTaskSplit  Permission = "task.split"
	PermissionTaskUpdate Permission = "task.update_progress"

	// Team and records
	PermissionTeamView    Permission = "team.view"
	PermissionRecordsView Permission = "records.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleHR: {
		PermissionLeaveApprove,
		PermissionTaskView,
		PermissionTaskAssign,
		PermissionTaskUpdate,
		PermissionTeamView,
		PermissionRecordsView,
	},
	RoleTeamLead: {
		PermissionLeaveApprove,
		PermissionTaskView,
		PermissionTaskAssign,
		PermissionTaskSplit,
		PermissionTaskUpdate,
		PermissionTeamView,
	},
	RoleEmployee: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionTaskView,
		PermissionTaskUpdate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
