package entity

// ScreenName identifies a navigable destination
type ScreenName string

const (
	ScreenHome              ScreenName = "Home"
	ScreenProfile           ScreenName = "Profile"
	ScreenNotifications     ScreenName = "Notifications"
	ScreenSearch            ScreenName = "Search"
	ScreenCrewSchedule      ScreenName = "Crew Schedule"
	ScreenWellnessData      ScreenName = "Wellness Data"
	ScreenEmployeeData      ScreenName = "Employee Data"
	ScreenUserManuals       ScreenName = "User Manuals"
	ScreenPassengerServices ScreenName = "Passenger Services"
	ScreenCrewManagement    ScreenName = "Crew Management"
	ScreenDutyCalculator    ScreenName = "Duty Calculator"
	ScreenExpenseTracker    ScreenName = "Expense Tracker"
	ScreenHelpSupport       ScreenName = "Help & Support"
	ScreenSystemAnalytics   ScreenName = "System Analytics"
	ScreenAppSettings       ScreenName = "App Settings"
	ScreenSeeAll            ScreenName = "See all"
)

// NavItem is a catalog entry tagged with the roles allowed to see it
type NavItem struct {
	Name  ScreenName `json:"name"`
	Roles RoleSet    `json:"-"`
}

// VisibleTo reports whether role may see the item
func (n NavItem) VisibleTo(role Role) bool {
	return n.Roles.Has(role)
}

// Navigation is the resolved view model for one role
type Navigation struct {
	Main     []NavItem `json:"main"`
	Features []NavItem `json:"features"`
	Admin    []NavItem `json:"admin"`
	Support  *NavItem  `json:"support,omitempty"`
}
