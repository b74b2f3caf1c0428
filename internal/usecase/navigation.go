package usecase

import "crewlink-service/internal/domain/entity"

// Screens partitioned out of the feature grid
var (
	adminScreens = map[entity.ScreenName]bool{
		entity.ScreenSystemAnalytics: true,
		entity.ScreenAppSettings:     true,
	}
	supportScreen = entity.ScreenHelpSupport
	seeAllScreen  = entity.ScreenSeeAll
)

// DefaultMainNav is the bottom navigation catalog
func DefaultMainNav() []entity.NavItem {
	return []entity.NavItem{
		{Name: entity.ScreenHome, Roles: entity.AllRoleSet()},
		{Name: entity.ScreenExpenseTracker, Roles: entity.RoleSetOf(entity.RolePilot, entity.RoleCabinCrew)},
		{Name: entity.ScreenProfile, Roles: entity.AllRoleSet()},
	}
}

// DefaultCategories is the home screen feature catalog
func DefaultCategories() []entity.NavItem {
	return []entity.NavItem{
		{Name: entity.ScreenCrewSchedule, Roles: entity.RoleSetOf(entity.RolePilot, entity.RoleCabinCrew, entity.RoleAdmin)},
		{Name: entity.ScreenWellnessData, Roles: entity.RoleSetOf(entity.RolePilot, entity.RoleCabinCrew)},
		{Name: entity.ScreenEmployeeData, Roles: entity.RoleSetOf(entity.RolePilot, entity.RoleCabinCrew, entity.RoleGroundStaff)},
		{Name: entity.ScreenUserManuals, Roles: entity.AllRoleSet()},
		{Name: entity.ScreenPassengerServices, Roles: entity.RoleSetOf(entity.RoleCabinCrew, entity.RoleGroundStaff)},
		{Name: entity.ScreenCrewManagement, Roles: entity.RoleSetOf(entity.RoleAdmin)},
		{Name: entity.ScreenDutyCalculator, Roles: entity.RoleSetOf(entity.RolePilot, entity.RoleCabinCrew)},
		{Name: entity.ScreenHelpSupport, Roles: entity.AllRoleSet()},
		{Name: entity.ScreenSystemAnalytics, Roles: entity.RoleSetOf(entity.RoleAdmin)},
		{Name: entity.ScreenAppSettings, Roles: entity.RoleSetOf(entity.RoleAdmin)},
		{Name: entity.ScreenSeeAll, Roles: entity.AllRoleSet()},
	}
}

// filterVisible keeps catalog order, drops entries role may not see and
// drops repeated names after the first visible occurrence.
func filterVisible(catalog []entity.NavItem, role entity.Role) []entity.NavItem {
	seen := make(map[entity.ScreenName]bool, len(catalog))
	out := make([]entity.NavItem, 0, len(catalog))
	for _, item := range catalog {
		if seen[item.Name] || !item.VisibleTo(role) {
			continue
		}
		seen[item.Name] = true
		out = append(out, item)
	}
	return out
}

// ResolveMainNav returns the main nav entries visible to role
func ResolveMainNav(catalog []entity.NavItem, role entity.Role) []entity.NavItem {
	return filterVisible(catalog, role)
}

// VisibleCategories returns the feature categories visible to role, in catalog order
func VisibleCategories(catalog []entity.NavItem, role entity.Role) []entity.NavItem {
	return filterVisible(catalog, role)
}

// SeeAllCategories is the "See all" listing: every visible category except the catch-all
func SeeAllCategories(catalog []entity.NavItem, role entity.Role) []entity.NavItem {
	visible := filterVisible(catalog, role)
	out := visible[:0]
	for _, item := range visible {
		if item.Name != seeAllScreen {
			out = append(out, item)
		}
	}
	return out
}

// ResolveNavigation partitions the visible catalogs into the groups the
// dashboard renders. An entry lands in at most one group.
func ResolveNavigation(mainNav, categories []entity.NavItem, role entity.Role) entity.Navigation {
	nav := entity.Navigation{
		Main:     ResolveMainNav(mainNav, role),
		Features: []entity.NavItem{},
		Admin:    []entity.NavItem{},
	}

	for _, item := range VisibleCategories(categories, role) {
		switch {
		case adminScreens[item.Name]:
			if role == entity.RoleAdmin {
				nav.Admin = append(nav.Admin, item)
			}
		case item.Name == supportScreen:
			support := item
			nav.Support = &support
		case item.Name == seeAllScreen:
		default:
			nav.Features = append(nav.Features, item)
		}
	}

	return nav
}

// CanAccess reports whether role may open screen. Screens outside both
// catalogs (notifications, search) are open to everyone.
func CanAccess(mainNav, categories []entity.NavItem, role entity.Role, screen entity.ScreenName) bool {
	known := false
	for _, catalog := range [][]entity.NavItem{mainNav, categories} {
		for _, item := range catalog {
			if item.Name != screen {
				continue
			}
			if item.VisibleTo(role) {
				return true
			}
			known = true
		}
	}
	return !known
}
