package users

type Role string

const (
	RoleOwner   Role = "owner"
	RoleClinic  Role = "clinic"
	RoleWelfare Role = "welfare"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at"`
}

// Action es un acceso directo del dashboard.
type Action struct {
	Title       string
	Description string
	Href        string
	Primary     bool
}

// Dashboard arma los accesos según el rol. Es sólo presentación:
// el backend vuelve a validar el rol en cada llamada.
func Dashboard(role Role) (string, []Action) {
	switch role {
	case RoleOwner:
		return "Book appointments and keep track of your visits.", []Action{
			{Title: "Find a Clinic", Description: "Search clinics and book a slot.", Href: "/clinics", Primary: true},
			{Title: "My Appointments", Description: "View, cancel or reschedule.", Href: "/my-appointments"},
			{Title: "Pet Services", Description: "Boarding, grooming, walking and more.", Href: "/services"},
		}
	case RoleClinic:
		return "Manage your clinics and appointments.", []Action{
			{Title: "Register Clinic", Description: "Add a new clinic to PetCare.", Href: "/clinics/new", Primary: true},
		}
	case RoleWelfare:
		return "Create and manage animal welfare reports.", []Action{
			{Title: "Create Report", Description: "Report welfare incidents.", Href: "/reports/new", Primary: true},
			{Title: "View Reports", Description: "Manage your reports.", Href: "/my-reports"},
		}
	case RoleAdmin:
		return "Manage users and system operations.", []Action{
			{Title: "Manage Reports", Description: "Review and update rescue reports.", Href: "/admin/reports", Primary: true},
		}
	}
	return "", nil
}
