// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication; capability token links and login
	SecurityStaff                       // Any valid staff access token
	SecurityAdmin                       // Access token with the ADMIN role
)

// RouteSecurityConfig maps named HTTP routes to their required security level
var RouteSecurityConfig = map[string]SecurityLevel{
	// Health & auth - Public
	"Healthz": SecurityPublic,
	"Login":   SecurityPublic,

	// Responsible links - Public (capability token in path)
	"GetInterviewForResponsible":    SecurityPublic,
	"ConfirmInterviewByResponsible": SecurityPublic,
	"ModifyInterviewByResponsible":  SecurityPublic,

	// Candidate links - Public (capability token in path)
	"GetInterviewForCandidate":       SecurityPublic,
	"ConfirmInterviewByCandidate":    SecurityPublic,
	"RescheduleInterviewByCandidate": SecurityPublic,

	// Coordination - Admin
	"ScheduleInterview":          SecurityAdmin,
	"ApproveInterviewChange":     SecurityAdmin,
	"RejectInterviewChange":      SecurityAdmin,
	"AcceptCandidateReschedule":  SecurityAdmin,
	"DeclineCandidateReschedule": SecurityAdmin,
	"CancelInterview":            SecurityAdmin,

	// Read projections - Staff
	"GetInterview":                SecurityStaff,
	"ListUpcomingInterviews":      SecurityStaff,
	"ListInterviewsByCandidature": SecurityStaff,
	"ListInterviewsByJobOffer":    SecurityStaff,
	"ListInterviewsByUser":        SecurityStaff,

	// Notifications - Staff
	"ListNotifications":      SecurityStaff,
	"MarkNotificationAsRead": SecurityStaff,
}

// GetSecurityLevel returns the security level for a route name.
// Unknown routes default to the admin level.
func GetSecurityLevel(routeName string) SecurityLevel {
	if level, ok := RouteSecurityConfig[routeName]; ok {
		return level
	}
	return SecurityAdmin
}
