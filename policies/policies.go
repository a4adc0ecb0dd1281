package policies

import "github.com/volunteerhub/volunteer-app/models"

// Ownership predicates gating every mutating catalog/ledger operation.
// Callers must preload the referenced associations before checking.

// OrgOwnsOpportunity reports whether the user behind the opportunity's
// organization profile is userID. Requires Organization preloaded.
func OrgOwnsOpportunity(userID uint, opp *models.Opportunity) bool {
	return opp.Organization.UserID == userID
}

// VolunteerOwnsApplication reports whether the application belongs to the
// volunteer profile of userID. Requires Volunteer preloaded.
func VolunteerOwnsApplication(userID uint, app *models.Application) bool {
	return app.Volunteer.UserID == userID
}

// OrgOwnsApplication reports whether the application targets an opportunity
// owned by userID's organization. Requires Opportunity.Organization
// preloaded.
func OrgOwnsApplication(userID uint, app *models.Application) bool {
	return app.Opportunity.Organization.UserID == userID
}
