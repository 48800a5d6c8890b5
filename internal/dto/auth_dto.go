package dto

type LoginInput struct {
	Email string `json:"email" binding:"required,email"`
	// Password is only required for admin accounts.
	Password string `json:"password"`
}

type AuthUser struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	Role                string `json:"role"`
	PointsBalance       int    `json:"points_balance"`
	FreeSubmissionsUsed int    `json:"free_submissions_used"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
	FollowedMainAccount bool   `json:"followed_main_account"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
