package dto

type CooldownStatus struct {
	OnCooldown              bool `json:"on_cooldown"`
	RemainingSeconds        int  `json:"remaining_seconds,omitempty"`
	VideosWatchedInSession  int  `json:"videos_watched_in_session"`
	CooldownReductionActive bool `json:"cooldown_reduction_active"`
}

type ProfileResponse struct {
	User     AuthUser       `json:"user"`
	Cooldown CooldownStatus `json:"cooldown"`
}

type FollowVerifyInput struct {
	TikTokUsername string `json:"tiktok_username" binding:"required"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Email         string `json:"email"`
	PointsBalance int    `json:"points_balance"`
}
