package dto

type NextVideoResponse struct {
	VideoID            string `json:"video_id"`
	TikTokURL          string `json:"tiktok_url"`
	VideoLengthSeconds int    `json:"video_length_seconds"`
	IsPaid             bool   `json:"is_paid"`
	SessionID          string `json:"session_id"`
}

type WatchInput struct {
	WatchSeconds   int    `json:"watch_seconds" binding:"min=0"`
	LikeClicked    bool   `json:"like_clicked"`
	CommentClicked bool   `json:"comment_clicked"`
	SessionID      string `json:"session_id" binding:"required,uuid"`
}

type WatchResult struct {
	WatchCompleted  bool `json:"watch_completed"`
	PointsAwarded   int  `json:"points_awarded"`
	PointsPenalty   int  `json:"points_penalty,omitempty"`
	BalanceAfter    int  `json:"balance_after"`
	CooldownSeconds int  `json:"cooldown_seconds,omitempty"`
}

type SubmitVideoInput struct {
	TikTokURL string `json:"tiktok_url" binding:"required,url"`
}

type SubmitVideoResponse struct {
	VideoID         string `json:"video_id"`
	Status          string `json:"status"`
	RequiresPayment bool   `json:"requires_payment"`
}

type SubmissionStatus struct {
	Allowed              bool `json:"allowed"`
	RequiresPayment      bool `json:"requires_payment"`
	WaitRemainingSeconds int  `json:"wait_remaining_seconds,omitempty"`
	FreeSubmissionsLeft  int  `json:"free_submissions_left"`
}

type ActivateVideoInput struct {
	LengthSeconds int     `json:"length_seconds" binding:"required,min=1"`
	PriorityScore float64 `json:"priority_score"`
}
