package handler

import (
	"net/http"

	"github.com/0xFF-test/TikRewards/internal/dto"
	"github.com/0xFF-test/TikRewards/internal/repository"
	"github.com/0xFF-test/TikRewards/internal/service"
	"github.com/0xFF-test/TikRewards/pkg/response"
	"github.com/0xFF-test/TikRewards/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userRepo      repository.UserRepository
	watchService  service.WatchService
	followService service.FollowService
}

func NewProfileHandler(userRepo repository.UserRepository, watchService service.WatchService, followService service.FollowService) *ProfileHandler {
	return &ProfileHandler{
		userRepo:      userRepo,
		watchService:  watchService,
		followService: followService,
	}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), userID.String())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	cooldown, err := h.watchService.CooldownStatus(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		User: dto.AuthUser{
			ID:                  user.ID.String(),
			Email:               user.Email,
			Role:                user.Role,
			PointsBalance:       user.PointsBalance,
			FreeSubmissionsUsed: user.FreeSubmissionsUsed,
			OnboardingCompleted: user.OnboardingCompleted,
			FollowedMainAccount: user.FollowedMainAccount,
		},
		Cooldown: *cooldown,
	})
}

func (h *ProfileHandler) VerifyFollow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.FollowVerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.followService.VerifyFollow(c.Request.Context(), userID, input.TikTokUsername); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "follow verified"})
}
