package controllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/pratik-mahalle/flashalerts/pkg/alerts/ginalerts"
	m "github.com/pratik-mahalle/flashalerts/settings/models"
	u "github.com/pratik-mahalle/flashalerts/settings/utils"
)

// PasswordReminder is the persist key of the stale password warning.
const PasswordReminder = "security.password"

type SettingsController struct {
	mu       sync.Mutex
	profile  m.Profile
	account  m.AccountSettings
	security m.Security
}

func NewSettingsController() *SettingsController {
	return &SettingsController{
		profile: m.Profile{ID: 1, Username: "demo", Email: "demo@example.com"},
		account: m.AccountSettings{Language: "en", Timezone: "UTC", Theme: "system"},
	}
}

// Profile
func (s *SettingsController) GetProfile(c *gin.Context) {
	s.mu.Lock()
	profile := s.profile
	s.mu.Unlock()
	u.JSON(c, http.StatusOK, profile)
}

func (s *SettingsController) UpdateProfile(c *gin.Context) {
	var req m.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	if req.Username != nil {
		s.profile.Username = *req.Username
	}
	if req.FullName != nil {
		s.profile.FullName = req.FullName
	}
	profile := s.profile
	s.mu.Unlock()

	ginalerts.Bag(c).New().SetEscapedMessage("Profile updated").SetTypes("success").Dismiss()
	u.JSON(c, http.StatusOK, profile)
}

// SubmitProfile handles the HTML form and redirects back to the profile.
func (s *SettingsController) SubmitProfile(c *gin.Context) {
	username := c.PostForm("username")
	if username == "" {
		ginalerts.Bag(c).New().SetEscapedMessage("Username is required").SetTypes("danger")
		c.Redirect(http.StatusSeeOther, "/profile")
		return
	}

	s.mu.Lock()
	s.profile.Username = username
	s.mu.Unlock()

	ginalerts.Bag(c).New().SetEscapedMessage("Profile updated").SetTypes("success").Dismiss()
	c.Redirect(http.StatusSeeOther, "/profile")
}

// Account
func (s *SettingsController) GetAccountSettings(c *gin.Context) {
	s.mu.Lock()
	account := s.account
	s.mu.Unlock()
	u.JSON(c, http.StatusOK, account)
}

func (s *SettingsController) UpdateAccountSettings(c *gin.Context) {
	var req m.UpdateAccountSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	if req.Language != nil {
		s.account.Language = *req.Language
	}
	if req.Timezone != nil {
		s.account.Timezone = *req.Timezone
	}
	if req.Theme != nil {
		s.account.Theme = *req.Theme
	}
	account := s.account
	s.mu.Unlock()

	ginalerts.Bag(c).New().Trans("settings.saved", nil, account.Language).SetTypes("success")
	u.JSON(c, http.StatusOK, account)
}

// Security
func (s *SettingsController) GetSecurity(c *gin.Context) {
	s.mu.Lock()
	security := s.security
	s.mu.Unlock()

	if !security.PasswordChanged {
		ginalerts.Bag(c).New().
			SetEscapedMessage("Your password has never been changed").
			SetTypes("warning").
			PersistAs(PasswordReminder)
	}
	u.JSON(c, http.StatusOK, security)
}

func (s *SettingsController) ChangePassword(c *gin.Context) {
	var req m.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewPassword == "" {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	s.security.PasswordChanged = true
	s.mu.Unlock()

	bag := ginalerts.Bag(c)
	bag.Abandon(PasswordReminder)
	bag.New().SetEscapedMessage("Password changed").SetTypes("success")
	u.JSON(c, http.StatusOK, gin.H{"status": "changed"})
}
