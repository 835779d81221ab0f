package handler

import (
	"net/http"

	"wallet-settings/internal/models"
	"wallet-settings/internal/orchestrator"
	"wallet-settings/internal/permissions"
	"wallet-settings/internal/settings"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the session's current settings snapshot.
func (s *Server) GetSettings(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	respondOK(c, sess.Cache.Snapshot())
}

// UpdateSettings merges a partial settings object into the cache. No store
// write occurs.
func (s *Server) UpdateSettings(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	var patch settings.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request format"})
		return
	}
	sess.Orchestrator.UpdateOneSetting(patch)
	respondOK(c, sess.Cache.Snapshot())
}

// SetAutoLogout sets the auto-logout timer.
func (s *Server) SetAutoLogout(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	var req struct {
		Seconds int `json:"seconds" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request format"})
		return
	}
	if err := sess.Orchestrator.SetAutoLogoutTimeSeconds(c.Request.Context(), req.Seconds); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// SetDefaultFiat changes the default fiat currency, cascading into the
// spending limits.
func (s *Server) SetDefaultFiat(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request format"})
		return
	}
	result, err := sess.Orchestrator.SetDefaultFiat(c.Request.Context(), req.Code)
	if err != nil {
		// The result names which phase committed; partial application is
		// surfaced alongside the error.
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error(), "data": result})
		return
	}
	respondOK(c, result)
}

// SetSwapPluginID sets the preferred swap plugin.
func (s *Server) SetSwapPluginID(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	var req struct {
		PluginID string `json:"plugin_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request format"})
		return
	}
	if err := sess.Orchestrator.SetPreferredSwapPluginID(c.Request.Context(), req.PluginID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// SetSwapPluginType sets the preferred swap plugin type.
func (s *Server) SetSwapPluginType(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	var req struct {
		PluginType models.SwapPluginType `json:"plugin_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request format"})
		return
	}
	if err := sess.Orchestrator.SetPreferredSwapPluginType(c.Request.Context(), req.PluginType); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// SetDenomination sets one asset's display denomination.
func (s *Server) SetDenomination(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	var req struct {
		PluginID     string              `json:"plugin_id" binding:"required"`
		CurrencyCode string              `json:"currency_code" binding:"required"`
		Denomination models.Denomination `json:"denomination" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request format"})
		return
	}
	key := models.DenominationKey{PluginID: req.PluginID, CurrencyCode: req.CurrencyCode}
	if err := sess.Orchestrator.SetDenomination(c.Request.Context(), key, req.Denomination); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// SetDeveloperMode toggles developer mode.
func (s *Server) SetDeveloperMode(c *gin.Context) {
	s.setFlag(c, func(o *orchestrator.Orchestrator, on bool) error {
		return o.SetDeveloperMode(c.Request.Context(), on)
	})
}

// SetSpamFilter toggles the spam filter.
func (s *Server) SetSpamFilter(c *gin.Context) {
	s.setFlag(c, func(o *orchestrator.Orchestrator, on bool) error {
		return o.SetSpamFilter(c.Request.Context(), on)
	})
}

// SetTouchID toggles biometric login.
func (s *Server) SetTouchID(c *gin.Context) {
	s.setFlag(c, func(o *orchestrator.Orchestrator, on bool) error {
		return o.SetTouchIDEnabled(c.Request.Context(), on)
	})
}

// SetPinLogin toggles PIN login.
func (s *Server) SetPinLogin(c *gin.Context) {
	s.setFlag(c, func(o *orchestrator.Orchestrator, on bool) error {
		return o.SetPinLoginEnabled(c.Request.Context(), on)
	})
}

// setFlag handles the common shape of simple on/off settings.
func (s *Server) setFlag(c *gin.Context, op func(*orchestrator.Orchestrator, bool) error) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	var req struct {
		On bool `json:"on"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request format"})
		return
	}
	if err := op(sess.Orchestrator, req.On); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// SetContactsPermission toggles the app-level contacts setting.
func (s *Server) SetContactsPermission(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	var req struct {
		On     bool                     `json:"on"`
		Prompt permissions.PromptConfig `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request format"})
		return
	}
	if err := sess.Orchestrator.SetContactsPermission(c.Request.Context(), req.On, req.Prompt); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// ResolveOTPReset applies the user's decision on a pending two-factor reset.
func (s *Server) ResolveOTPReset(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	var req struct {
		Choice orchestrator.OTPChoice `json:"choice" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request format"})
		return
	}
	state, err := sess.Orchestrator.ResolveOTPReset(c.Request.Context(), req.Choice)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"state": state})
}

// UnlockSettings re-validates the password and clears the settings lock.
func (s *Server) UnlockSettings(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request format"})
		return
	}
	if err := sess.Orchestrator.UnlockSettings(c.Request.Context(), req.Password); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// RestoreWallets restores all archived or deleted wallets.
func (s *Server) RestoreWallets(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}
	report, err := sess.Orchestrator.RestoreWallets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error(), "data": report})
		return
	}
	respondOK(c, report)
}
