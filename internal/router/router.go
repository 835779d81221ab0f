package router

import (
	"wallet-settings/internal/handler"
	"wallet-settings/internal/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes and middleware registered.
func NewRouter(serverHandler *handler.Server) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	router.GET("/health", serverHandler.Health)

	session := router.Group("/api/session")
	{
		session.POST("/login", serverHandler.Login)
		session.POST("/logout", serverHandler.Logout)
	}

	api := router.Group("/api")
	{
		api.GET("/settings", serverHandler.GetSettings)
		api.PUT("/settings", serverHandler.UpdateSettings)
		api.PUT("/settings/auto-logout", serverHandler.SetAutoLogout)
		api.PUT("/settings/default-fiat", serverHandler.SetDefaultFiat)
		api.PUT("/settings/swap-plugin-id", serverHandler.SetSwapPluginID)
		api.PUT("/settings/swap-plugin-type", serverHandler.SetSwapPluginType)
		api.PUT("/settings/denomination", serverHandler.SetDenomination)
		api.PUT("/settings/developer-mode", serverHandler.SetDeveloperMode)
		api.PUT("/settings/spam-filter", serverHandler.SetSpamFilter)
		api.PUT("/settings/contacts-permission", serverHandler.SetContactsPermission)
		api.PUT("/settings/touch-id", serverHandler.SetTouchID)
		api.PUT("/settings/pin-login", serverHandler.SetPinLogin)
		api.POST("/settings/otp-reset", serverHandler.ResolveOTPReset)
		api.POST("/settings/unlock", serverHandler.UnlockSettings)
		api.POST("/wallets/restore", serverHandler.RestoreWallets)
	}

	return router
}
