package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/paybridge/nochex/utils"
)

// GET /payment/nochex/success
//
// Browser return path after a successful payment on the hosted page.
// This is a UI redirect only; settlement happens through the APC
// callback, not here.
func SuccessOrder(c *gin.Context) {
	utils.LogInfo("SuccessOrder called")

	settings, err := utils.GetPaymentSettings(storeScope(c))
	if err != nil {
		utils.LogError("Failed to load payment settings: %v", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	if settings.RedirectToTopicOnSuccess && settings.SuccessTopicName != "" {
		c.Redirect(http.StatusFound, "/t/"+settings.SuccessTopicName)
		return
	}

	redirectToOrderOrHome(c, settings.RedirectToOrderDetails)
}

// GET /payment/nochex/cancel
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")

	settings, err := utils.GetPaymentSettings(storeScope(c))
	if err != nil {
		utils.LogError("Failed to load payment settings: %v", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	redirectToOrderOrHome(c, settings.RedirectToOrderDetails)
}

func redirectToOrderOrHome(c *gin.Context, toOrderDetails bool) {
	if toOrderDetails {
		session := sessions.Default(c)
		if id, ok := session.Get(lastOrderKey).(uint); ok {
			c.Redirect(http.StatusFound, fmt.Sprintf("/orders/%d", id))
			return
		}
		utils.LogDebug("No order tracked in session, falling back to home")
	}
	c.Redirect(http.StatusFound, "/")
}
