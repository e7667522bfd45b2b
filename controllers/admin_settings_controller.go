package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/paybridge/nochex/config"
	"github.com/paybridge/nochex/gateway"
	"github.com/paybridge/nochex/models"
	"github.com/paybridge/nochex/utils"
)

// settingsModel is the admin-facing view of the gateway configuration.
type settingsModel struct {
	StoreID                  uint    `json:"store_id"`
	MerchantID               string  `json:"merchant_id"`
	UseTestMode              bool    `json:"use_test_mode"`
	UseCallback              bool    `json:"use_callback"`
	OrderDescription         string  `json:"order_description"`
	AdditionalFee            float64 `json:"additional_fee"`
	AdditionalFeePercentage  bool    `json:"additional_fee_percentage"`
	HideBillingDetails       bool    `json:"hide_billing_details"`
	RedirectToOrderDetails   bool    `json:"redirect_to_order_details"`
	RedirectToTopicOnSuccess bool    `json:"redirect_to_topic_on_success"`
	SuccessTopicName         string  `json:"success_topic_name"`
	OverrideForStore         bool    `json:"override_for_store"`
}

// GET /admin/settings?store_id=N
//
// Returns the effective configuration for a store scope. Store 0 is the
// all-stores default; OverrideForStore reports whether the scope has
// its own row.
func GetSettings(c *gin.Context) {
	utils.LogInfo("GetSettings called")
	storeID := storeScope(c)

	settings, err := utils.GetPaymentSettings(storeID)
	if err != nil {
		utils.LogError("Failed to load settings for store %d: %v", storeID, err)
		utils.InternalServerError(c, "Failed to load settings", err.Error())
		return
	}

	model := settingsModel{
		StoreID:                  storeID,
		MerchantID:               settings.MerchantID,
		UseTestMode:              settings.UseTestMode,
		UseCallback:              settings.UseCallback,
		OrderDescription:         settings.OrderDescription,
		AdditionalFee:            settings.AdditionalFee,
		AdditionalFeePercentage:  settings.AdditionalFeePercentage,
		HideBillingDetails:       settings.HideBillingDetails,
		RedirectToOrderDetails:   settings.RedirectToOrderDetails,
		RedirectToTopicOnSuccess: settings.RedirectToTopicOnSuccess,
		SuccessTopicName:         settings.SuccessTopicName,
		OverrideForStore:         settings.StoreID == storeID && storeID != 0,
	}

	utils.Success(c, "Settings retrieved successfully", gin.H{
		"settings": model,
		// The merchant enters this in their Nochex account for APC
		// delivery.
		"apc_url": config.StoreLocation() + "/" + gateway.CallbackPath,
	})
}

// PUT /admin/settings?store_id=N
//
// Updates the configuration for a store scope. For a non-zero store,
// override_for_store=false removes the store's row so it falls back to
// the defaults.
func UpdateSettings(c *gin.Context) {
	utils.LogInfo("UpdateSettings called")
	storeID := storeScope(c)

	var model settingsModel
	if err := c.ShouldBindJSON(&model); err != nil {
		utils.LogError("Invalid settings payload: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if storeID != 0 && !model.OverrideForStore {
		if err := config.DB.Where("store_id = ?", storeID).
			Delete(&models.PaymentSettings{}).Error; err != nil {
			utils.LogError("Failed to remove settings override for store %d: %v", storeID, err)
			utils.InternalServerError(c, "Failed to update settings", err.Error())
			return
		}
		utils.LogInfo("Removed settings override for store %d", storeID)
		GetSettings(c)
		return
	}

	var settings models.PaymentSettings
	err := config.DB.Where("store_id = ?", storeID).First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError("Failed to load settings for store %d: %v", storeID, err)
		utils.InternalServerError(c, "Failed to update settings", err.Error())
		return
	}
	settings.StoreID = storeID
	settings.MerchantID = model.MerchantID
	settings.UseTestMode = model.UseTestMode
	settings.UseCallback = model.UseCallback
	settings.OrderDescription = model.OrderDescription
	settings.AdditionalFee = model.AdditionalFee
	settings.AdditionalFeePercentage = model.AdditionalFeePercentage
	settings.HideBillingDetails = model.HideBillingDetails
	settings.RedirectToOrderDetails = model.RedirectToOrderDetails
	settings.RedirectToTopicOnSuccess = model.RedirectToTopicOnSuccess
	settings.SuccessTopicName = model.SuccessTopicName

	if err := config.DB.Save(&settings).Error; err != nil {
		utils.LogError("Failed to save settings for store %d: %v", storeID, err)
		utils.InternalServerError(c, "Failed to update settings", err.Error())
		return
	}

	utils.LogInfo("Settings updated for store %d", storeID)
	utils.Success(c, "Settings updated successfully", gin.H{"settings": model})
}
