package utils

import (
	"errors"

	"gorm.io/gorm"

	"github.com/paybridge/nochex/config"
	"github.com/paybridge/nochex/models"
)

// GetPaymentSettings returns the gateway settings for a store, falling
// back to the all-stores defaults (store 0) when no override exists.
func GetPaymentSettings(storeID uint) (*models.PaymentSettings, error) {
	var settings models.PaymentSettings
	if storeID != 0 {
		err := config.DB.Where("store_id = ?", storeID).First(&settings).Error
		if err == nil {
			return &settings, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, WrapError(err, "failed to load payment settings")
		}
	}
	if err := config.DB.Where("store_id = 0").First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("payment settings not configured", err)
		}
		return nil, WrapError(err, "failed to load payment settings")
	}
	return &settings, nil
}

// EnsureDefaultSettings seeds the all-stores default configuration on
// first boot.
func EnsureDefaultSettings() error {
	var count int64
	if err := config.DB.Model(&models.PaymentSettings{}).
		Where("store_id = 0").Count(&count).Error; err != nil {
		return WrapError(err, "failed to check payment settings")
	}
	if count > 0 {
		return nil
	}
	LogInfo("Seeding default Nochex payment settings")
	return config.DB.Create(models.DefaultPaymentSettings()).Error
}
