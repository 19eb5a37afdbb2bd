package service

import (
	"time"

	"elena-license-engine/internal/database"
	"elena-license-engine/internal/model"
)

// LogActivation records one engine operation in the audit trail.
// result is "success" or the validation error label shown to the user.
func LogActivation(licenseKey, action, result, machineID, ip, userAgent string) error {
	entry := &model.ActivationLog{
		LicenseKey: licenseKey,
		Action:     action,
		Result:     result,
		MachineID:  machineID,
		IPAddress:  ip,
		UserAgent:  userAgent,
		Timestamp:  time.Now(),
	}

	return database.DB.Create(entry).Error
}

// GetActivationLogs returns the audit trail, newest first.
func GetActivationLogs(page, pageSize int) ([]model.ActivationLog, int64, error) {
	var logs []model.ActivationLog
	var total int64

	db := database.DB

	if err := db.Model(&model.ActivationLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := db.Order("timestamp DESC").Offset(offset).Limit(pageSize).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// GetLicenseActivationLogs returns the trail for one license key.
func GetLicenseActivationLogs(licenseKey string, page, pageSize int) ([]model.ActivationLog, int64, error) {
	var logs []model.ActivationLog
	var total int64

	db := database.DB

	if err := db.Model(&model.ActivationLog{}).Where("license_key = ?", licenseKey).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := db.Where("license_key = ?", licenseKey).Order("timestamp DESC").Offset(offset).Limit(pageSize).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
