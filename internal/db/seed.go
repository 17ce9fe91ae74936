package db

import (
	"yatube/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedGroups 首次启动时创建预设分组
func SeedGroups(conn *gorm.DB, log *zap.Logger) {
	var count int64
	conn.Model(&models.Group{}).Count(&count)
	if count > 0 {
		log.Debug("Groups already seeded, skipping")
		return
	}

	groups := []models.Group{
		{Title: "Development", Slug: "dev", Description: "Code, tools and engineering notes"},
		{Title: "Travel", Slug: "travel", Description: "Roads, cities and impressions"},
		{Title: "Books", Slug: "books", Description: "What we read and recommend"},
	}

	for _, group := range groups {
		if err := conn.Create(&group).Error; err != nil {
			log.Warn("Failed to create group", zap.String("slug", group.Slug), zap.Error(err))
		}
	}
	log.Info("Initial groups created")
}
