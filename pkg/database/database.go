package database

import (
	"fmt"
	"log"

	"quiz_backend/internal/config"
	"quiz_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := db.AutoMigrate(&model.Question{}); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 题库为空时插入示例题目
	var count int64
	db.Model(&model.Question{}).Count(&count)
	if count == 0 {
		seed := []*model.Question{
			model.NewQuestion(
				"2 + 2 = ?",
				map[string]string{"A": "3", "B": "4", "C": "5", "D": ""},
				map[string]bool{"A": false, "B": true, "C": false, "D": false},
			),
			model.NewQuestion(
				"Which of these are primary colors?",
				map[string]string{"A": "Red", "B": "Green", "C": "Blue", "D": "Orange"},
				map[string]bool{"A": true, "B": false, "C": true, "D": false},
			),
		}
		for _, q := range seed {
			db.Create(q)
		}
	}

	return db, nil
}
