package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"rentease-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "rentease_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase fills the lookup tables and a default Super Admin so a fresh
// install is usable immediately.
func SeedDatabase() {
	// ---------------- PropertyTypes ----------------
	var ptCount int64
	DB.Model(&models.PropertyType{}).Count(&ptCount)
	if ptCount == 0 {
		propertyTypes := []models.PropertyType{
			{TypeName: "Duplex", Description: "Two-unit property", UnitCount: 2},
			{TypeName: "Low-rise", Description: "Walk-up block", UnitCount: 12},
			{TypeName: "Mid-rise", Description: "Elevator block", UnitCount: 40},
			{TypeName: "High-rise", Description: "Tower block", UnitCount: 120},
		}
		DB.Create(&propertyTypes)
		log.Println("PropertyTypes seeded")
	}

	// ---------------- ApartmentTypes ----------------
	var atCount int64
	DB.Model(&models.ApartmentType{}).Count(&atCount)
	if atCount == 0 {
		apartmentTypes := []models.ApartmentType{
			{TypeName: "Studio", Description: "Single-room unit", Status: "active"},
			{TypeName: "1 Bedroom", Description: "One bedroom unit", Status: "active"},
			{TypeName: "2 Bedroom", Description: "Two bedroom unit", Status: "active"},
			{TypeName: "Penthouse", Description: "Top floor unit", Status: "active"},
		}
		DB.Create(&apartmentTypes)
		log.Println("ApartmentTypes seeded")
	}

	// ---------------- Staff ----------------
	var staffCount int64
	DB.Model(&models.Staff{}).Count(&staffCount)
	if staffCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("SEED_ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default staff password: %v", err)
		} else {
			staff := models.Staff{
				StaffCode: "STF-0001",
				FullName:  "Default Super Admin",
				Username:  "admin@rentease.local",
				Password:  string(hash),
				Role:      models.RoleSuperAdmin,
				Status:    "active",
			}
			if err := DB.Create(&staff).Error; err != nil {
				log.Printf("warning: failed to create default staff: %v", err)
			} else {
				log.Println("Default Super Admin staff seeded")
			}
		}
	}

	// ---------------- Demo property ----------------
	// Properties are managed by a separate admin flow; one demo row makes a
	// local install usable without it.
	var propCount int64
	DB.Model(&models.Property{}).Count(&propCount)
	if propCount == 0 {
		var lowRise models.PropertyType
		if err := DB.Where("type_name = ?", "Low-rise").First(&lowRise).Error; err == nil {
			property := models.Property{
				PropertyCode:     "PROP-0001",
				PropertyName:     "Demo Court",
				PropertyTypeID:   &lowRise.ID,
				PropertyTypeUnit: lowRise.UnitCount,
				Address:          "1 Demo Street",
				Status:           "active",
			}
			if err := DB.Create(&property).Error; err != nil {
				log.Printf("warning: failed to create demo property: %v", err)
			} else {
				log.Println("Demo property seeded")
			}
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	// Pool tuning on the underlying database/sql handle.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		log.Printf("info: cannot get raw sql.DB: %v", err)
	}

	DB = db

	// AutoMigrate in parent->child order.
	if err := DB.AutoMigrate(
		&models.PropertyType{},
		&models.Property{},
		&models.ApartmentType{},
		&models.Agent{},
		&models.Staff{},
		&models.Apartment{},
		&models.ApartmentEvent{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
