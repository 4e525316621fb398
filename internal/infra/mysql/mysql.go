package mysql

import (
	"fmt"

	"catering-service/internal/config"
	"catering-service/internal/domain"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func NewMySQLFromEnv() (*gorm.DB, error) {
	user := config.GetEnv("MYSQL_USER", "root")
	pass := config.GetEnv("MYSQL_PASSWORD", "")
	host := config.GetEnv("MYSQL_HOST", "localhost")
	port := config.GetEnv("MYSQL_PORT", "3306")
	dbname := config.GetEnv("MYSQL_DATABASE", "catering")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", user, pass, host, port, dbname)
	// TranslateError turns duplicate-key violations into gorm.ErrDuplicatedKey
	// so the unique index on order_numbers is the real duplicate guard.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Address{},
		&domain.CateringOrder{},
		&domain.OnDemandOrder{},
		&domain.OrderNumberClaim{},
		&domain.Dispatch{},
		&domain.DriverStatusEvent{},
		&domain.FileAttachment{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
