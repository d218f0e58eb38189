package database

import (
	"fmt"
	"sync"
	"time"

	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/hxzhou/blog-platform/internal/logger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
)

// InitMySQL 初始化MySQL数据库连接
func InitMySQL(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.DSN()

	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true, // 使用单数表名
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	conn, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL数据库失败: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库连接池失败: %v", err)
	}

	// 配置连接池
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("测试数据库连接失败: %v", err)
	}

	logger.Info("MySQL数据库连接成功")
	db = conn
	return db, nil
}

// Init 初始化数据库实例
func Init() error {
	var err error
	dbOnce.Do(func() {
		_, err = InitMySQL(&config.GlobalConfig.MySQL)
	})
	return err
}

// GetDB 获取数据库实例，未初始化时返回nil，由读路径自行降级
func GetDB() *gorm.DB {
	return db
}

// SetDB 注入数据库实例，测试用
func SetDB(conn *gorm.DB) {
	db = conn
}
