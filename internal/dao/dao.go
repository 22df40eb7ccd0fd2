// Package dao 提供数据库引擎和仓储实现
package dao

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/haierkeys/document-vault-service/internal/model"
	"github.com/haierkeys/document-vault-service/pkg/fileurl"
	"github.com/haierkeys/document-vault-service/pkg/util"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置（由应用层拷贝注入，避免反向依赖）
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

// Dao 数据访问对象，持有数据库连接
type Dao struct {
	Db     *gorm.DB
	config *DatabaseConfig

	migrateOnce sync.Map // 每张表只迁移一次
}

// New 创建 Dao 实例
func New(db *gorm.DB, c *DatabaseConfig) *Dao {
	return &Dao{Db: db, config: c}
}

func (d *Dao) DB() *gorm.DB {
	return d.Db
}

// useTable returns the DB handle, running AutoMigrate for the table on
// first use when enabled.
// useTable 返回数据库句柄，启用时在首次使用前自动迁移对应表
func (d *Dao) useTable(key string) *gorm.DB {
	if d.config == nil || d.config.AutoMigrate {
		if _, done := d.migrateOnce.LoadOrStore(key, true); !done {
			_ = model.AutoMigrate(d.Db, key)
		}
	}
	return d.Db
}

// NewDBEngine 创建数据库引擎
func NewDBEngine(c *DatabaseConfig) (*gorm.DB, error) {

	dialector := userDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}
	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	if lifetime, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	} else {
		sqlDB.SetConnMaxLifetime(time.Minute * 30)
	}
	if idleTime, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && idleTime > 0 {
		sqlDB.SetConnMaxIdleTime(idleTime)
	}

	return db, nil
}

func userDialector(c *DatabaseConfig) gorm.Dialector {
	if c.Type == "mysql" {
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	} else if c.Type == "postgres" {
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	} else if c.Type == "sqlite" {
		if !fileurl.IsExist(c.Path) {
			fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
