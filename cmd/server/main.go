package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/storefront-next/internal/app"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"github.com/gin-gonic/gin"
)

var weakSecretMarkers = []string{"change-me", "change-in-production", "your-secret-key"}

func main() {
	mode := flag.String("mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	release := cfg.Server.Mode == "release"
	if err := checkSecrets(cfg, release, stdLog); err != nil {
		stdLog.Fatalf("%v", err)
	}
	if err := prepareDatabase(cfg); err != nil {
		stdLog.Fatalf("%v", err)
	}
	seedAdmin(release, stdLog)

	if release {
		gin.SetMode(gin.ReleaseMode)
	}

	err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    *mode,
	})
	if err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

// checkSecrets release 模式下弱密钥直接拒绝启动，其他模式只告警
func checkSecrets(cfg *config.Config, release bool, stdLog *log.Logger) error {
	secrets := []struct {
		name  string
		value string
	}{
		{"jwt", cfg.JWT.SecretKey},
		{"user_jwt", cfg.UserJWT.SecretKey},
	}
	for _, secret := range secrets {
		if !isWeakSecret(secret.value) {
			continue
		}
		if release {
			return fmt.Errorf("%s secret 过弱或仍为默认值，请在生产环境中配置强随机密钥", secret.name)
		}
		stdLog.Printf("警告: %s secret 过弱或仍为默认值，建议在生产环境中更换", secret.name)
	}
	return nil
}

func prepareDatabase(cfg *config.Config) error {
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig(cfg.Database.Pool)); err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// seedAdmin 管理员表为空时按环境变量创建首个超级管理员
func seedAdmin(release bool, stdLog *log.Logger) {
	username := os.Getenv("SF_DEFAULT_ADMIN_USERNAME")
	password := os.Getenv("SF_DEFAULT_ADMIN_PASSWORD")
	if release && password == "" {
		stdLog.Printf("警告: 未设置 SF_DEFAULT_ADMIN_PASSWORD，已跳过默认管理员初始化")
		return
	}
	if err := models.InitDefaultAdmin(models.DB, username, password); err != nil {
		stdLog.Printf("警告: 初始化默认管理员失败: %v", err)
	}
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	for _, marker := range weakSecretMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}
