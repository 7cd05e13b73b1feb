package config

import (
	"fmt"
	"os"
	"strings"
)

// StorageConfig 保存对象存储（S3 兼容）所需的连接与签名参数。
// 任一必填项缺失时签名器拒绝初始化，绝不回退为公开 URL。
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// Configured 判断必填的存储参数是否齐备。
func (s StorageConfig) Configured() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != "" && s.Bucket != ""
}

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	SiteBaseURL       string
	SuperRootUserName string
	SuperRootPassword string
	Storage           StorageConfig
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 存储凭证没有默认值：缺失时签名能力直接失效。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "lumenfolio.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "lumenfolio-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	siteBaseURL := strings.TrimSpace(os.Getenv("SITE_BASE_URL"))
	if siteBaseURL == "" {
		siteBaseURL = "https://studio.lumenfolio.com"
	}

	region := strings.TrimSpace(os.Getenv("STORAGE_REGION"))
	if region == "" {
		region = "us-east-1"
	}

	superRootUserName := strings.TrimSpace(os.Getenv("SUPER_ROOT_USER_NAME"))
	superRootPassword := strings.TrimSpace(os.Getenv("SUPER_ROOT_PASSWORD"))

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabasePath:      databasePath,
		SessionSecret:     sessionSecret,
		GinMode:           ginMode,
		SiteBaseURL:       siteBaseURL,
		SuperRootUserName: superRootUserName,
		SuperRootPassword: superRootPassword,
		Storage: StorageConfig{
			Endpoint:  strings.TrimSpace(os.Getenv("STORAGE_ENDPOINT")),
			AccessKey: strings.TrimSpace(os.Getenv("STORAGE_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("STORAGE_SECRET_KEY")),
			Bucket:    strings.TrimSpace(os.Getenv("STORAGE_BUCKET")),
			Region:    region,
			UseSSL:    strings.TrimSpace(os.Getenv("STORAGE_USE_SSL")) != "false",
		},
	}
}
