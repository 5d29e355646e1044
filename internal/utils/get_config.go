package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Paystack configuration
	PaystackSecretKey string `yaml:"PAYSTACK_SECRET_KEY"`
	PaystackPublicKey string `yaml:"PAYSTACK_PUBLIC_KEY"`

	// Waafi configuration
	WaafiMerchantUID string `yaml:"WAAFI_MERCHANT_UID"`
	WaafiAPIUserID   string `yaml:"WAAFI_API_USER_ID"`
	WaafiAPIKey      string `yaml:"WAAFI_API_KEY"`

	CallbackBaseURL string `yaml:"CALLBACK_BASE_URL"`

	// Content access gate tunables
	FreeContentLimit  string `yaml:"FREE_CONTENT_LIMIT"`
	ContentUnlockCost string `yaml:"CONTENT_UNLOCK_COST"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	os.Setenv("JWT_SECRET", config.JWTSecret)
	os.Setenv("PAYSTACK_SECRET_KEY", config.PaystackSecretKey)
	os.Setenv("PAYSTACK_PUBLIC_KEY", config.PaystackPublicKey)
	os.Setenv("WAAFI_MERCHANT_UID", config.WaafiMerchantUID)
	os.Setenv("WAAFI_API_USER_ID", config.WaafiAPIUserID)
	os.Setenv("WAAFI_API_KEY", config.WaafiAPIKey)
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_S3_REGION", config.AWSS3Region)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
}

func GetConfig(key string) string {
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "PAYSTACK_SECRET_KEY":
		return config.PaystackSecretKey
	case "PAYSTACK_PUBLIC_KEY":
		return config.PaystackPublicKey
	case "WAAFI_MERCHANT_UID":
		return config.WaafiMerchantUID
	case "WAAFI_API_USER_ID":
		return config.WaafiAPIUserID
	case "WAAFI_API_KEY":
		return config.WaafiAPIKey
	case "CALLBACK_BASE_URL":
		return config.CallbackBaseURL
	case "FREE_CONTENT_LIMIT":
		return config.FreeContentLimit
	case "CONTENT_UNLOCK_COST":
		return config.ContentUnlockCost
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
