// backend/internal/infra/config/config.go
package config

import "os"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port                     string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	GCPCreds                 string

	// ★ Firebase Auth 用のプロジェクトID（admin ルートの ID トークン検証）
	FirebaseProjectID string

	// 商品画像を置く GCS バケット（未設定なら画像アップロードはスキップされる）
	GCSBucket string
	// 公開 URL のベース。空なら https://storage.googleapis.com/<bucket> を使う
	GCSPublicBaseURL string

	// ★ 注文確認メール (SendGrid)
	// SENDGRID_API_KEY が未設定なら Secret Manager の secret 名を参照する
	SendGridAPIKey     string
	SendGridSecretName string
	MailFromAddress    string

	// 確認メール内リンクの作成に使用 (例: https://tienda.example.com)
	StoreBaseURL string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "tienda-online")

	cfg := &Config{
		Port:                     getenvDefault("PORT", "8080"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		// ★ FIREBASE_PROJECT_ID が未指定なら GCP のデフォルトを使う
		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		GCSBucket:        os.Getenv("GCS_BUCKET"),
		GCSPublicBaseURL: os.Getenv("GCS_PUBLIC_BASE_URL"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: os.Getenv("SENDGRID_SECRET_NAME"),
		MailFromAddress:    getenvDefault("MAIL_FROM_ADDRESS", "no-reply@tienda.example.com"),

		StoreBaseURL: getenvDefault("STORE_BASE_URL", "http://localhost:3000"),
	}

	return cfg
}

// GetFirestoreProjectID は Firestore/GCP プロジェクト ID を返します。
func (c *Config) GetFirestoreProjectID() string {
	return c.FirestoreProjectID
}

// Firebase 用の ProjectID を返すヘルパー（あると便利）
func (c *Config) GetFirebaseProjectID() string {
	return c.FirebaseProjectID
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
