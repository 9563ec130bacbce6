package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/security"
)

// TableCreator handles the creation of the content store schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the database tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedInitialContent adds the default content required for a fresh site to function.
func (tc *TableCreator) SeedInitialContent(db *sql.DB) error {
	// Idempotently create the company-info global.
	var companyInfoExists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM company_info)").Scan(&companyInfoExists)
	if err != nil {
		return fmt.Errorf("failed to check for company info existence: %w", err)
	}

	if !companyInfoExists {
		_, err = db.Exec(`INSERT INTO company_info (id, name, tagline, social_links) VALUES (?, ?, ?, ?)`,
			security.GenerateULID(), "VRC", "Giải pháp công nghệ cho doanh nghiệp", "{}")
		if err != nil {
			return fmt.Errorf("failed to insert default company info: %w", err)
		}
	}

	// Idempotently create the main navigation menu.
	var menuExists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM menus WHERE title = 'Main Navigation')").Scan(&menuExists)
	if err != nil {
		return fmt.Errorf("failed to check for menu existence: %w", err)
	}

	if !menuExists {
		links := `[{"label":"Trang chủ","url":"/"},{"label":"Sản phẩm","url":"/products"},{"label":"Dịch vụ","url":"/services"},{"label":"Dự án","url":"/projects"},{"label":"Tin tức","url":"/posts"},{"label":"Liên hệ","url":"/contact"}]`
		_, err = db.Exec(`INSERT INTO menus (id, title, links) VALUES (?, ?, ?)`,
			security.GenerateULID(), "Main Navigation", links)
		if err != nil {
			return fmt.Errorf("failed to insert default menu: %w", err)
		}
	}

	// Idempotently create a starter product so the admin UI has something to show.
	var productExists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM products)").Scan(&productExists)
	if err != nil {
		return fmt.Errorf("failed to check for product existence: %w", err)
	}

	if !productExists {
		now := time.Now().UTC()
		_, err = db.Exec(`INSERT INTO products (id, name, slug, excerpt, status, featured, related_products, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			security.GenerateULID(), "Sản phẩm mẫu", "san-pham-mau", "Sản phẩm khởi tạo mặc định", "draft", 0, "[]", now)
		if err != nil {
			return fmt.Errorf("failed to insert starter product: %w", err)
		}
	}

	return nil
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS products (id TEXT PRIMARY KEY, name TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, excerpt TEXT, description TEXT, category TEXT, featured BOOLEAN DEFAULT 0, status TEXT NOT NULL DEFAULT 'draft', related_products TEXT NOT NULL DEFAULT '[]', created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS events (id TEXT PRIMARY KEY, title TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, summary TEXT, location TEXT, start_date TIMESTAMP, end_date TIMESTAMP, status TEXT NOT NULL DEFAULT 'draft', related_events TEXT NOT NULL DEFAULT '[]', created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS posts (id TEXT PRIMARY KEY, title TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, excerpt TEXT, body TEXT, status TEXT NOT NULL DEFAULT 'draft', related_posts TEXT NOT NULL DEFAULT '[]', published_at TIMESTAMP, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS projects (id TEXT PRIMARY KEY, title TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, summary TEXT, client TEXT, year INTEGER, status TEXT NOT NULL DEFAULT 'draft', technologies TEXT NOT NULL DEFAULT '[]', created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS services (id TEXT PRIMARY KEY, title TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, summary TEXT, body TEXT, featured BOOLEAN DEFAULT 0, status TEXT NOT NULL DEFAULT 'draft', created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS technologies (id TEXT PRIMARY KEY, name TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, website TEXT)`,
	`CREATE TABLE IF NOT EXISTS partners (id TEXT PRIMARY KEY, name TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, website TEXT, logo_url TEXT)`,
	`CREATE TABLE IF NOT EXISTS menus (id TEXT PRIMARY KEY, title TEXT NOT NULL, links TEXT NOT NULL DEFAULT '[]')`,
	`CREATE TABLE IF NOT EXISTS company_info (id TEXT PRIMARY KEY, name TEXT NOT NULL, tagline TEXT, address TEXT, phone TEXT, email TEXT, social_links TEXT NOT NULL DEFAULT '{}', changed TIMESTAMP)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_products_status ON products(status)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	`CREATE INDEX IF NOT EXISTS idx_events_slug ON events(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_events_status ON events(status)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_slug ON posts(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_slug ON projects(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_services_slug ON services(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_technologies_slug ON technologies(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_partners_slug ON partners(slug)`,
}
