package main

import (
	"fmt"
	"log"

	"itemtrail/internal/audit"
	"itemtrail/internal/config"
	"itemtrail/internal/db"
	httpserver "itemtrail/internal/http"
	"itemtrail/internal/models"
)

func main() {
	cfg := config.Load()
	provider := config.NewProvider(cfg)

	gdb := db.Connect(cfg)

	// Schema is established once at startup; the audit service only keeps a
	// defensive existence check for databases created afterwards.
	db.AutoMigrate(gdb, &models.Item{})
	if err := gdb.Table(cfg.AuditTable).AutoMigrate(&models.ItemAudit{}); err != nil {
		log.Fatalf("❌ AutoMigrate failed for %s: %v", cfg.AuditTable, err)
	}

	if cfg.SeedItems {
		if err := db.Seed(gdb); err != nil {
			log.Printf("⚠️ Seeding items failed: %v", err)
		}
	}

	auditor := audit.New(gdb, cfg.AuditTable, log.Default())

	r := httpserver.NewRouter(gdb, provider, auditor)
	log.Printf("🚀 Server listening on :%s\n", cfg.AppPort)
	r.Run(fmt.Sprintf(":%s", cfg.AppPort))
}
