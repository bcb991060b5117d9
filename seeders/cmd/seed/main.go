package main

import (
	"flag"
	"log"

	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	"inventory-system/seeders"
)

func main() {
	runAdmin := flag.Bool("admin", false, "Создать администратора по умолчанию")
	runEquipment := flag.Bool("equipment", false, "Наполнить таблицу оборудования демо-данными")
	runAll := flag.Bool("all", false, "Запустить все сидеры")

	flag.Parse()

	if !*runAdmin && !*runEquipment && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	if err := postgresql.Migrate(cfg.Postgres.DSN); err != nil {
		log.Fatalf("❌ Не удалось применить миграции: %v", err)
	}

	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runAdmin {
		seeders.SeedAdminUser(dbPool)
	}
	if *runAll || *runEquipment {
		seeders.SeedDemoEquipment(dbPool)
	}

	log.Println("✅ Все указанные операции сидирования завершены.")
}
