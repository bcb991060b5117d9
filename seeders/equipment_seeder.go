package seeders

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemoEquipment наполняет таблицу equipos демонстрационными записями.
// Повторный запуск безопасен: конфликт по серийному номеру игнорируется.
func SeedDemoEquipment(db *pgxpool.Pool) {
	log.Println("🌱 Сидер: демонстрационное оборудование...")

	items := []struct {
		description  string
		equipType    string
		serialNumber string
	}{
		{"Ноутбук Dell Latitude 5440", "laptop", "DL-5440-0001"},
		{"Принтер HP LaserJet Pro M404", "printer", "HP-M404-0001"},
		{"Монитор LG 27UP850", "monitor", "LG-27UP-0001"},
		{"Сервер Dell PowerEdge R650", "server", "DL-R650-0001"},
	}

	ctx := context.Background()
	query := `INSERT INTO equipos (descripcion, tipo, numero_serie, fecha_registro)
              VALUES ($1, $2, $3, $4) ON CONFLICT (numero_serie) DO NOTHING`
	today := time.Now()

	for _, item := range items {
		if _, err := db.Exec(ctx, query, item.description, item.equipType, item.serialNumber, today); err != nil {
			log.Fatalf("❌ Ошибка сидирования оборудования %s: %v", item.serialNumber, err)
		}
	}

	log.Printf("✅ Сидирование оборудования завершено (%d записей проверено).", len(items))
}
