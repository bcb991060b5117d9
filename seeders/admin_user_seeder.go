package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/pkg/constants"
	"inventory-system/pkg/utils"
)

const defaultAdminLogin = "admin"
const defaultAdminPassword = "admin123"

// SeedAdminUser создаёт администратора по умолчанию, если его ещё нет.
// Пароль нужно сменить после первого входа.
func SeedAdminUser(db *pgxpool.Pool) {
	log.Println("🌱 Сидер: администратор по умолчанию...")
	if err := seedAdmin(context.Background(), db); err != nil {
		log.Fatalf("❌ Ошибка сидирования администратора: %v", err)
	}
	log.Println("✅ Сидирование администратора завершено.")
}

func seedAdmin(ctx context.Context, db *pgxpool.Pool) error {
	var userID uint64
	err := db.QueryRow(ctx, "SELECT id_usuario FROM usuarios WHERE usuario = $1", defaultAdminLogin).Scan(&userID)
	if err == nil {
		log.Println("  - Администратор уже существует. Пропускаем.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка при проверке существования администратора: %w", err)
	}

	hashedPassword, err := utils.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	query := `INSERT INTO usuarios (nombre, usuario, contrasena, rol)
              VALUES ($1, $2, $3, $4) RETURNING id_usuario`
	if err := db.QueryRow(ctx, query,
		"Администратор системы",
		defaultAdminLogin,
		hashedPassword,
		constants.RoleAdmin,
	).Scan(&userID); err != nil {
		return fmt.Errorf("ошибка при создании администратора: %w", err)
	}

	log.Printf("  - Создан администратор (id=%d, логин=%s).", userID, defaultAdminLogin)
	return nil
}
