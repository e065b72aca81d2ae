package infra

import (
	"fmt"

	"estoquepos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables. TranslateError is on so unique violations
// surface as gorm.ErrDuplicatedKey instead of driver-specific errors.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against
// throwaway containers.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Estado{},
		&model.Cidade{},
		&model.Bairro{},
		&model.Categoria{},
		&model.Produto{},
		&model.MovimentoEstoque{},
		&model.Cliente{},
		&model.MovimentoBonus{},
		&model.Fornecedor{},
		&model.Caixa{},
		&model.MovimentoCaixa{},
		&model.Operacao{},
		&model.OperacaoItem{},
		&model.OperacaoPagamento{},
	); err != nil {
		return err
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the default operation listing (today, registrada).
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_operacoes_caixa_registrada') THEN
		    CREATE INDEX idx_operacoes_caixa_registrada
		        ON operacoes (caixa_id, created_at)
		        WHERE estado = 'registrada';
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch: %w", err)
		}
	}
	return nil
}
