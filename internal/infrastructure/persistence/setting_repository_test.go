package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/ketoan/backend/internal/domain/settings"
	"github.com/ketoan/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSettingRepository creates a GormSettingRepository with a mocked SQL connection
func newMockSettingRepository(t *testing.T) (*GormSettingRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSettingRepository(gormDB), mock, mockDB
}

func settingRows(ids ...uuid.UUID) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "category", "key", "value", "description", "updated_by"})
	for _, id := range ids {
		rows.AddRow(id, uuid.New(), "company", "companyName", `"Công ty TNHH ABC"`, "", uuid.New())
	}
	return rows
}

func TestGormSettingRepository_FindByID(t *testing.T) {
	t.Run("finds existing setting", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		settingID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "settings" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(settingID, 1).
			WillReturnRows(settingRows(settingID))

		setting, err := repo.FindByID(context.Background(), settingID)

		assert.NoError(t, err)
		require.NotNil(t, setting)
		assert.Equal(t, settingID, setting.ID)
		assert.Equal(t, "company", setting.Category)
		assert.Equal(t, "companyName", setting.Key)
		assert.JSONEq(t, `"Công ty TNHH ABC"`, string(setting.Value))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing setting", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		settingID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "settings" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(settingID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		setting, err := repo.FindByID(context.Background(), settingID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, setting)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSettingRepository_FindAll(t *testing.T) {
	t.Run("without category filter", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "settings" ORDER BY category ASC, key ASC`).
			WillReturnRows(settingRows(uuid.New(), uuid.New()))

		result, err := repo.FindAll(context.Background(), "")

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("with category filter", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "settings" WHERE category = \$1 ORDER BY category ASC, key ASC`).
			WithArgs("company").
			WillReturnRows(settingRows(uuid.New()))

		result, err := repo.FindAll(context.Background(), "company")

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "settings" WHERE category = \$1 ORDER BY category ASC, key ASC`).
			WithArgs("email").
			WillReturnRows(settingRows())

		result, err := repo.FindAll(context.Background(), "email")

		assert.NoError(t, err)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSettingRepository_FindByCategoryAndKey(t *testing.T) {
	t.Run("finds first match regardless of tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "settings" WHERE category = \$1 AND key = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("company", "companyName", 1).
			WillReturnRows(settingRows(uuid.New()))

		setting, err := repo.FindByCategoryAndKey(context.Background(), "company", "companyName")

		assert.NoError(t, err)
		require.NotNil(t, setting)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when absent", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "settings" WHERE category = \$1 AND key = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("company", "missing", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByCategoryAndKey(context.Background(), "company", "missing")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSettingRepository_FindForTenantByCategoryAndKey(t *testing.T) {
	t.Run("scopes lookup by tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "settings" WHERE tenant_id = \$1 AND category = \$2 AND key = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, "tax", "defaultVatRate", 1).
			WillReturnRows(settingRows(uuid.New()))

		setting, err := repo.FindForTenantByCategoryAndKey(context.Background(), tenantID, "tax", "defaultVatRate")

		assert.NoError(t, err)
		require.NotNil(t, setting)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when absent", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "settings" WHERE tenant_id = \$1 AND category = \$2 AND key = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, "tax", "missing", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindForTenantByCategoryAndKey(context.Background(), tenantID, "tax", "missing")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSettingRepository_ExistsByCategoryAndKey(t *testing.T) {
	t.Run("returns true when a row exists", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "settings" WHERE category = \$1 AND key = \$2`).
			WithArgs("company", "companyName").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCategoryAndKey(context.Background(), "company", "companyName")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when no row exists", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "settings" WHERE category = \$1 AND key = \$2`).
			WithArgs("company", "missing").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByCategoryAndKey(context.Background(), "company", "missing")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSettingRepository_Delete(t *testing.T) {
	t.Run("deletes existing setting", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		settingID := uuid.New()

		mock.ExpectExec(`DELETE FROM "settings" WHERE id = \$1`).
			WithArgs(settingID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), settingID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		settingID := uuid.New()

		mock.ExpectExec(`DELETE FROM "settings" WHERE id = \$1`).
			WithArgs(settingID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), settingID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSettingRepository_Save(t *testing.T) {
	t.Run("updates existing setting", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		actorID := uuid.New()

		domainSetting, err := settings.NewSetting(&tenantID, "system", "timezone", []byte(`"Asia/Ho_Chi_Minh"`), "Múi giờ hệ thống", actorID)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "settings" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), domainSetting)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
