package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkvault/zkvault/internal/testutil"
	"github.com/zkvault/zkvault/internal/vault/domain"
)

var vaultItemColumns = []string{"id", "owner_id", "site", "encrypted_password", "created_at", "updated_at"}

func newTestVaultItem() *domain.VaultItem {
	now := time.Now().UTC()
	return &domain.VaultItem{
		ID:                uuid.Must(uuid.NewV7()),
		OwnerID:           uuid.Must(uuid.NewV7()),
		Site:              "enc-site",
		EncryptedPassword: "enc-password",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestPostgreSQLVaultItemRepository_Create(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLVaultItemRepository(db)
	item := newTestVaultItem()

	mock.ExpectExec("INSERT INTO vault_items").
		WithArgs(item.ID, item.OwnerID, item.Site, item.EncryptedPassword, item.CreatedAt, item.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), item))
}

func TestPostgreSQLVaultItemRepository_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLVaultItemRepository(db)
		item := newTestVaultItem()

		mock.ExpectQuery("FROM vault_items WHERE id").
			WithArgs(item.ID).
			WillReturnRows(sqlmock.NewRows(vaultItemColumns).AddRow(
				item.ID.String(), item.OwnerID.String(), item.Site, item.EncryptedPassword,
				item.CreatedAt, item.UpdatedAt,
			))

		got, err := repo.GetByID(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.OwnerID, got.OwnerID)
		assert.Equal(t, item.EncryptedPassword, got.EncryptedPassword)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLVaultItemRepository(db)

		mock.ExpectQuery("FROM vault_items WHERE id").WillReturnRows(sqlmock.NewRows(vaultItemColumns))

		_, err := repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrVaultItemNotFound)
	})
}

func TestPostgreSQLVaultItemRepository_ListByOwner(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLVaultItemRepository(db)
	first := newTestVaultItem()
	second := newTestVaultItem()
	second.OwnerID = first.OwnerID

	mock.ExpectQuery("FROM vault_items WHERE owner_id").
		WithArgs(first.OwnerID, 50, 0).
		WillReturnRows(sqlmock.NewRows(vaultItemColumns).
			AddRow(first.ID.String(), first.OwnerID.String(), first.Site, first.EncryptedPassword,
				first.CreatedAt, first.UpdatedAt).
			AddRow(second.ID.String(), second.OwnerID.String(), second.Site, second.EncryptedPassword,
				second.CreatedAt, second.UpdatedAt))

	items, err := repo.ListByOwner(context.Background(), first.OwnerID, 0, 50)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
}

func TestPostgreSQLVaultItemRepository_LockOwnedIDs(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLVaultItemRepository(db)
		ownerID := uuid.Must(uuid.NewV7())
		id1 := uuid.Must(uuid.NewV7())
		id2 := uuid.Must(uuid.NewV7())

		mock.ExpectQuery("SELECT id FROM vault_items WHERE owner_id (.+) FOR UPDATE").
			WithArgs(ownerID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id1.String()).AddRow(id2.String()))

		ids, err := repo.LockOwnedIDs(context.Background(), ownerID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{id1, id2}, ids)
	})

	t.Run("DatabaseError", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLVaultItemRepository(db)

		mock.ExpectQuery("SELECT id FROM vault_items").WillReturnError(errors.New("lock timeout"))

		_, err := repo.LockOwnedIDs(context.Background(), uuid.Must(uuid.NewV7()))
		assert.Error(t, err)
	})
}

func TestPostgreSQLVaultItemRepository_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLVaultItemRepository(db)
		item := newTestVaultItem()

		mock.ExpectExec("UPDATE vault_items SET site").
			WithArgs(item.Site, item.EncryptedPassword, item.UpdatedAt, item.ID, item.OwnerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), item))
	})

	t.Run("NotOwned", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewPostgreSQLVaultItemRepository(db)

		mock.ExpectExec("UPDATE vault_items SET site").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), newTestVaultItem()), domain.ErrVaultItemNotFound)
	})
}

func TestPostgreSQLVaultItemRepository_Delete(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLVaultItemRepository(db)
	item := newTestVaultItem()

	mock.ExpectExec("DELETE FROM vault_items").
		WithArgs(item.ID, item.OwnerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), item.OwnerID, item.ID))
}
