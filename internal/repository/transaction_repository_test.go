package repository_test

import (
	"testing"
	"time"

	"github.com/banklite/backoffice-gin/internal/model"
	"github.com/banklite/backoffice-gin/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTransactionRepository 创建测试数据库与交易仓储
func setupTransactionRepository(t *testing.T) repository.TransactionRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.TransactionModel{})
	require.NoError(t, err)

	return repository.NewTransactionRepository(db)
}

// seedTx 写入一笔测试交易
func seedTx(t *testing.T, repo repository.TransactionRepository, status string, amount float64, accountID string) *model.TransactionModel {
	now := time.Now()
	tx := &model.TransactionModel{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Type:      model.TransactionTypeDeposit,
		Amount:    amount,
		Currency:  "USD",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Save(tx))
	return tx
}

// TestTransactionRepository_FindByID 测试按 ID 查找
func TestTransactionRepository_FindByID(t *testing.T) {
	repo := setupTransactionRepository(t)
	tx := seedTx(t, repo, model.TransactionStatusPending, 100, "acc-001")

	found, err := repo.FindByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, found.ID)

	_, err = repo.FindByID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestTransactionRepository_FilterByStatusAndAmount 测试状态与金额过滤
func TestTransactionRepository_FilterByStatusAndAmount(t *testing.T) {
	repo := setupTransactionRepository(t)
	seedTx(t, repo, model.TransactionStatusPending, 100, "acc-001")
	seedTx(t, repo, model.TransactionStatusPending, 5000, "acc-001")
	seedTx(t, repo, model.TransactionStatusApproved, 5000, "acc-002")

	status := model.TransactionStatusPending
	minAmount := 1000.0
	txs, total, err := repo.FindByFilter(&repository.TransactionFilter{
		Status:    &status,
		MinAmount: &minAmount,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, txs, 1)
	assert.InDelta(t, 5000, txs[0].Amount, 0.001)
}

// TestTransactionRepository_Pagination 测试分页与总数
func TestTransactionRepository_Pagination(t *testing.T) {
	repo := setupTransactionRepository(t)
	for i := 0; i < 5; i++ {
		seedTx(t, repo, model.TransactionStatusPending, float64(100*(i+1)), "acc-001")
	}

	txs, total, err := repo.FindByFilter(&repository.TransactionFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, txs, 2)

	txs, _, err = repo.FindByFilter(&repository.TransactionFilter{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

// TestTransactionRepository_CountByStatus 测试按状态统计
func TestTransactionRepository_CountByStatus(t *testing.T) {
	repo := setupTransactionRepository(t)
	seedTx(t, repo, model.TransactionStatusPending, 100, "acc-001")
	seedTx(t, repo, model.TransactionStatusPending, 200, "acc-001")
	seedTx(t, repo, model.TransactionStatusApproved, 300, "acc-001")

	counts, err := repo.CountByStatus()
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[model.TransactionStatusPending])
	assert.EqualValues(t, 1, counts[model.TransactionStatusApproved])
}
