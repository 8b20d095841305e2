package service_test

import (
	"context"
	"testing"

	"github.com/banklite/backoffice-gin/internal/model"
	"github.com/banklite/backoffice-gin/internal/policy"
	"github.com/banklite/backoffice-gin/internal/repository"
	"github.com/banklite/backoffice-gin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingNotifier 记录推送事件的通知器（用于测试）
type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) NotifyTransactionEvent(eventType string, tx *model.TransactionModel) {
	n.events = append(n.events, eventType)
}

// setupTransactionService 创建测试数据库与交易服务
func setupTransactionService(t *testing.T) (service.TransactionService, *recordingNotifier, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.TransactionModel{}, &model.AuditLogModel{})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	auditService := service.NewAuditLogService(repository.NewAuditLogRepository(db), nil)
	svc := service.NewTransactionService(
		repository.NewTransactionRepository(db),
		policy.NewApprovalPolicy(),
		auditService,
		notifier,
		nil,
	)
	return svc, notifier, db
}

func tellerActor() *service.Actor {
	return &service.Actor{UserID: "user-teller", RoleLabels: []string{"teller"}}
}

func managerActor() *service.Actor {
	return &service.Actor{UserID: "user-manager", RoleLabels: []string{"manager"}}
}

func adminActor() *service.Actor {
	return &service.Actor{UserID: "user-admin", RoleLabels: []string{"admin"}}
}

// createPendingTransaction 创建一笔待审批交易
func createPendingTransaction(t *testing.T, svc service.TransactionService, amount float64) *model.TransactionModel {
	tx, err := svc.Create(context.Background(), &service.CreateTransactionRequest{
		AccountID: "acc-001",
		Type:      model.TransactionTypeWithdrawal,
		Amount:    amount,
	}, tellerActor())
	require.NoError(t, err)
	require.Equal(t, model.TransactionStatusPending, tx.Status)
	return tx
}

// TestTransaction_Create 测试创建交易
func TestTransaction_Create(t *testing.T) {
	svc, _, _ := setupTransactionService(t)

	tx, err := svc.Create(context.Background(), &service.CreateTransactionRequest{
		AccountID:   "acc-001",
		Type:        model.TransactionTypeDeposit,
		Amount:      500,
		Description: "cash deposit",
	}, tellerActor())
	require.NoError(t, err)

	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, model.TransactionStatusPending, tx.Status)
	assert.Equal(t, "USD", tx.Currency)
	assert.Equal(t, "user-teller", tx.CreatedBy)
}

// TestTransaction_CreateNegativeAmount 测试负金额交易被拒绝
func TestTransaction_CreateNegativeAmount(t *testing.T) {
	svc, _, _ := setupTransactionService(t)

	_, err := svc.Create(context.Background(), &service.CreateTransactionRequest{
		AccountID: "acc-001",
		Type:      model.TransactionTypeDeposit,
		Amount:    -100,
	}, tellerActor())
	assert.Error(t, err)
}

// TestTransaction_ApproveSmallByTeller 测试柜员审批小额交易
func TestTransaction_ApproveSmallByTeller(t *testing.T) {
	svc, notifier, _ := setupTransactionService(t)
	tx := createPendingTransaction(t, svc, 800)

	approved, err := svc.Approve(context.Background(), tx.ID, tellerActor(), "looks fine")
	require.NoError(t, err)

	assert.Equal(t, model.TransactionStatusApproved, approved.Status)
	assert.Equal(t, "user-teller", approved.DecidedBy)
	assert.NotNil(t, approved.DecidedAt)
	assert.Equal(t, "looks fine", approved.DecisionReason)
	assert.Contains(t, notifier.events, "transaction.approved")
}

// TestTransaction_ApproveMediumByTellerDenied 测试柜员审批中额交易被拒
func TestTransaction_ApproveMediumByTellerDenied(t *testing.T) {
	svc, _, _ := setupTransactionService(t)
	tx := createPendingTransaction(t, svc, 5000)

	_, err := svc.Approve(context.Background(), tx.ID, tellerActor(), "")
	require.Error(t, err)

	var denied *service.ApprovalDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "Approval denied. Required role: manager", denied.Error())
	assert.Equal(t, policy.RoleManager, denied.Result.RequiredRole)

	// 交易保持待审批状态
	fresh, err := svc.Get(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TransactionStatusPending, fresh.Status)
}

// TestTransaction_ApproveLargeManagerVsAdmin 测试大额交易: 经理被拒,管理员通过
func TestTransaction_ApproveLargeManagerVsAdmin(t *testing.T) {
	svc, _, _ := setupTransactionService(t)
	tx := createPendingTransaction(t, svc, 15000)

	// 经理审批 15000 被拒,要求管理员
	_, err := svc.Approve(context.Background(), tx.ID, managerActor(), "")
	require.Error(t, err)

	var denied *service.ApprovalDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "Approval denied. Required role: admin", denied.Error())

	// 管理员审批同一交易通过
	approved, err := svc.Approve(context.Background(), tx.ID, adminActor(), "")
	require.NoError(t, err)
	assert.Equal(t, model.TransactionStatusApproved, approved.Status)
	assert.Equal(t, "user-admin", approved.DecidedBy)
}

// TestTransaction_ApproveVeryLargeDeniedForAdmin 测试超大额交易对任何角色均不可审批
func TestTransaction_ApproveVeryLargeDeniedForAdmin(t *testing.T) {
	svc, _, _ := setupTransactionService(t)
	tx := createPendingTransaction(t, svc, 60000)

	_, err := svc.Approve(context.Background(), tx.ID, adminActor(), "")
	require.Error(t, err)

	var denied *service.ApprovalDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, policy.TierVeryLarge, denied.Result.Tier)
	assert.Equal(t, "Director approval required", denied.Result.Reason)
}

// TestTransaction_ApproveNotPending 测试重复审批被状态门控拦截
func TestTransaction_ApproveNotPending(t *testing.T) {
	svc, _, _ := setupTransactionService(t)
	tx := createPendingTransaction(t, svc, 500)

	_, err := svc.Approve(context.Background(), tx.ID, tellerActor(), "")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), tx.ID, adminActor(), "")
	assert.ErrorIs(t, err, service.ErrTransactionNotPending)
}

// TestTransaction_RejectRequiresReason 测试驳回必须填写原因
func TestTransaction_RejectRequiresReason(t *testing.T) {
	svc, _, _ := setupTransactionService(t)
	tx := createPendingTransaction(t, svc, 500)

	_, err := svc.Reject(context.Background(), tx.ID, tellerActor(), "")
	assert.ErrorIs(t, err, service.ErrReasonRequired)
}

// TestTransaction_RejectUsesSameTierGate 测试驳回使用与审批相同的金额分层门控
func TestTransaction_RejectUsesSameTierGate(t *testing.T) {
	svc, notifier, _ := setupTransactionService(t)
	tx := createPendingTransaction(t, svc, 5000)

	// 柜员对中额交易无决策权,驳回同样被拒
	_, err := svc.Reject(context.Background(), tx.ID, tellerActor(), "suspicious")
	var denied *service.ApprovalDeniedError
	require.ErrorAs(t, err, &denied)

	// 经理驳回成功
	rejected, err := svc.Reject(context.Background(), tx.ID, managerActor(), "suspicious")
	require.NoError(t, err)
	assert.Equal(t, model.TransactionStatusRejected, rejected.Status)
	assert.Equal(t, "suspicious", rejected.DecisionReason)
	assert.Contains(t, notifier.events, "transaction.rejected")
}

// TestTransaction_CheckApprovalIdempotent 测试预检不产生状态变化
func TestTransaction_CheckApprovalIdempotent(t *testing.T) {
	svc, _, _ := setupTransactionService(t)
	tx := createPendingTransaction(t, svc, 5000)

	result := svc.CheckApproval(5000, policy.RoleTeller)
	assert.False(t, result.CanApprove)
	assert.Equal(t, policy.RoleManager, result.RequiredRole)

	// 预检不影响交易本身
	fresh, err := svc.Get(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TransactionStatusPending, fresh.Status)
}

// TestTransaction_AuditTrail 测试审批动作产生审计日志
func TestTransaction_AuditTrail(t *testing.T) {
	svc, _, db := setupTransactionService(t)
	tx := createPendingTransaction(t, svc, 500)

	_, err := svc.Approve(context.Background(), tx.ID, tellerActor(), "")
	require.NoError(t, err)

	logs, err := repository.NewAuditLogRepository(db).FindByResource("transaction", tx.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2) // create + approve

	actions := []string{logs[0].Action, logs[1].Action}
	assert.Contains(t, actions, "create")
	assert.Contains(t, actions, "approve")
}
