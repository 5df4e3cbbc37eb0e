package logic

import (
	"context"
	"testing"

	"github.com/nothingdao/solana-support/internal/model"
	"github.com/nothingdao/solana-support/internal/solana"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestProject(t *testing.T, db *gorm.DB, feeEnabled bool) *model.Project {
	t.Helper()

	project := &model.Project{
		Name:          "Test Project",
		WalletAddress: testProjectWallet,
		DevFeeEnabled: feeEnabled,
	}
	require.NoError(t, NewProjectLogic(db).CreateProject(project))
	return project
}

func validClaim(projectID string) DonationClaim {
	return DonationClaim{
		ProjectID:   projectID,
		DonorWallet: testDonorWallet,
		Amount:      "5.0",
		TxSignature: "sig-A",
	}
}

func TestSubmitDonation_ConfirmedWithFee(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, true)
	d := NewDonationLogic(db, stubLedger{status: solana.TxConfirmed})

	// Seed raised = 10 through a prior confirmed donation.
	seed := DonationClaim{
		ProjectID:   project.ID,
		DonorWallet: testOtherWallet,
		Amount:      "10.0",
		TxSignature: "sig-seed",
	}
	_, err := d.SubmitDonation(context.Background(), seed)
	require.NoError(t, err)

	donation, err := d.SubmitDonation(context.Background(), validClaim(project.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, donation.ID)
	assert.True(t, donation.IsConfirmed)
	assert.True(t, donation.Amount.Equal(decimal.RequireFromString("5.0")))

	var stored model.Project
	require.NoError(t, db.First(&stored, "id = ?", project.ID).Error)
	assert.True(t, stored.Raised.Equal(decimal.RequireFromString("15.0")),
		"raised = %s, want 15", stored.Raised)

	var fee model.DevFee
	require.NoError(t, db.First(&fee, "donation_id = ?", donation.ID).Error)
	assert.True(t, fee.Amount.Equal(decimal.RequireFromString("0.1")),
		"fee = %s, want 0.1", fee.Amount)
	assert.Equal(t, "sig-A_fee", fee.TxSignature)
}

func TestSubmitDonation_NoFeeWhenDisabled(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, false)
	d := NewDonationLogic(db, stubLedger{status: solana.TxConfirmed})

	donation, err := d.SubmitDonation(context.Background(), validClaim(project.ID))
	require.NoError(t, err)
	assert.True(t, donation.IsConfirmed)

	var feeCount int64
	require.NoError(t, db.Model(&model.DevFee{}).Count(&feeCount).Error)
	assert.Zero(t, feeCount)
}

func TestSubmitDonation_DuplicateSignature(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, true)
	d := NewDonationLogic(db, stubLedger{status: solana.TxConfirmed})

	_, err := d.SubmitDonation(context.Background(), validClaim(project.ID))
	require.NoError(t, err)

	_, err = d.SubmitDonation(context.Background(), validClaim(project.ID))
	assert.ErrorIs(t, err, ErrDuplicateSignature)

	var count int64
	require.NoError(t, db.Model(&model.Donation{}).
		Where("tx_signature = ?", "sig-A").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The losing submission must not move the balance again.
	var stored model.Project
	require.NoError(t, db.First(&stored, "id = ?", project.ID).Error)
	assert.True(t, stored.Raised.Equal(decimal.RequireFromString("5.0")))
}

func TestDonationSignatureIndexBacksUpPrecheck(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, false)

	// A concurrent submission that slips past the pre-check must still
	// lose on the unique index, surfaced as gorm.ErrDuplicatedKey.
	first := model.Donation{
		ProjectID:   project.ID,
		DonorWallet: testOtherWallet,
		Amount:      decimal.RequireFromString("1"),
		TxSignature: "sig-A",
	}
	require.NoError(t, db.Create(&first).Error)

	second := model.Donation{
		ProjectID:   project.ID,
		DonorWallet: testDonorWallet,
		Amount:      decimal.RequireFromString("2"),
		TxSignature: "sig-A",
	}
	err := db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestGetDonationBySignature(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, false)
	d := NewDonationLogic(db, stubLedger{status: solana.TxConfirmed})

	_, err := d.GetDonationBySignature("sig-A")
	assert.ErrorIs(t, err, ErrDonationNotFound)

	_, err = d.SubmitDonation(context.Background(), validClaim(project.ID))
	require.NoError(t, err)

	got, err := d.GetDonationBySignature("sig-A")
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ProjectID)
	assert.Equal(t, testDonorWallet, got.DonorWallet)
}

func TestSubmitDonation_FailedTransaction(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, true)
	d := NewDonationLogic(db, stubLedger{status: solana.TxFailed})

	donation, err := d.SubmitDonation(context.Background(), validClaim(project.ID))
	require.NoError(t, err)
	assert.False(t, donation.IsConfirmed)

	var stored model.Project
	require.NoError(t, db.First(&stored, "id = ?", project.ID).Error)
	assert.True(t, stored.Raised.IsZero())

	var feeCount int64
	require.NoError(t, db.Model(&model.DevFee{}).Count(&feeCount).Error)
	assert.Zero(t, feeCount)
}

func TestSubmitDonation_UnknownTransaction(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, false)
	d := NewDonationLogic(db, stubLedger{status: solana.TxNotFound})

	donation, err := d.SubmitDonation(context.Background(), validClaim(project.ID))
	require.NoError(t, err)
	assert.False(t, donation.IsConfirmed)
}

func TestSubmitDonation_LookupErrorRecordsUnconfirmed(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, true)
	d := NewDonationLogic(db, stubLedger{err: context.DeadlineExceeded})

	// The RPC failure is absorbed: recorded for audit, no balance move.
	donation, err := d.SubmitDonation(context.Background(), validClaim(project.ID))
	require.NoError(t, err)
	assert.False(t, donation.IsConfirmed)

	var stored model.Project
	require.NoError(t, db.First(&stored, "id = ?", project.ID).Error)
	assert.True(t, stored.Raised.IsZero())
}

func TestSubmitDonation_MissingFields(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, false)
	d := NewDonationLogic(db, stubLedger{status: solana.TxConfirmed})

	for name, mutate := range map[string]func(*DonationClaim){
		"project id":   func(c *DonationClaim) { c.ProjectID = "" },
		"donor wallet": func(c *DonationClaim) { c.DonorWallet = "" },
		"amount":       func(c *DonationClaim) { c.Amount = "" },
		"signature":    func(c *DonationClaim) { c.TxSignature = "" },
	} {
		claim := validClaim(project.ID)
		mutate(&claim)
		_, err := d.SubmitDonation(context.Background(), claim)
		assert.ErrorIs(t, err, ErrMissingFields, "missing %s", name)
	}

	var count int64
	require.NoError(t, db.Model(&model.Donation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitDonation_BadDonorWallet(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, false)
	d := NewDonationLogic(db, stubLedger{status: solana.TxConfirmed})

	claim := validClaim(project.ID)
	claim.DonorWallet = "not-a-wallet"
	_, err := d.SubmitDonation(context.Background(), claim)
	assert.ErrorIs(t, err, ErrInvalidDonorWallet)
}

func TestSubmitDonation_BadAmount(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, false)
	d := NewDonationLogic(db, stubLedger{status: solana.TxConfirmed})

	for _, amount := range []string{"abc", "-1", "0", "1.2.3"} {
		claim := validClaim(project.ID)
		claim.Amount = amount
		_, err := d.SubmitDonation(context.Background(), claim)
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %q", amount)
	}

	// Rejected before any store write.
	var count int64
	require.NoError(t, db.Model(&model.Donation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitDonation_UnknownProject(t *testing.T) {
	db := setupDB(t)
	d := NewDonationLogic(db, stubLedger{status: solana.TxConfirmed})

	_, err := d.SubmitDonation(context.Background(), validClaim("missing-id"))
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestSubmitDonation_InactiveProject(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, false)
	require.NoError(t, db.Model(project).Update("is_active", false).Error)

	d := NewDonationLogic(db, stubLedger{status: solana.TxConfirmed})
	_, err := d.SubmitDonation(context.Background(), validClaim(project.ID))
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestSubmitDonation_ReconciliationInvariant(t *testing.T) {
	db := setupDB(t)
	project := createTestProject(t, db, true)

	// Mixed verdicts: only confirmed amounts may reach the total.
	submissions := []struct {
		amount string
		sig    string
		status solana.TxStatus
	}{
		{"1.5", "sig-1", solana.TxConfirmed},
		{"2.25", "sig-2", solana.TxFailed},
		{"3.0", "sig-3", solana.TxConfirmed},
		{"4.75", "sig-4", solana.TxNotFound},
		{"0.5", "sig-5", solana.TxConfirmed},
	}

	for _, s := range submissions {
		d := NewDonationLogic(db, stubLedger{status: s.status})
		_, err := d.SubmitDonation(context.Background(), DonationClaim{
			ProjectID:   project.ID,
			DonorWallet: testDonorWallet,
			Amount:      s.amount,
			TxSignature: s.sig,
		})
		require.NoError(t, err)
	}

	var stored model.Project
	require.NoError(t, db.First(&stored, "id = ?", project.ID).Error)

	var donations []model.Donation
	require.NoError(t, db.Where("project_id = ? AND is_confirmed = ?", project.ID, true).
		Find(&donations).Error)

	sum := decimal.Zero
	for _, donation := range donations {
		sum = sum.Add(donation.Amount)
	}
	assert.True(t, stored.Raised.Equal(sum), "raised = %s, confirmed sum = %s", stored.Raised, sum)
	assert.True(t, stored.Raised.Equal(decimal.RequireFromString("5.0")))
}
