package spending

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpense(t *testing.T) {
	schoolID := uuid.New()
	date := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	t.Run("creates expense", func(t *testing.T) {
		categoryID := uuid.New()
		e, err := NewExpense(schoolID, &categoryID, nil, valueobject.NewMoneyUSDFromFloat(75.50), "art supplies", "", date)
		require.NoError(t, err)
		assert.Equal(t, schoolID, e.SchoolID)
		assert.Equal(t, &categoryID, e.CategoryID)
		assert.True(t, e.Amount.Equal(decimal.NewFromFloat(75.50)))
	})

	t.Run("rejects empty school", func(t *testing.T) {
		_, err := NewExpense(uuid.Nil, nil, nil, valueobject.NewMoneyUSDFromFloat(10), "", "", date)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewExpense(schoolID, nil, nil, valueobject.ZeroUSD(), "", "", date)
		assert.Error(t, err)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewExpense(schoolID, nil, nil, valueobject.NewMoneyUSDFromFloat(10), "", "", time.Time{})
		assert.Error(t, err)
	})
}

func TestExpensePatch(t *testing.T) {
	e, err := NewExpense(uuid.New(), nil, nil, valueobject.NewMoneyUSDFromFloat(50), "snacks", "", time.Now())
	require.NoError(t, err)

	newAmount := decimal.NewFromInt(65)
	require.NoError(t, e.Patch(nil, &newAmount, nil, nil, nil))
	assert.True(t, e.Amount.Equal(newAmount))
	assert.Equal(t, "snacks", e.Description)

	zero := decimal.Zero
	assert.Error(t, e.Patch(nil, &zero, nil, nil, nil))
}

func TestNewCategory(t *testing.T) {
	t.Run("creates custom category", func(t *testing.T) {
		c, err := NewCategory(uuid.New(), "Maintenance", "repairs and upkeep")
		require.NoError(t, err)
		assert.True(t, c.IsCustom)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCategory(uuid.New(), "", "")
		assert.Error(t, err)
	})
}

func TestNewRemittance(t *testing.T) {
	t.Run("creates remittance", func(t *testing.T) {
		r, err := NewRemittance(uuid.New(), nil, valueobject.NewMoneyUSDFromFloat(500), time.Now(), "First National, acct 4411")
		require.NoError(t, err)
		assert.Equal(t, "First National, acct 4411", r.BankDetails)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewRemittance(uuid.New(), nil, valueobject.NewMoneyUSDFromFloat(500), time.Time{}, "")
		assert.Error(t, err)
	})
}

func TestRemittancePatch(t *testing.T) {
	r, err := NewRemittance(uuid.New(), nil, valueobject.NewMoneyUSDFromFloat(500), time.Now(), "")
	require.NoError(t, err)

	details := "Community Credit Union"
	require.NoError(t, r.Patch(nil, nil, &details))
	assert.Equal(t, details, r.BankDetails)
	assert.True(t, r.Amount.Equal(decimal.NewFromInt(500)))
}
