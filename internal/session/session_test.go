package session

import (
	"testing"
	"time"

	"github.com/ardhimansyah/catatduit/internal/common"
	"github.com/ardhimansyah/catatduit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestClarificationFlow(t *testing.T) {
	s := &Session{}
	s.BeginClarification("bayar kos", day(9))
	assert.Equal(t, AwaitingType, s.Mode)

	require.NoError(t, s.ChooseType(model.TypeExpense))
	assert.Equal(t, AwaitingAmount, s.Mode)

	require.NoError(t, s.ProvideAmount("1.500.000"))
	assert.Equal(t, AwaitingCategory, s.Mode)

	p, err := s.ChooseCategory("Tagihan")
	require.NoError(t, err)
	assert.Equal(t, Idle, s.Mode)
	assert.Equal(t, float64(-1500000), p.Amount)
	assert.Equal(t, "Tagihan", p.Category)
	assert.Equal(t, "bayar kos", p.Description)
	assert.Equal(t, day(9), p.Date)
}

func TestIncomeSignEnforcedIgnoringInputSign(t *testing.T) {
	s := &Session{}
	s.BeginClarification("kiriman ibu", day(10))
	require.NoError(t, s.ChooseType(model.TypeIncome))
	require.NoError(t, s.ProvideAmount("-500000"))

	p, err := s.ChooseCategory("Hadiah")
	require.NoError(t, err)
	assert.Equal(t, float64(500000), p.Amount)
	assert.Equal(t, model.TypeIncome, p.Type())
}

func TestInvalidAmountKeepsState(t *testing.T) {
	s := &Session{}
	s.BeginClarification("jajan", day(10))
	require.NoError(t, s.ChooseType(model.TypeExpense))

	err := s.ProvideAmount("lima puluh ribu")
	assert.ErrorIs(t, err, common.ErrInvalidAmount)
	assert.Equal(t, AwaitingAmount, s.Mode)

	require.NoError(t, s.ProvideAmount("50000"))
	assert.Equal(t, AwaitingCategory, s.Mode)
}

func TestOutOfOrderTransitionsRejected(t *testing.T) {
	s := &Session{}
	assert.Error(t, s.ChooseType(model.TypeIncome))
	assert.Error(t, s.ProvideAmount("100"))
	_, err := s.ChooseCategory("Makanan")
	assert.Error(t, err)
	assert.Equal(t, Idle, s.Mode)
}

func TestStagingLastWriteWins(t *testing.T) {
	s := &Session{}
	s.Stage(model.Pending{Amount: -100, Description: "first"})
	s.StageBatch(model.PendingBatch{{Amount: -200}})
	assert.Nil(t, s.Staged)

	s.Stage(model.Pending{Amount: -300, Description: "second"})
	assert.Nil(t, s.StagedBatch)

	p, ok := s.TakeStaged()
	require.True(t, ok)
	assert.Equal(t, "second", p.Description)

	_, ok = s.TakeStaged()
	assert.False(t, ok)
}

func TestDeleteRangeFlow(t *testing.T) {
	s := &Session{}
	s.BeginDeleteRange()
	assert.Equal(t, AwaitingDeleteStart, s.Mode)

	require.NoError(t, s.SetDeleteStart(day(10)))
	assert.Equal(t, AwaitingDeleteEnd, s.Mode)

	// End before start re-prompts without changing state.
	err := s.SetDeleteEnd(day(9))
	assert.ErrorIs(t, err, common.ErrInvalidDate)
	assert.Equal(t, AwaitingDeleteEnd, s.Mode)

	require.NoError(t, s.SetDeleteEnd(day(12)))
	assert.Equal(t, AwaitingDeleteConfirmation, s.Mode)

	sel, ok := s.TakeSelection()
	require.True(t, ok)
	assert.Equal(t, model.DeleteDateRange, sel.Mode)
	assert.Equal(t, day(10), sel.Start)
	assert.Equal(t, day(12), sel.End)
	assert.Equal(t, Idle, s.Mode)
}

func TestCancelFromAnyState(t *testing.T) {
	states := []func(*Session){
		func(s *Session) { s.BeginClarification("x", day(1)) },
		func(s *Session) {
			s.BeginClarification("x", day(1))
			_ = s.ChooseType(model.TypeExpense)
		},
		func(s *Session) { s.BeginDeleteRange() },
		func(s *Session) { s.Stage(model.Pending{Amount: -1}) },
	}

	for _, setup := range states {
		s := &Session{}
		setup(s)
		s.Cancel()
		assert.Equal(t, Idle, s.Mode)
		assert.Nil(t, s.Staged)
		assert.Nil(t, s.StagedBatch)
		assert.Nil(t, s.Selection)
	}
}

func TestCancelKeepsSweepList(t *testing.T) {
	s := &Session{}
	s.Sweep = []int{1, 2, 3}
	s.BeginClarification("x", day(1))
	s.Cancel()
	assert.Equal(t, []int{1, 2, 3}, s.Sweep)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"50000", 50000, false},
		{"50.000", 50000, false},
		{"1,500,000", 1500000, false},
		{"Rp 250.000", 250000, false},
		{"-50000", 50000, false},
		{"+50000", 50000, false},
		{"", 0, true},
		{"banyak", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	s := m.Get(1)
	s.Mode = AwaitingType

	assert.Same(t, s, m.Get(1))
	assert.NotSame(t, s, m.Get(2))

	m.Reset(1)
	assert.Equal(t, Idle, m.Get(1).Mode)
}
