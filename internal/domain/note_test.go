package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPromissoryNote_Validate(t *testing.T) {
	valid := PromissoryNote{
		HolderID:   "h1",
		NoteNumber: "N-1",
		IssueDate:  date(2024, 1, 1),
		DueDate:    date(2024, 3, 1),
		Amount:     decimal.NewFromInt(500),
		Status:     NoteStatusOutstanding,
	}

	tests := []struct {
		name    string
		mutate  func(*PromissoryNote)
		wantErr error
	}{
		{"valid", func(*PromissoryNote) {}, nil},
		{"missing holder", func(n *PromissoryNote) { n.HolderID = "" }, ErrMissingHolder},
		{"missing note number", func(n *PromissoryNote) { n.NoteNumber = "" }, ErrMissingNoteNumber},
		{"missing due date", func(n *PromissoryNote) { n.DueDate = time.Time{} }, ErrMissingDueDate},
		{"negative amount", func(n *PromissoryNote) { n.Amount = decimal.NewFromInt(-1) }, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := valid
			tt.mutate(&note)

			err := note.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPromissoryNote_Outstanding(t *testing.T) {
	tests := []struct {
		name    string
		amount  decimal.Decimal
		settled decimal.Decimal
		want    decimal.Decimal
	}{
		{"unsettled", decimal.NewFromInt(500), decimal.Zero, decimal.NewFromInt(500)},
		{"partially settled", decimal.NewFromInt(500), decimal.NewFromInt(200), decimal.NewFromInt(300)},
		{"fully settled", decimal.NewFromInt(500), decimal.NewFromInt(500), decimal.Zero},
		{"oversettled clamps to zero", decimal.NewFromInt(500), decimal.NewFromInt(600), decimal.Zero},
		{"negative settled ignored", decimal.NewFromInt(500), decimal.NewFromInt(-100), decimal.NewFromInt(500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := &PromissoryNote{Amount: tt.amount, SettledAmount: tt.settled}
			if got := note.Outstanding(); !got.Equal(tt.want) {
				t.Errorf("expected outstanding %s, got %s", tt.want, got)
			}
		})
	}
}
