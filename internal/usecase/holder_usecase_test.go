package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/arledger/internal/domain"
	"github.com/iho/arledger/internal/usecase"
	"github.com/iho/arledger/internal/usecase/mocks"
)

func TestHolderUseCase_CreateHolder(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateHolderInput
		expectError bool
		errorType   error
	}{
		{
			name:  "valid holder",
			input: usecase.CreateHolderInput{Name: "Acme Corp", Email: "billing@acme.example"},
		},
		{
			name:  "email is optional",
			input: usecase.CreateHolderInput{Name: "Acme Corp"},
		},
		{
			name:        "empty name rejected",
			input:       usecase.CreateHolderInput{Name: "  "},
			expectError: true,
			errorType:   domain.ErrInvalidHolderName,
		},
		{
			name:        "bad email rejected",
			input:       usecase.CreateHolderInput{Name: "Acme Corp", Email: "not-an-email"},
			expectError: true,
			errorType:   domain.ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			holderRepo := mocks.NewMockHolderRepository(ctrl)
			if !tt.expectError {
				holderRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			}

			uc := usecase.NewHolderUseCase(holderRepo, mocks.NewMockIDGenerator(), nil)

			holder, err := uc.CreateHolder(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if holder.ID == "" {
				t.Error("expected generated holder ID")
			}
			if holder.Name != tt.input.Name {
				t.Errorf("expected name %q, got %q", tt.input.Name, holder.Name)
			}
		})
	}
}

func TestHolderUseCase_ListHolders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	holderRepo := mocks.NewMockHolderRepository(ctrl)
	holderRepo.EXPECT().List(gomock.Any(), usecase.DefaultPageSize, 0).Return([]*domain.AccountHolder{
		{ID: "h-1", Name: "Acme Corp"},
	}, nil)

	uc := usecase.NewHolderUseCase(holderRepo, mocks.NewMockIDGenerator(), nil)

	holders, err := uc.ListHolders(context.Background(), usecase.ListHoldersInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holders) != 1 {
		t.Errorf("expected 1 holder, got %d", len(holders))
	}
}
