package services

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"translated duplicate", gorm.ErrDuplicatedKey, true},
		{"wrapped duplicate", fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey), true},
		{"untranslated sqlite message", errors.New("UNIQUE constraint failed: users.username"), true},
		{"unrelated error", errors.New("connection refused"), false},
		{"record not found", gorm.ErrRecordNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateKey(tt.err); got != tt.want {
				t.Errorf("isDuplicateKey(%v) = %v, expected %v", tt.err, got, tt.want)
			}
		})
	}
}
