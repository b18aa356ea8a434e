package services

import (
	"testing"

	"github.com/studentcollab/backend/pkg/response"
)

func TestCreateReview_RatingBounds(t *testing.T) {
	svc := NewReviewService(nil)

	tests := []struct {
		name   string
		rating int
	}{
		{"zero", 0},
		{"negative", -1},
		{"six", 6},
		{"seven", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(1, &CreateReviewRequest{RevieweeID: 2, Rating: tt.rating})
			appErr, ok := err.(*response.AppError)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.HTTPStatus != 400 {
				t.Errorf("status = %d, expected 400", appErr.HTTPStatus)
			}
		})
	}
}

func TestCreateReview_SelfReviewRejected(t *testing.T) {
	svc := NewReviewService(nil)

	_, err := svc.Create(3, &CreateReviewRequest{RevieweeID: 3, Rating: 5})
	appErr, ok := err.(*response.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.HTTPStatus != 400 {
		t.Errorf("status = %d, expected 400", appErr.HTTPStatus)
	}
}
