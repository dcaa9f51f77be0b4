package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	repo "github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"
)

// 画面用の注文の控え
type OrderOutput struct {
	ID           string            `json:"id"`
	Items        []model.OrderItem `json:"items"`
	ItemCount    int               `json:"itemCount"`
	Total        string            `json:"total"`
	PaymentProof string            `json:"paymentProof"`
	CreatedAt    string            `json:"createdAt"`
}

func toOrderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		ID:           o.ID,
		Items:        o.Items,
		ItemCount:    o.ItemCount,
		Total:        o.Total(),
		PaymentProof: o.Proof.Key,
		CreatedAt:    o.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

type AccountUsecase struct {
	userRepo  repo.UserRepository
	orderRepo repo.OrderRepository
}

// DI
func NewAccountUsecase(userRepo repo.UserRepository, orderRepo repo.OrderRepository) *AccountUsecase {
	return &AccountUsecase{userRepo: userRepo, orderRepo: orderRepo}
}

// Me はログイン中のユーザー情報
func (u *AccountUsecase) Me(ctx context.Context, userID string) (model.UserSummary, error) {
	if userID == "" {
		return model.UserSummary{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return model.UserSummary{}, NewHTTPError(http.StatusNotFound, "User not found")
		}
		return model.UserSummary{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return user.Summary(), nil
}

// ListOrders は自分の注文（新しい順）
func (u *AccountUsecase) ListOrders(ctx context.Context, userID string) ([]OrderOutput, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}

	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderOutput(o))
	}
	return out, nil
}
