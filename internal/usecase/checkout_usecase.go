package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	repo "github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"

	"go.uber.org/zap"
)

// 支払い証明の上限（5MB）
const MaxProofSize int64 = 5 << 20

const proofKeyPrefix = "payment-proofs"

// 受け付けるファイル形式
var allowedProofTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

// アップロードされた支払い証明
type ProofFile struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type CheckoutInput struct {
	// ログイン済みのときだけ
	UserID string
	// localStorageのcartの値そのまま
	Cart  string
	Proof *ProofFile
	// 空なら冪等チェックしない
	IdempotencyKey string
}

type CheckoutOutput struct {
	Order model.Order
	// 同じ冪等キーの再送で既存の注文を返した
	Replayed bool
}

type CheckoutUsecase struct {
	orderRepo repo.OrderRepository
	files     repo.FileStore
	idem      repo.IdempotencyStore
	notifier  OrderNotifier
	idGen     IDGenerator
	clock     Clock
	log       *zap.Logger
}

// idemとnotifierはnilでもよい
func NewCheckoutUsecase(
	orderRepo repo.OrderRepository,
	files repo.FileStore,
	idem repo.IdempotencyStore,
	notifier OrderNotifier,
	idGen IDGenerator,
	clock Clock,
	log *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		orderRepo: orderRepo,
		files:     files,
		idem:      idem,
		notifier:  notifier,
		idGen:     idGen,
		clock:     clock,
		log:       log,
	}
}

// Execute はカートの内容と支払い証明から注文の控えを作る
func (u *CheckoutUsecase) Execute(ctx context.Context, in CheckoutInput) (CheckoutOutput, error) {
	var out CheckoutOutput

	cart := model.LoadCart(in.Cart)
	if cart.Count() == 0 {
		return out, NewHTTPError(http.StatusBadRequest, "Your cart is empty")
	}

	if in.Proof == nil || in.Proof.Body == nil {
		return out, NewHTTPError(http.StatusBadRequest, "Payment proof is required")
	}
	if in.Proof.Size > MaxProofSize {
		return out, NewHTTPError(http.StatusBadRequest, "File size must be less than 5MB")
	}

	contentType, body, err := detectProofType(in.Proof)
	if err != nil {
		return out, WrapHTTPError(http.StatusBadRequest, "Payment proof is required", err)
	}
	if _, ok := allowedProofTypes[contentType]; !ok {
		return out, NewHTTPError(http.StatusBadRequest, "Please upload an image (JPG, PNG) or PDF file")
	}

	for _, l := range cart {
		if _, err := l.PriceCents(); err != nil {
			return out, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid price for item %s", l.Title))
		}
	}

	items, err := model.OrderItemsFromCart(cart)
	if err != nil {
		return out, WrapHTTPError(http.StatusBadRequest, "Invalid cart", err)
	}
	total, err := cart.Total()
	if err != nil {
		return out, WrapHTTPError(http.StatusBadRequest, "Invalid cart", err)
	}

	orderID := u.idGen.NewID()

	// 書き込む前にキーを押さえる。先に押さえた注文があればそれを返す
	reserved, err := u.reserveKey(ctx, in.IdempotencyKey, orderID)
	if err != nil {
		return out, err
	}
	if reserved.existing != nil {
		out.Order = *reserved.existing
		out.Replayed = true
		return out, nil
	}

	fileName := sanitizeFileName(in.Proof.FileName, contentType)
	key := path.Join(proofKeyPrefix, orderID, fileName)

	if err := u.files.Save(ctx, key, contentType, body, in.Proof.Size); err != nil {
		u.releaseKey(ctx, reserved, in.IdempotencyKey)
		return out, WrapHTTPError(http.StatusInternalServerError, "Failed to save payment proof", err)
	}

	order := model.Order{
		ID:         orderID,
		UserID:     in.UserID,
		Items:      items,
		ItemCount:  cart.Count(),
		TotalCents: int64(total),
		Proof: model.PaymentProof{
			Key:         key,
			FileName:    fileName,
			ContentType: contentType,
			Size:        in.Proof.Size,
		},
		CreatedAt: u.clock.Now(),
	}

	if err := u.orderRepo.Create(ctx, &order); err != nil {
		if delErr := u.files.Delete(ctx, key); delErr != nil {
			u.log.Error("orphaned payment proof", zap.String("key", key), zap.Error(delErr))
		}
		u.releaseKey(ctx, reserved, in.IdempotencyKey)
		return out, WrapHTTPError(http.StatusInternalServerError, "Failed to place order", err)
	}

	// 通知の失敗で注文は失敗にしない
	if u.notifier != nil {
		if err := u.notifier.OrderPlaced(ctx, order); err != nil {
			u.log.Error("order event publish failed", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	out.Order = order
	return out, nil
}

type keyReservation struct {
	// このリクエストがキーを押さえた
	ok bool
	// 先に押さえたリクエストの注文
	existing *model.Order
}

func (u *CheckoutUsecase) reserveKey(ctx context.Context, key string, orderID string) (keyReservation, error) {
	if key == "" || u.idem == nil {
		return keyReservation{}, nil
	}

	ok, err := u.idem.Put(ctx, key, orderID)
	if err != nil {
		// Redisが落ちていても注文は受ける
		u.log.Warn("idempotency reserve failed", zap.Error(err))
		return keyReservation{}, nil
	}
	if ok {
		return keyReservation{ok: true}, nil
	}

	existingID, err := u.idem.Get(ctx, key)
	if err != nil {
		return keyReservation{}, WrapHTTPError(http.StatusInternalServerError, "Server error during checkout", err)
	}
	if existingID == "" {
		return keyReservation{}, NewHTTPError(http.StatusConflict, "Order is already being processed")
	}

	order, err := u.orderRepo.FindByID(ctx, existingID)
	if errors.Is(err, repo.ErrNotFound) {
		// 先のリクエストがまだ保存中
		return keyReservation{}, NewHTTPError(http.StatusConflict, "Order is already being processed")
	}
	if err != nil {
		return keyReservation{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return keyReservation{existing: &order}, nil
}

func (u *CheckoutUsecase) releaseKey(ctx context.Context, r keyReservation, key string) {
	if !r.ok {
		return
	}
	if err := u.idem.Release(ctx, key); err != nil {
		u.log.Warn("idempotency release failed", zap.Error(err))
	}
}

// 宣言された形式を使い、無い・octet-streamなら中身から判定する
func detectProofType(p *ProofFile) (string, io.Reader, error) {
	declared := ""
	if p.ContentType != "" {
		if mt, _, err := mime.ParseMediaType(p.ContentType); err == nil {
			declared = strings.ToLower(mt)
		}
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared, p.Body, nil
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(p.Body, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head = head[:n]

	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(head))

	// アップロードファイルは巻き戻せる（S3の署名にもSeekerが要る）
	if seeker, ok := p.Body.(io.ReadSeeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", nil, err
		}
		return sniffed, seeker, nil
	}
	return sniffed, io.MultiReader(bytes.NewReader(head), p.Body), nil
}

// パス区切りや記号を落とす
func sanitizeFileName(name string, contentType string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	clean := strings.TrimLeft(b.String(), ".")
	if clean == "" || clean == "_" {
		return "proof" + allowedProofTypes[contentType]
	}
	return clean
}
