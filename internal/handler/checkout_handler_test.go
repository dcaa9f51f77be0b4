package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/token"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const checkoutCart = `[{"id":"1","title":"The Hobbit","price":"12.99"},{"id":"2","title":"Dune","price":"9.50"}]`

var issuerForTest = token.NewJWTIssuer("test-secret", time.Hour)

func newCheckoutEcho(orders *MockOrderRepository) *echo.Echo {
	uc := usecase.NewCheckoutUsecase(orders, discardStore{}, nil, nil, fixedID("order-1"), fixedClock{time.Now()}, zap.NewNop())
	e := newEcho()
	NewCheckoutHandler(uc, issuerForTest, zap.NewNop()).RegisterRoutes(e)
	return e
}

type proofPart struct {
	name        string
	contentType string
	data        []byte
}

func multipartCheckout(t *testing.T, cart string, proof *proofPart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	require.NoError(t, w.WriteField("cart", cart))
	if proof != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="paymentProof"; filename="`+proof.name+`"`)
		if proof.contentType != "" {
			h.Set("Content-Type", proof.contentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(proof.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postCheckout(e *echo.Echo, body *bytes.Buffer, contentType string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCheckoutHandler_Success(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o *model.Order) bool {
		return o.UserID == "u1" && o.TotalCents == 2249
	})).Return(nil)

	tok, _, err := issuerForTest.Issue("u1", time.Now())
	require.NoError(t, err)

	body, ct := multipartCheckout(t, checkoutCart, &proofPart{name: "receipt.png", contentType: "image/png", data: []byte("\x89PNG\r\n\x1a\n")})
	rec := postCheckout(newCheckoutEcho(orders), body, ct, map[string]string{"Authorization": "Bearer " + tok})
	require.Equal(t, http.StatusCreated, rec.Code)

	var res checkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "Order placed successfully!", res.Message)
	assert.Equal(t, placedOrder{ID: "order-1", ItemCount: 2, Total: "$22.49", PaymentProof: "payment-proofs/order-1/receipt.png"}, res.Order)
	orders.AssertExpectations(t)
}

func TestCheckoutHandler_Guest(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o *model.Order) bool { return o.UserID == "" })).Return(nil)

	body, ct := multipartCheckout(t, checkoutCart, &proofPart{name: "r.pdf", data: []byte("%PDF-1.7 body")})
	rec := postCheckout(newCheckoutEcho(orders), body, ct, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCheckoutHandler_Errors(t *testing.T) {
	tests := []struct {
		name  string
		cart  string
		proof *proofPart
		msg   string
	}{
		{"empty cart", "[]", &proofPart{name: "a.png", contentType: "image/png", data: []byte("x")}, "Your cart is empty"},
		{"missing proof", checkoutCart, nil, "Payment proof is required"},
		{"too big", checkoutCart, &proofPart{name: "a.png", contentType: "image/png", data: make([]byte, usecase.MaxProofSize+1)}, "File size must be less than 5MB"},
		{"wrong type", checkoutCart, &proofPart{name: "a.txt", contentType: "text/plain", data: []byte("hello")}, "Please upload an image (JPG, PNG) or PDF file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(MockOrderRepository)
			body, ct := multipartCheckout(t, tt.cart, tt.proof)

			rec := postCheckout(newCheckoutEcho(orders), body, ct, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"success":false,"message":"`+tt.msg+`"}`, rec.Body.String())
			orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}
