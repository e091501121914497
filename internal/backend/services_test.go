package backend

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escrowmart-web/internal/models"
)

func bytesReader(s string) io.Reader {
	return strings.NewReader(s)
}

// parseMultipart reads a multipart body back into form fields and the file
// names per field
func parseMultipart(t *testing.T, body io.Reader, contentType string) (map[string]string, map[string][]string) {
	t.Helper()

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	reader := multipart.NewReader(body, params["boundary"])
	form, err := reader.ReadForm(10 << 20)
	require.NoError(t, err)

	fields := make(map[string]string)
	for key, values := range form.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	files := make(map[string][]string)
	for key, headers := range form.File {
		for _, h := range headers {
			files[key] = append(files[key], h.Filename)
		}
	}
	return fields, files
}

func TestProductListQueryString(t *testing.T) {
	var gotQuery string
	client, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	products := NewProductService(client)

	gte, lte := 10.0, 99.5
	_, err := products.List(context.Background(), "sid", models.ProductFilter{
		Category: "electronics",
		Search:   "mechanical keyboard",
		PriceGTE: &gte,
		PriceLTE: &lte,
	})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "category=electronics")
	assert.Contains(t, gotQuery, "search=mechanical+keyboard")
	assert.Contains(t, gotQuery, "price%5Bgte%5D=10")
	assert.Contains(t, gotQuery, "price%5Blte%5D=99.5")
}

func TestProductListPriceRangeNeedsBothBounds(t *testing.T) {
	var gotQuery string
	client, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	products := NewProductService(client)

	gte := 10.0
	_, err := products.List(context.Background(), "sid", models.ProductFilter{PriceGTE: &gte})
	require.NoError(t, err)

	assert.Empty(t, gotQuery)
}

func TestEscrowCreateDefaultsDuration(t *testing.T) {
	var gotBody CreateEscrowRequest
	client, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id":"e1","status":"pending"}`))
	}))
	escrows := NewEscrowService(client)

	_, err := escrows.Create(context.Background(), "sid", CreateEscrowRequest{
		SellerID: "s1",
		Products: []EscrowProductItem{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultEscrowDays, gotBody.EscrowDays)
	assert.Equal(t, "s1", gotBody.SellerID)
	require.Len(t, gotBody.Products, 1)
	assert.Equal(t, "p1", gotBody.Products[0].ProductID)
	assert.Equal(t, 2, gotBody.Products[0].Quantity)
}

func TestDisputeCreateMultipart(t *testing.T) {
	type received struct {
		fields map[string]string
		files  map[string][]string
	}
	var got received

	client, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields, files := parseMultipart(t, r.Body, r.Header.Get("Content-Type"))
		got = received{fields: fields, files: files}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"d1","escrowId":"e1","status":"pending"}`))
	}))
	disputes := NewDisputeService(client)

	t.Run("WithoutEvidence", func(t *testing.T) {
		dispute, err := disputes.Create(context.Background(), "sid", CreateDisputeData{
			EscrowID: "e1",
			Reason:   "item never arrived",
		})
		require.NoError(t, err)
		assert.Equal(t, "d1", dispute.ID)

		assert.Equal(t, "e1", got.fields["escrowId"])
		assert.Equal(t, "item never arrived", got.fields["reason"])
		assert.Empty(t, got.files["evidence"])
	})

	t.Run("WithEvidence", func(t *testing.T) {
		_, err := disputes.Create(context.Background(), "sid", CreateDisputeData{
			EscrowID: "e1",
			Reason:   "wrong item",
			Evidence: []File{
				{Name: "photo1.jpg", Content: bytesReader("x")},
				{Name: "photo2.jpg", Content: bytesReader("y")},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"photo1.jpg", "photo2.jpg"}, got.files["evidence"])
	})
}

func TestDisputeAddCommentMultipart(t *testing.T) {
	var gotFields map[string]string
	var gotFiles map[string][]string
	var gotPath string

	client, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFields, gotFiles = parseMultipart(t, r.Body, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"c1","disputeId":"d1"}`))
	}))
	disputes := NewDisputeService(client)

	comment, err := disputes.AddComment(context.Background(), "sid", "d1", AddCommentData{
		Content:     "shipping label attached",
		Attachments: []File{{Name: "label.pdf", Content: bytesReader("pdf")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "/disputes/d1/comments", gotPath)
	assert.Equal(t, "c1", comment.ID)
	assert.Equal(t, "shipping label attached", gotFields["content"])
	assert.Equal(t, []string{"label.pdf"}, gotFiles["attachments"])
}

func TestWalletWithdraw(t *testing.T) {
	var gotBody models.WithdrawalRequest
	client, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true,"message":"Withdrawal initiated","transaction":{"id":"t1","amount":150,"status":"processing","timestamp":"2025-01-01T00:00:00Z"}}`))
	}))
	wallet := NewWalletService(client)

	result, err := wallet.Withdraw(context.Background(), "sid", models.WithdrawalRequest{
		Amount: 150,
		AccountDetails: models.BankAccountDetails{
			BankName:      "First Bank",
			AccountNumber: "0012345678",
			AccountName:   "Alice Seller",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 150.0, gotBody.Amount)
	assert.Equal(t, "First Bank", gotBody.AccountDetails.BankName)

	assert.True(t, result.Success)
	assert.Equal(t, "Withdrawal initiated", result.Message)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, "t1", result.Transaction.ID)
}

func TestEscrowStatusUpdatePath(t *testing.T) {
	var gotPath, gotMethod string
	client, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{"id":"e1","status":"delivered"}`))
	}))
	escrows := NewEscrowService(client)

	escrow, err := escrows.UpdateStatus(context.Background(), "sid", "e1", models.TransactionStatusDelivered)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/escrows/e1/status", gotPath)
	assert.Equal(t, models.TransactionStatusDelivered, escrow.Status)
}
