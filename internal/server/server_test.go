package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reportResponse struct {
	Salary  string `json:"salary"`
	Entries []struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Amount   string `json:"amount"`
	} `json:"entries"`
	TotalDebt float64 `json:"totalDebt"`
	Result    struct {
		DebtToIncomeRatio  float64 `json:"debtToIncomeRatio"`
		MaxHousePrice      float64 `json:"maxHousePrice"`
		MonthlyInstallment float64 `json:"monthlyInstallment"`
		Tier               string  `json:"affordabilityTier"`
	} `json:"result"`
	Display map[string]string `json:"display"`
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleAffordabilitySuccess(t *testing.T) {
	h := NewHandler(zap.NewNop(), 0, "1.2.3")

	rr := postJSON(t, h, "/api/affordability", `{
		"salary": "5000",
		"debts": [
			{"category": "Credit Card", "amount": "300"},
			{"category": "student loan", "amount": 200},
			{"amount": "abc"}
		]
	}`)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp reportResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "5000", resp.Salary)
	require.Len(t, resp.Entries, 3)
	assert.Equal(t, "Credit Card", resp.Entries[0].Category)
	assert.Equal(t, "Student Loan", resp.Entries[1].Category)
	assert.Equal(t, "200", resp.Entries[1].Amount)
	assert.Equal(t, "Car Loan", resp.Entries[2].Category)
	assert.NotEqual(t, resp.Entries[0].ID, resp.Entries[1].ID)

	assert.InDelta(t, 500, resp.TotalDebt, 1e-9)
	assert.InDelta(t, 10, resp.Result.DebtToIncomeRatio, 1e-9)
	assert.InDelta(t, 240000, resp.Result.MaxHousePrice, 1e-6)
	assert.InDelta(t, 1031.22, resp.Result.MonthlyInstallment, 0.01)
	assert.Equal(t, "Moderate Debt", resp.Result.Tier)

	assert.Equal(t, "RM240,000", resp.Display["maxHousePrice"])
	assert.Equal(t, "10.0% (Moderate Debt)", resp.Display["debtToIncomeRatio"])
}

func TestHandleAffordabilityPending(t *testing.T) {
	h := NewHandler(nil, 0, "")

	rr := postJSON(t, h, "/api/affordability", `{"salary": "", "debts": []}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp reportResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Pending Input", resp.Result.Tier)
	assert.Zero(t, resp.Result.MaxHousePrice)
	assert.Zero(t, resp.Result.MonthlyInstallment)
	assert.NotNil(t, resp.Entries)
}

func TestHandleAffordabilityBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{"Malformed JSON", `{"salary":`, http.StatusBadRequest, "failed to decode request"},
		{"Unknown category", `{"salary":"5000","debts":[{"category":"Mortgage"}]}`, http.StatusBadRequest, "unknown category"},
		{"Boolean amount", `{"salary":"5000","debts":[{"amount":true}]}`, http.StatusBadRequest, "failed to decode request"},
		{"Trailing garbage", `{"salary":"5000"} junk`, http.StatusBadRequest, "unexpected data after JSON object"},
		{"Second object", `{"salary":"5000"}{"salary":"1"}`, http.StatusBadRequest, "unexpected data after JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(zap.NewNop(), 0, "")
			rr := postJSON(t, h, "/api/affordability", tt.body)

			assert.Equal(t, tt.status, rr.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], tt.errMsg)
		})
	}
}

func TestHandleAffordabilityTrailingWhitespace(t *testing.T) {
	h := NewHandler(zap.NewNop(), 0, "")

	rr := postJSON(t, h, "/api/affordability", "{\"salary\":\"5000\"}\n\t ")

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestHandleAffordabilityRequestTooLarge(t *testing.T) {
	h := NewHandler(zap.NewNop(), 32, "")

	rr := postJSON(t, h, "/api/affordability", `{"salary":"5000","debts":[{"amount":"1"},{"amount":"2"}]}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestHandleAffordabilityMethodNotAllowed(t *testing.T) {
	h := NewHandler(zap.NewNop(), 0, "")

	req := httptest.NewRequest(http.MethodGet, "/api/affordability", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandleCategories(t *testing.T) {
	h := NewHandler(zap.NewNop(), 0, "")

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Categories []string `json:"categories"`
		Default    string   `json:"default"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Car Loan", "Personal Loan", "Credit Card", "Student Loan", "Medical Debt", "Other Debt"}, resp.Categories)
	assert.Equal(t, "Car Loan", resp.Default)
}

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{"Explicit version", " 1.2.3 ", "1.2.3"},
		{"Empty version", "", "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(zap.NewNop(), 0, tt.version)
			req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expected, resp["version"])
		})
	}
}

func TestHealthz(t *testing.T) {
	h := NewHandler(zap.NewNop(), 0, "")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestMetricsExposeComputations(t *testing.T) {
	h := NewHandler(zap.NewNop(), 0, "")

	postJSON(t, h, "/api/affordability", `{"salary":"5000","debts":[{"amount":"1200"}]}`)
	postJSON(t, h, "/api/affordability", `{"salary":"5000"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `affordability_computations_total{tier="High Debt"} 1`)
	assert.Contains(t, body, `affordability_computations_total{tier="Debt-free"} 1`)
	assert.Contains(t, body, `affordability_http_requests_total{method="POST",route="/api/affordability",status="200"} 2`)
}

func TestMetricsCollapseUnknownPaths(t *testing.T) {
	h := NewHandler(zap.NewNop(), 0, "")

	for _, path := range []string{"/x-1", "/x-2"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusNotFound, rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	body := rr.Body.String()
	assert.Contains(t, body, `affordability_http_requests_total{method="GET",route="unmatched",status="404"} 2`)
	assert.NotContains(t, body, `route="/x-1"`)
	assert.NotContains(t, body, `route="/x-2"`)
	assert.Equal(t, 1, strings.Count(body, `affordability_http_request_duration_seconds_count{method="GET",route="unmatched"}`))
}

func TestRunShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, zap.NewNop(), "127.0.0.1:0", http.NotFoundHandler(), time.Second)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestTextUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  text
		expectErr bool
	}{
		{"String", `"12.5"`, "12.5", false},
		{"Number", `12.50`, "12.50", false},
		{"Null", `null`, "", false},
		{"Bool", `true`, "", true},
		{"Object", `{}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got text
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
